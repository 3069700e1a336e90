package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"io"
	"log"
	"math"
	"math/rand/v2"
)

// PuzzleResult is a generated puzzle together with its minimal solution
type PuzzleResult struct {
	Board        Board             `json:"board"`
	MinMoves     int               `json:"min_moves"`
	SolutionPath []Move            `json:"solution_path"`
	Level        int               `json:"level"`
	Profile      DifficultyProfile `json:"profile"`
	Attempts     int               `json:"attempts"`
	Fallback     bool              `json:"fallback,omitempty"`
	Explored     int               `json:"explored"`
}

// Failed reports whether generation produced nothing playable
func (p PuzzleResult) Failed() bool {
	return p.MinMoves == 0 && len(p.SolutionPath) == 0
}

// Generator builds random puzzles and keeps only those whose minimal
// solution is unique and long enough for the level.
type Generator struct {
	rng            *rand.Rand
	maxAttempts    int
	placementTries int
	boardSize      int
	logger         *log.Logger

	// build draws one candidate board, randomBoard unless replaced in tests
	build func(DifficultyProfile) (Board, bool)
}

// Option configures a Generator
type Option func(*Generator)

// WithMaxAttempts bounds the number of boards tried per Generate call
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n >= 1 {
			g.maxAttempts = n
		}
	}
}

// WithPlacementTries bounds the random cell draws per placed piece
func WithPlacementTries(n int) Option {
	return func(g *Generator) {
		if n >= 1 {
			g.placementTries = n
		}
	}
}

// WithBoardSize overrides the level's board size
func WithBoardSize(size int) Option {
	return func(g *Generator) {
		if size >= MinBoardSize && size <= MaxBoardSize {
			g.boardSize = size
		}
	}
}

// WithLogger sets where generation outcomes are reported
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator creates a generator drawing from rng. All randomness comes
// from rng, so a seeded source makes generation repeatable.
func NewGenerator(rng *rand.Rand, opts ...Option) *Generator {
	g := &Generator{
		rng:            rng,
		maxAttempts:    DefaultMaxAttempts,
		placementTries: DefaultPlacementTries,
		logger:         log.New(io.Discard, "", 0),
	}
	g.build = g.randomBoard
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewSeededRand returns a deterministic random source for seed
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSeed draws a seed from the operating system's entropy source
func RandomSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return rand.Uint64()
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Profile returns the difficulty profile Generate uses for level
func (g *Generator) Profile(level int) DifficultyProfile {
	return ProfileForLevel(level).withBoardSize(g.boardSize)
}

// Generate produces a puzzle for level. It never fails: when no attempt is
// accepted it returns the first solvable board of at least two moves, and
// failing that an empty board with MinMoves 0 and no solution path.
func (g *Generator) Generate(level int) PuzzleResult {
	profile := g.Profile(level)

	var fallback *PuzzleResult
	explored := 0

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		board, ok := g.build(profile)
		if !ok {
			continue
		}

		sol := Solve(board)
		explored += sol.Explored

		if sol.Solvable() && sol.MinMoves >= profile.MinMovesThreshold && sol.Unique() {
			g.logger.Printf("[GEN] level=%d accepted after %d attempts min_moves=%d", profile.Level, attempt, sol.MinMoves)
			return PuzzleResult{
				Board:        board,
				MinMoves:     sol.MinMoves,
				SolutionPath: sol.Solutions[0],
				Level:        profile.Level,
				Profile:      profile,
				Attempts:     attempt,
				Explored:     explored,
			}
		}

		if fallback == nil && sol.MinMoves >= FallbackMinMoves {
			fallback = &PuzzleResult{
				Board:        board,
				MinMoves:     sol.MinMoves,
				SolutionPath: sol.Solutions[0],
				Level:        profile.Level,
				Profile:      profile,
				Fallback:     true,
			}
		}
	}

	g.logger.Printf("[GEN] level=%d no unique puzzle after %d attempts", profile.Level, g.maxAttempts)

	if fallback != nil {
		g.logger.Printf("[GEN] level=%d returning fallback puzzle min_moves=%d", profile.Level, fallback.MinMoves)
		fallback.Attempts = g.maxAttempts
		fallback.Explored = explored
		return *fallback
	}

	return PuzzleResult{
		Board:        NewBoard(profile.BoardSize, profile.BoardSize),
		SolutionPath: []Move{},
		Level:        profile.Level,
		Profile:      profile,
		Attempts:     g.maxAttempts,
		Explored:     explored,
	}
}

// randomBoard builds one candidate board. It reports false when the
// controlled piece could not be placed.
func (g *Generator) randomBoard(p DifficultyProfile) (Board, bool) {
	size := p.BoardSize
	board := NewBoard(size, size)

	density := p.WallDensityMin + g.rng.Float64()*(p.WallDensityMax-p.WallDensityMin)
	walls := int(math.Floor(float64(size*size) * density))
	for i := 0; i < walls; i++ {
		board.Set(g.rng.IntN(size), g.rng.IntN(size), WallCell())
	}

	pos, ok := g.emptyCell(board)
	if !ok {
		return Board{}, false
	}
	board.Set(pos.Row, pos.Col, Piece(g.randomKind(), Controlled))

	enemies := p.EnemyMin + g.rng.IntN(p.EnemyMax-p.EnemyMin+1)
	for i := 0; i < enemies; i++ {
		pos, ok := g.emptyCell(board)
		if !ok {
			continue
		}
		board.Set(pos.Row, pos.Col, Piece(g.randomKind(), Opposing))
	}

	return board, true
}

// emptyCell draws random cells until an empty one turns up or the placement
// budget runs out
func (g *Generator) emptyCell(b Board) (Pos, bool) {
	for try := 0; try < g.placementTries; try++ {
		r, c := g.rng.IntN(b.Rows()), g.rng.IntN(b.Cols())
		if b.At(r, c).IsEmpty() {
			return Pos{Row: r, Col: c}, true
		}
	}
	return Pos{}, false
}

func (g *Generator) randomKind() Kind {
	return PieceKinds[g.rng.IntN(len(PieceKinds))]
}
