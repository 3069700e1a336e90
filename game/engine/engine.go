package engine

import (
	"fmt"
	"strings"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Restart() *GameState
	NewPuzzle() *GameState
	NextLevel() (*GameState, error)
	IsGameOver() bool
	IsVictory() bool
	GetLevel() int
	GetSouls() int

	// Movement operations
	Select(row, col int) ([]Move, error)
	Move(to Pos) (*MoveOutcome, error)
	BulkMove(moves []Pos) ([]MoveOutcome, error)
	GetLegalMoves() []Move
	Hint() (*Move, error)

	// Configuration
	GetConfig() *GameConfig

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// MoveOutcome reports what a single move did to the game
type MoveOutcome struct {
	MoveHistoryEntry
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state     *GameState
	config    *GameConfig
	messages  Messages
	generator *Generator
	seed      uint64
}

// NewEngine creates a new game engine for config. Generated puzzles are drawn
// from a source seeded with seed, so two engines with the same config and seed
// deal the same puzzles. A nil config uses DefaultConfig.
func NewEngine(config *GameConfig, seed uint64, opts ...Option) (*GameEngine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	genOpts := append([]Option{WithBoardSize(config.BoardSize)}, opts...)
	e := &GameEngine{
		config:    config,
		messages:  config.Messages.withDefaults(),
		generator: NewGenerator(NewSeededRand(seed), genOpts...),
		seed:      seed,
	}

	if config.HasLayout() {
		state, err := e.layoutState()
		if err != nil {
			return nil, err
		}
		e.state = state
	} else {
		e.state = e.generatedState(config.StartLevel(), e.messages.Welcome)
	}

	return e, nil
}

// layoutState builds the opening state from the config's fixed layout
func (e *GameEngine) layoutState() (*GameState, error) {
	board, err := ParseLayout(e.config.Layout)
	if err != nil {
		return nil, err
	}
	sol := Solve(board)
	if !sol.Solvable() {
		return nil, ErrUnsolvable
	}
	return e.newState(board, e.config.StartLevel(), sol.MinMoves, sol.Solutions[0], false, e.messages.Welcome), nil
}

// generatedState deals a fresh puzzle for level
func (e *GameEngine) generatedState(level int, message string) *GameState {
	result := e.generator.Generate(level)
	if result.Failed() {
		message = e.messages.NoPuzzle
	}
	return e.newState(result.Board, result.Level, result.MinMoves, result.SolutionPath, result.Fallback, message)
}

// newState starts a puzzle on board. Cumulative history carries over from
// the previous puzzle.
func (e *GameEngine) newState(board Board, level, minMoves int, path []Move, fallback bool, message string) *GameState {
	state := &GameState{
		Board:        board,
		InitialBoard: board.Clone(),
		Level:        level,
		MinMoves:     minMoves,
		SolutionPath: path,
		Fallback:     fallback,
		Seed:         e.seed,
		Status:       Classify(board),
		Message:      message,
		ConfigName:   e.config.Name,
		MoveHistory:  []MoveHistoryEntry{},
		CurrentMoves: []MoveHistoryEntry{},
		Layout:       board.Layout(),
	}
	if e.state != nil {
		state.MoveHistory = e.state.MoveHistory
		state.TotalMoves = e.state.TotalMoves
	}
	return state
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState sets the game state
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	e.state = state
	return nil
}

// Restart puts the current puzzle back on its initial board
func (e *GameEngine) Restart() *GameState {
	e.state.Board = e.state.InitialBoard.Clone()
	e.state.Layout = e.state.Board.Layout()
	e.state.Status = Classify(e.state.Board)
	e.state.MovesMade = 0
	e.state.Souls = 0
	e.state.HintsUsed = 0
	e.state.Optimal = false
	e.state.Message = e.messages.Restarted

	// Cumulative history survives; only the current segment is cleared
	e.state.CurrentMoves = []MoveHistoryEntry{}
	e.state.CurrentMovesCount = 0

	return e.state
}

// NewPuzzle deals a new generated puzzle at the current level
func (e *GameEngine) NewPuzzle() *GameState {
	e.state = e.generatedState(e.state.Level, e.messages.Welcome)
	return e.state
}

// NextLevel advances to the next level. The current puzzle must be won.
func (e *GameEngine) NextLevel() (*GameState, error) {
	if e.state.Status != Won {
		e.state.Message = e.messages.NotSolvedYet
		return nil, ErrNotWon
	}
	level := e.state.Level + 1
	e.state = e.generatedState(level, fmt.Sprintf(e.messages.LevelStart, level))
	return e.state, nil
}

// IsGameOver returns whether the puzzle has ended either way
func (e *GameEngine) IsGameOver() bool {
	return e.state.Status != Playing
}

// IsVictory returns whether the puzzle was solved
func (e *GameEngine) IsVictory() bool {
	return e.state.Status == Won
}

// GetLevel returns the current level
func (e *GameEngine) GetLevel() int {
	return e.state.Level
}

// GetSouls returns the number of captures made on the current attempt
func (e *GameEngine) GetSouls() int {
	return e.state.Souls
}

// Select returns the moves available from (row, col). Only the controlled
// piece can be selected; any other cell yields an empty list.
func (e *GameEngine) Select(row, col int) ([]Move, error) {
	if e.IsGameOver() {
		return nil, ErrGameOver
	}
	if !e.state.Board.InBounds(row, col) {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, row, col)
	}
	cell := e.state.Board.At(row, col)
	if !cell.IsPiece() || cell.Side != Controlled {
		return []Move{}, nil
	}
	moves := LegalMoves(e.state.Board, row, col)
	if moves == nil {
		moves = []Move{}
	}
	return moves, nil
}

// GetLegalMoves returns the moves available to the controlled piece
func (e *GameEngine) GetLegalMoves() []Move {
	pos, _, ok := e.state.Board.Controlled()
	if !ok || e.IsGameOver() {
		return []Move{}
	}
	moves := LegalMoves(e.state.Board, pos.Row, pos.Col)
	if moves == nil {
		moves = []Move{}
	}
	return moves
}

// Move moves the controlled piece to to
func (e *GameEngine) Move(to Pos) (*MoveOutcome, error) {
	if e.IsGameOver() {
		return nil, ErrGameOver
	}

	from, piece, ok := e.state.Board.Controlled()
	if !ok {
		return nil, ErrNoControlledPiece
	}

	move, ok := CanMoveTo(e.state.Board, from, to)
	if !ok {
		e.state.Message = e.messages.CantMove
		return nil, fmt.Errorf("%w: %s on %s cannot reach %s", ErrIllegalMove, piece.Kind, from, to)
	}

	captured := e.state.Board.At(to.Row, to.Col)
	next := ApplyMove(e.state.Board, from, to)

	e.state.Board = next
	e.state.Layout = next.Layout()
	e.state.MovesMade++

	message := e.messages.Moving
	if move.IsCapture {
		e.state.Souls++
		message = fmt.Sprintf(e.messages.SoulSwitch, strings.ToUpper(piece.Kind.String()), strings.ToUpper(captured.Kind.String()))
	}

	e.state.Status = Classify(next)
	switch e.state.Status {
	case Won:
		e.state.Optimal = e.state.MovesMade <= e.state.MinMoves
		if e.state.Optimal {
			message = e.messages.Optimal
		} else {
			message = fmt.Sprintf(e.messages.NotOptimal, e.state.MinMoves)
		}
	case Lost:
		message = e.messages.Stuck
	}
	e.state.Message = message

	entry := MoveHistoryEntry{
		From:       from,
		To:         to,
		KindBefore: piece.Kind,
		KindAfter:  next.At(to.Row, to.Col).Kind,
		IsCapture:  move.IsCapture,
		Timestamp:  time.Now().Unix(),
	}
	if move.IsCapture {
		entry.Captured = captured.Kind
	}
	e.addMoveToHistory(&entry)

	return &MoveOutcome{
		MoveHistoryEntry: entry,
		Status:           e.state.Status,
		Message:          message,
	}, nil
}

// addMoveToHistory records a move in both the cumulative and current history
func (e *GameEngine) addMoveToHistory(entry *MoveHistoryEntry) {
	e.state.TotalMoves++
	e.state.CurrentMovesCount++
	entry.MoveNumber = e.state.TotalMoves

	e.state.MoveHistory = append(e.state.MoveHistory, *entry)
	e.state.CurrentMoves = append(e.state.CurrentMoves, *entry)
}

// BulkMove executes moves in order. It stops at the first illegal move or
// when the puzzle ends, returning the outcomes of the moves that were made.
func (e *GameEngine) BulkMove(moves []Pos) ([]MoveOutcome, error) {
	outcomes := make([]MoveOutcome, 0, len(moves))

	for i, to := range moves {
		if e.IsGameOver() {
			break
		}
		outcome, err := e.Move(to)
		if err != nil {
			return outcomes, fmt.Errorf("move %d: %w", i+1, err)
		}
		outcomes = append(outcomes, *outcome)
	}

	return outcomes, nil
}

// Hint returns the next step of the stored solution, indexed by the number
// of moves made. It only stays accurate while the player follows that path.
func (e *GameEngine) Hint() (*Move, error) {
	if e.IsGameOver() {
		return nil, ErrGameOver
	}
	if e.state.MovesMade >= len(e.state.SolutionPath) {
		e.state.Message = e.messages.NoHint
		return nil, ErrNoHint
	}

	next := e.state.SolutionPath[e.state.MovesMade]
	e.state.HintsUsed++
	e.state.Message = e.messages.Hint
	return &next, nil
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.state.MoveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}
