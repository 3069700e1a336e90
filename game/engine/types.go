package engine

import (
	"fmt"
	"slices"
	"strings"
)

// Kind identifies what occupies a cell
type Kind uint8

const (
	None Kind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
	Wall
)

// Side identifies who owns a piece. Walls are Neutral, empty cells NoSide.
type Side uint8

const (
	NoSide Side = iota
	Controlled
	Opposing
	Neutral
)

// Status is the classification of a board
type Status uint8

const (
	Playing Status = iota
	Won
	Lost
)

const (
	// Board limits for generated puzzles
	MinBoardSize = 4
	MaxBoardSize = 7

	// Hand-authored layouts may be smaller than generated ones, never larger
	MinLayoutSize = 1
	MaxLayoutSize = MaxBoardSize

	DefaultMaxAttempts    = 200
	DefaultPlacementTries = 100

	// FallbackMinMoves is the minimum length a fallback candidate must have
	FallbackMinMoves = 2
)

// PieceKinds lists the kinds a piece can take, in draw order for the generator
var PieceKinds = []Kind{King, Queen, Rook, Bishop, Knight, Pawn}

var kindNames = map[Kind]string{
	None:   "none",
	King:   "king",
	Queen:  "queen",
	Rook:   "rook",
	Bishop: "bishop",
	Knight: "knight",
	Pawn:   "pawn",
	Wall:   "wall",
}

var kindLetters = map[Kind]byte{
	King:   'K',
	Queen:  'Q',
	Rook:   'R',
	Bishop: 'B',
	Knight: 'N',
	Pawn:   'P',
}

// String returns the lower-case name of the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Letter returns the upper-case layout letter of a piece kind, 0 for non-pieces
func (k Kind) Letter() byte {
	return kindLetters[k]
}

// IsPiece reports whether the kind is one of the six movable piece kinds
func (k Kind) IsPiece() bool {
	return k >= King && k <= Pawn
}

// MarshalText encodes the kind as its name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name
func (k *Kind) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for kind, n := range kindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown piece kind %q", string(text))
}

var sideNames = map[Side]string{
	NoSide:     "none",
	Controlled: "controlled",
	Opposing:   "opposing",
	Neutral:    "neutral",
}

func (s Side) String() string {
	if name, ok := sideNames[s]; ok {
		return name
	}
	return fmt.Sprintf("side(%d)", uint8(s))
}

// MarshalText encodes the side as its name
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a side name
func (s *Side) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for side, n := range sideNames {
		if n == name {
			*s = side
			return nil
		}
	}
	return fmt.Errorf("unknown side %q", string(text))
}

var statusNames = map[Status]string{
	Playing: "playing",
	Won:     "won",
	Lost:    "lost",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// MarshalText encodes the status as its name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name
func (s *Status) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for status, n := range statusNames {
		if n == name {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", string(text))
}

// Cell is a single board square: empty, a wall, or a piece
type Cell struct {
	Kind Kind `json:"kind"`
	Side Side `json:"side"`
}

// Empty returns an empty cell
func Empty() Cell { return Cell{} }

// WallCell returns an immovable obstacle cell
func WallCell() Cell { return Cell{Kind: Wall, Side: Neutral} }

// Piece returns a cell holding a piece of the given kind and side
func Piece(kind Kind, side Side) Cell { return Cell{Kind: kind, Side: side} }

// IsEmpty reports whether nothing occupies the cell
func (c Cell) IsEmpty() bool { return c.Kind == None }

// IsWall reports whether the cell is a wall
func (c Cell) IsWall() bool { return c.Kind == Wall }

// IsPiece reports whether the cell holds a piece of either side
func (c Cell) IsPiece() bool { return c.Kind.IsPiece() }

// Pos is a row/column coordinate. Row 0 is the top row.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Move is a destination for the piece on some origin cell
type Move struct {
	Row       int  `json:"row"`
	Col       int  `json:"col"`
	IsCapture bool `json:"is_capture"`
}

// To returns the destination as a Pos
func (m Move) To() Pos {
	return Pos{Row: m.Row, Col: m.Col}
}

func (m Move) String() string {
	if m.IsCapture {
		return fmt.Sprintf("x(%d,%d)", m.Row, m.Col)
	}
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// MoveHistoryEntry represents a single move in the game history
type MoveHistoryEntry struct {
	From       Pos   `json:"from"`
	To         Pos   `json:"to"`
	KindBefore Kind  `json:"kind_before"`
	KindAfter  Kind  `json:"kind_after"`
	Captured   Kind  `json:"captured,omitempty"`
	IsCapture  bool  `json:"is_capture"`
	Timestamp  int64 `json:"timestamp"`
	MoveNumber int   `json:"move_number"`
}

// GameState represents the complete state of one puzzle being played
type GameState struct {
	Board        Board  `json:"board"`
	InitialBoard Board  `json:"initial_board"`
	Level        int    `json:"level"`
	MinMoves     int    `json:"min_moves"`
	SolutionPath []Move `json:"solution_path"`
	Fallback     bool   `json:"fallback,omitempty"`
	Seed         uint64 `json:"seed"`

	Status     Status `json:"status"`
	MovesMade  int    `json:"moves_made"`
	Souls      int    `json:"souls"`
	Optimal    bool   `json:"optimal,omitempty"`
	HintsUsed  int    `json:"hints_used"`
	Message    string `json:"message"`
	ConfigName string `json:"config_name"`

	// MoveHistory is cumulative across restarts; CurrentMoves is cleared on restart
	MoveHistory       []MoveHistoryEntry `json:"move_history"`
	TotalMoves        int                `json:"total_moves"`
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`

	// Rendered board rows for text clients
	Layout []string `json:"layout,omitempty"`
}

// Clone returns a deep copy of the state that shares nothing with s
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	c := *s
	c.Board = s.Board.Clone()
	c.InitialBoard = s.InitialBoard.Clone()
	c.SolutionPath = slices.Clone(s.SolutionPath)
	c.MoveHistory = slices.Clone(s.MoveHistory)
	c.CurrentMoves = slices.Clone(s.CurrentMoves)
	c.Layout = slices.Clone(s.Layout)
	return &c
}
