package engine

import (
	"fmt"
	"strings"
)

// Board is a rectangular grid of cells. Boards are treated as values: every
// transition produces a deep copy so older snapshots stay valid.
type Board struct {
	Cells [][]Cell `json:"cells"`
}

// NewBoard creates an empty board of the given dimensions
func NewBoard(rows, cols int) Board {
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}
	return Board{Cells: cells}
}

// Rows returns the number of rows
func (b Board) Rows() int {
	return len(b.Cells)
}

// Cols returns the number of columns
func (b Board) Cols() int {
	if len(b.Cells) == 0 {
		return 0
	}
	return len(b.Cells[0])
}

// InBounds reports whether (r, c) lies on the board
func (b Board) InBounds(r, c int) bool {
	return r >= 0 && r < b.Rows() && c >= 0 && c < b.Cols()
}

// At returns the cell at (r, c). Off-board coordinates read as a wall.
func (b Board) At(r, c int) Cell {
	if !b.InBounds(r, c) {
		return WallCell()
	}
	return b.Cells[r][c]
}

// Set writes a cell in place. Only use it on a board the caller owns.
func (b Board) Set(r, c int, cell Cell) {
	b.Cells[r][c] = cell
}

// Clone returns a fully independent copy of the board
func (b Board) Clone() Board {
	cells := make([][]Cell, len(b.Cells))
	for r, row := range b.Cells {
		cells[r] = make([]Cell, len(row))
		copy(cells[r], row)
	}
	return Board{Cells: cells}
}

// Controlled locates the controlled piece. The last one in row-major order
// wins if a malformed board holds several.
func (b Board) Controlled() (Pos, Cell, bool) {
	var pos Pos
	var cell Cell
	found := false
	for r, row := range b.Cells {
		for c, cur := range row {
			if cur.IsPiece() && cur.Side == Controlled {
				pos, cell, found = Pos{Row: r, Col: c}, cur, true
			}
		}
	}
	return pos, cell, found
}

// CountSide counts the pieces belonging to side
func (b Board) CountSide(side Side) int {
	count := 0
	for _, row := range b.Cells {
		for _, cell := range row {
			if cell.IsPiece() && cell.Side == side {
				count++
			}
		}
	}
	return count
}

// CountWalls counts the wall cells
func (b Board) CountWalls() int {
	count := 0
	for _, row := range b.Cells {
		for _, cell := range row {
			if cell.IsWall() {
				count++
			}
		}
	}
	return count
}

// OpposingPositions returns the opposing piece positions in row-major order
func (b Board) OpposingPositions() []Pos {
	var out []Pos
	for r, row := range b.Cells {
		for c, cell := range row {
			if cell.IsPiece() && cell.Side == Opposing {
				out = append(out, Pos{Row: r, Col: c})
			}
		}
	}
	return out
}

// Layout characters:
//
//	.  empty
//	#  wall
//	KQRBNP  controlled king, queen, rook, bishop, knight, pawn
//	kqrbnp  opposing pieces
const (
	EmptyChar = '.'
	WallChar  = '#'
)

// CellChar returns the layout character for a cell
func CellChar(cell Cell) byte {
	switch {
	case cell.IsEmpty():
		return EmptyChar
	case cell.IsWall():
		return WallChar
	case cell.Side == Controlled:
		return cell.Kind.Letter()
	default:
		return cell.Kind.Letter() + ('a' - 'A')
	}
}

// ParseCellChar decodes a single layout character
func ParseCellChar(ch byte) (Cell, bool) {
	switch ch {
	case EmptyChar:
		return Empty(), true
	case WallChar:
		return WallCell(), true
	}
	for kind, letter := range kindLetters {
		if ch == letter {
			return Piece(kind, Controlled), true
		}
		if ch == letter+('a'-'A') {
			return Piece(kind, Opposing), true
		}
	}
	return Cell{}, false
}

// ParseLayout builds a board from layout rows. Rows must be non-empty and of
// equal width; at most one controlled piece may appear.
func ParseLayout(layout []string) (Board, error) {
	if len(layout) < MinLayoutSize || len(layout) > MaxLayoutSize {
		return Board{}, fmt.Errorf("%w: layout must have between %d and %d rows, got %d",
			ErrInvalidLayout, MinLayoutSize, MaxLayoutSize, len(layout))
	}

	width := len(layout[0])
	if width < MinLayoutSize || width > MaxLayoutSize {
		return Board{}, fmt.Errorf("%w: layout width must be between %d and %d, got %d",
			ErrInvalidLayout, MinLayoutSize, MaxLayoutSize, width)
	}

	board := NewBoard(len(layout), width)
	controlled := 0
	for r, row := range layout {
		if len(row) != width {
			return Board{}, fmt.Errorf("%w: row %d has width %d, expected %d", ErrInvalidLayout, r+1, len(row), width)
		}
		for c := 0; c < len(row); c++ {
			cell, ok := ParseCellChar(row[c])
			if !ok {
				return Board{}, fmt.Errorf("%w: invalid character '%c' at row %d, col %d", ErrInvalidLayout, row[c], r+1, c+1)
			}
			if cell.Side == Controlled {
				controlled++
			}
			board.Set(r, c, cell)
		}
	}

	if controlled > 1 {
		return Board{}, fmt.Errorf("%w: found %d controlled pieces, at most one allowed", ErrInvalidLayout, controlled)
	}

	return board, nil
}

// Layout renders the board as layout rows
func (b Board) Layout() []string {
	rows := make([]string, b.Rows())
	for r, row := range b.Cells {
		buf := make([]byte, len(row))
		for c, cell := range row {
			buf[c] = CellChar(cell)
		}
		rows[r] = string(buf)
	}
	return rows
}

// String renders the board with row and column indices
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("  ")
	for c := 0; c < b.Cols(); c++ {
		fmt.Fprintf(&sb, "%d", c%10)
	}
	sb.WriteByte('\n')
	for r, row := range b.Layout() {
		fmt.Fprintf(&sb, "%d %s\n", r%10, row)
	}
	return sb.String()
}
