package engine

type offset struct{ dr, dc int }

var (
	orthogonal = []offset{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	diagonal   = []offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	allEight   = []offset{{0, 1}, {0, -1}, {1, 0}, {-1, 0}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	knightJump = []offset{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

// pawnForward is the row delta of a pawn advance. Pawns always move up the board.
const pawnForward = -1

// LegalMoves returns the destinations available to the piece on (r, c).
// Empty, wall and off-board origins yield no moves.
func LegalMoves(b Board, r, c int) []Move {
	if !b.InBounds(r, c) {
		return nil
	}
	piece := b.At(r, c)
	if !piece.IsPiece() {
		return nil
	}

	var moves []Move
	switch piece.Kind {
	case Rook:
		moves = slide(b, r, c, piece.Side, orthogonal, moves)
	case Bishop:
		moves = slide(b, r, c, piece.Side, diagonal, moves)
	case Queen:
		moves = slide(b, r, c, piece.Side, allEight, moves)
	case Knight:
		moves = step(b, r, c, piece.Side, knightJump, moves)
	case King:
		moves = step(b, r, c, piece.Side, allEight, moves)
	case Pawn:
		moves = pawnMoves(b, r, c, piece.Side, moves)
	}
	return moves
}

// target evaluates one destination square. It returns the move (if any) and
// whether a sliding ray may continue past the square.
func target(b Board, r, c int, side Side) (Move, bool, bool) {
	if !b.InBounds(r, c) {
		return Move{}, false, false
	}
	cell := b.At(r, c)
	switch {
	case cell.IsEmpty():
		return Move{Row: r, Col: c}, true, true
	case cell.IsWall():
		return Move{}, false, false
	case cell.Side != side:
		return Move{Row: r, Col: c, IsCapture: true}, true, false
	default:
		return Move{}, false, false
	}
}

func slide(b Board, r, c int, side Side, dirs []offset, moves []Move) []Move {
	for _, d := range dirs {
		nr, nc := r+d.dr, c+d.dc
		for {
			m, ok, cont := target(b, nr, nc, side)
			if ok {
				moves = append(moves, m)
			}
			if !cont {
				break
			}
			nr += d.dr
			nc += d.dc
		}
	}
	return moves
}

func step(b Board, r, c int, side Side, offsets []offset, moves []Move) []Move {
	for _, d := range offsets {
		if m, ok, _ := target(b, r+d.dr, c+d.dc, side); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

func pawnMoves(b Board, r, c int, side Side, moves []Move) []Move {
	fr := r + pawnForward
	if b.InBounds(fr, c) && b.At(fr, c).IsEmpty() {
		moves = append(moves, Move{Row: fr, Col: c})
	}

	for _, dc := range []int{1, -1} {
		fc := c + dc
		if !b.InBounds(fr, fc) {
			continue
		}
		cell := b.At(fr, fc)
		if cell.IsPiece() && cell.Side != side {
			moves = append(moves, Move{Row: fr, Col: fc, IsCapture: true})
		}
	}
	return moves
}

// CanMoveTo reports whether the piece on from may legally move to to
func CanMoveTo(b Board, from, to Pos) (Move, bool) {
	for _, m := range LegalMoves(b, from.Row, from.Col) {
		if m.Row == to.Row && m.Col == to.Col {
			return m, true
		}
	}
	return Move{}, false
}
