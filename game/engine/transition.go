package engine

// ApplyMove moves the piece on from to to and returns the new board. The
// input board is not modified. Capturing an opposing piece makes the mover
// take the captured piece's kind; its side never changes. Legality is the
// caller's responsibility: only pass destinations from LegalMoves.
func ApplyMove(b Board, from, to Pos) Board {
	next := b.Clone()
	piece := next.Cells[from.Row][from.Col]
	captured := next.Cells[to.Row][to.Col]

	if captured.IsPiece() && captured.Side != piece.Side {
		piece.Kind = captured.Kind
	}

	next.Cells[to.Row][to.Col] = piece
	next.Cells[from.Row][from.Col] = Empty()
	return next
}
