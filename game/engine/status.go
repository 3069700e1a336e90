package engine

// Classify reports whether the board is still playing, won or lost.
//
// A board without a controlled piece is lost. With a controlled piece and no
// opposing pieces it is won, even if the piece could not move. Otherwise a
// controlled piece with no legal moves is stuck and the board is lost.
func Classify(b Board) Status {
	pos, _, ok := b.Controlled()
	if !ok {
		return Lost
	}
	if b.CountSide(Opposing) == 0 {
		return Won
	}
	if len(LegalMoves(b, pos.Row, pos.Col)) == 0 {
		return Lost
	}
	return Playing
}
