package engine

import "errors"

var (
	ErrInvalidLayout     = errors.New("invalid layout")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrIllegalMove       = errors.New("illegal move")
	ErrGameOver          = errors.New("game is over")
	ErrNoControlledPiece = errors.New("no controlled piece on board")
	ErrUnsolvable        = errors.New("puzzle has no solution")
	ErrNoHint            = errors.New("no more hints available")
	ErrNotWon            = errors.New("puzzle not solved yet")
	ErrOutOfBounds       = errors.New("position is off the board")
	ErrSearchLimit       = errors.New("search limit reached")
)
