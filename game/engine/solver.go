package engine

import (
	"context"
	"strconv"
	"strings"
)

// SolveBudget caps the nodes expanded when solving layouts that come from
// outside the generator
const SolveBudget = 250_000

// ctxCheckInterval is how many expansions pass between context checks
const ctxCheckInterval = 1024

// Solution is the result of an exhaustive search from a starting board
type Solution struct {
	// MinMoves is the shortest winning length, 0 when unsolvable
	MinMoves int `json:"min_moves"`
	// Solutions holds every winning sequence of length MinMoves
	Solutions [][]Move `json:"solutions"`
	// Explored counts expanded search nodes
	Explored int `json:"explored"`
}

// Solvable reports whether at least one winning sequence exists
func (s Solution) Solvable() bool {
	return len(s.Solutions) > 0
}

// Unique reports whether exactly one minimal winning sequence exists
func (s Solution) Unique() bool {
	return len(s.Solutions) == 1
}

// searchNode is one entry of the breadth-first frontier
type searchNode struct {
	pos   Pos
	kind  Kind
	board Board
	path  []Move
}

// Signature identifies a search state by the controlled piece's position and
// kind plus the positions of the remaining opposing pieces. Opposing pieces
// never move, so their kinds are implied by their positions.
func Signature(pos Pos, kind Kind, b Board) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(pos.Row))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(pos.Col))
	sb.WriteByte('|')
	sb.WriteString(kind.String())
	sb.WriteByte('|')
	for i, p := range b.OpposingPositions() {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.Itoa(p.Row))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(p.Col))
	}
	return sb.String()
}

// Solve runs a breadth-first search over every state reachable by the
// controlled piece and returns all minimal winning move sequences.
// A board without a controlled piece has no solution.
func Solve(initial Board) Solution {
	sol, _ := search(context.Background(), initial, 0)
	return sol
}

// SolveContext is Solve with an upper bound on expanded nodes and
// cancellation. It returns ErrSearchLimit once more than maxExplored nodes
// have been expanded (0 means no limit), or ctx.Err() when ctx is done.
func SolveContext(ctx context.Context, initial Board, maxExplored int) (Solution, error) {
	return search(ctx, initial, maxExplored)
}

func search(ctx context.Context, initial Board, maxExplored int) (Solution, error) {
	start, piece, ok := initial.Controlled()
	if !ok {
		return Solution{Solutions: [][]Move{}}, nil
	}
	if err := ctx.Err(); err != nil {
		return Solution{Solutions: [][]Move{}}, err
	}

	queue := []searchNode{{pos: start, kind: piece.Kind, board: initial, path: []Move{}}}
	visited := map[string]bool{
		Signature(start, piece.Kind, initial): true,
	}

	var solutions [][]Move
	minMoves := -1
	explored := 0

	for len(queue) > 0 {
		node := queue[0]
		queue[0] = searchNode{}
		queue = queue[1:]

		// BFS dequeues in non-decreasing depth, nothing longer can tie
		if minMoves >= 0 && len(node.path) > minMoves {
			continue
		}

		switch Classify(node.board) {
		case Won:
			if minMoves < 0 || len(node.path) < minMoves {
				minMoves = len(node.path)
				solutions = [][]Move{node.path}
			} else if len(node.path) == minMoves {
				solutions = append(solutions, node.path)
			}
			continue
		case Lost:
			continue
		}

		explored++
		if maxExplored > 0 && explored > maxExplored {
			return Solution{Solutions: [][]Move{}, Explored: explored}, ErrSearchLimit
		}
		if explored%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Solution{Solutions: [][]Move{}, Explored: explored}, err
			}
		}

		for _, m := range LegalMoves(node.board, node.pos.Row, node.pos.Col) {
			to := m.To()
			next := ApplyMove(node.board, node.pos, to)
			kind := next.At(to.Row, to.Col).Kind
			sig := Signature(to, kind, next)
			if visited[sig] {
				continue
			}
			visited[sig] = true

			path := make([]Move, len(node.path), len(node.path)+1)
			copy(path, node.path)
			path = append(path, m)

			queue = append(queue, searchNode{pos: to, kind: kind, board: next, path: path})
		}
	}

	if minMoves < 0 {
		return Solution{Solutions: [][]Move{}, Explored: explored}, nil
	}
	return Solution{MinMoves: minMoves, Solutions: solutions, Explored: explored}, nil
}
