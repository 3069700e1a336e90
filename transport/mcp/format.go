package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/soulchess/game/engine"
	"github.com/wricardo/soulchess/game/service"
)

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	result := fmt.Sprintf("Session: %s\nConfig: %s\nSeed: %d\nCreated: %s\nLast accessed: %s\n\n",
		session.ID, session.ConfigName, session.Seed,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		session.LastAccessedAt.Format("2006-01-02 15:04:05"))
	return result + formatGameState(session.GameState)
}

func statusLine(state *engine.GameState) string {
	switch state.Status {
	case engine.Won:
		if state.Optimal {
			return "🎉 SOLVED (optimal)"
		}
		return "✅ SOLVED (not optimal)"
	case engine.Lost:
		return "💀 STUCK"
	}
	return "▶ PLAYING"
}

// boardText renders the board with indices, falling back to the layout rows
// when the cells were not sent
func boardText(state *engine.GameState) string {
	if state.Board.Rows() > 0 {
		return state.Board.String()
	}
	return strings.Join(state.Layout, "\n") + "\n"
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Level %d | %s\n", state.Level, statusLine(state))
	fmt.Fprintf(&sb, "Moves: %d (minimum %d) | Souls: %d | Hints used: %d\n",
		state.MovesMade, state.MinMoves, state.Souls, state.HintsUsed)

	if pos, piece, ok := state.Board.Controlled(); ok {
		fmt.Fprintf(&sb, "You are a %s at row %d, col %d\n", piece.Kind, pos.Row, pos.Col)
		fmt.Fprintf(&sb, "Opposing pieces left: %d\n", state.Board.CountSide(engine.Opposing))
	}
	if state.Fallback {
		sb.WriteString("Note: this puzzle is easier than the level target\n")
	}

	sb.WriteString("\nBoard (upper-case = you, lower-case = opposing, # = wall):\n")
	sb.WriteString(boardText(state))

	if state.Message != "" {
		fmt.Fprintf(&sb, "\nMessage: %s\n", state.Message)
	}

	return sb.String()
}

func formatLegalMoves(kind engine.Kind, from engine.Pos, moves []engine.Move) string {
	if len(moves) == 0 {
		return fmt.Sprintf("The %s at %s has no legal moves.\n", kind, from)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Legal moves for the %s at %s:\n", kind, from)
	for _, m := range moves {
		if m.IsCapture {
			fmt.Fprintf(&sb, "- row %d, col %d (capture)\n", m.Row, m.Col)
		} else {
			fmt.Fprintf(&sb, "- row %d, col %d\n", m.Row, m.Col)
		}
	}
	return sb.String()
}

func formatOutcome(o *engine.MoveOutcome) string {
	if o.IsCapture {
		return fmt.Sprintf("%s %s -> %s captured %s, now a %s", o.KindBefore, o.From, o.To, o.Captured, o.KindAfter)
	}
	return fmt.Sprintf("%s %s -> %s", o.KindBefore, o.From, o.To)
}

func formatMoveResult(result *service.MoveResult) string {
	var sb strings.Builder

	if result.Success {
		sb.WriteString("✓ Move successful\n")
		if result.Outcome != nil {
			sb.WriteString(formatOutcome(result.Outcome) + "\n")
		}
	} else {
		sb.WriteString("✗ Move failed\n")
	}

	if result.Message != "" {
		fmt.Fprintf(&sb, "%s\n", result.Message)
	}
	sb.WriteString("\n")
	sb.WriteString(formatGameState(result.GameState))

	if result.GameState != nil && result.GameState.Status == engine.Playing && len(result.LegalMoves) > 0 {
		targets := make([]string, 0, len(result.LegalMoves))
		for _, m := range result.LegalMoves {
			targets = append(targets, m.String())
		}
		fmt.Fprintf(&sb, "\nLegal moves: %s\n", strings.Join(targets, " "))
	}

	return sb.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Bulk move for %s: %d/%d executed", sessionID, result.MovesExecuted, result.RequestedMoves)
	if result.Truncated {
		fmt.Fprintf(&sb, " (truncated to %d)", result.Limit)
	}
	sb.WriteString("\n")

	for i := range result.Outcomes {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, formatOutcome(&result.Outcomes[i]))
	}

	if result.StopReasonCode != "" {
		fmt.Fprintf(&sb, "Stopped: %s", result.StopReasonCode)
		if result.StoppedOnMove > 0 {
			fmt.Fprintf(&sb, " on move %d", result.StoppedOnMove)
		}
		if result.StoppedReason != "" {
			fmt.Fprintf(&sb, " (%s)", result.StoppedReason)
		}
		sb.WriteString("\n")
	}
	if result.SoulsGained > 0 {
		fmt.Fprintf(&sb, "Souls gained: %d\n", result.SoulsGained)
	}

	sb.WriteString("\n")
	sb.WriteString(formatGameState(result.GameState))
	return sb.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Move History (Page %d/%d, Total: %d):\n\n", history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		line := fmt.Sprintf("#%d: %s %s -> %s", move.MoveNumber, move.KindBefore, move.From, move.To)
		if move.IsCapture {
			line += fmt.Sprintf(" x %s, now %s", move.Captured, move.KindAfter)
		}
		sb.WriteString(line + "\n")
	}

	if history.HasPrevious || history.HasNext {
		sb.WriteString("\n")
		if history.HasPrevious {
			fmt.Fprintf(&sb, "Previous page: %d\n", history.Page-1)
		}
		if history.HasNext {
			fmt.Fprintf(&sb, "Next page: %d\n", history.Page+1)
		}
	}

	return sb.String()
}

func formatSolveResult(result *service.SolveResult) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(result.Layout, "\n"))
	sb.WriteString("\n\n")

	if !result.Solvable {
		fmt.Fprintf(&sb, "No solution (status: %s, %d states explored)\n", result.Status, result.Explored)
		return sb.String()
	}

	fmt.Fprintf(&sb, "Minimum moves: %d | Solutions: %d | Unique: %v | Explored: %d\n",
		result.MinMoves, len(result.Solutions), result.Unique, result.Explored)
	for i, path := range result.Solutions {
		steps := make([]string, 0, len(path))
		for _, m := range path {
			steps = append(steps, m.String())
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, strings.Join(steps, " "))
	}
	return sb.String()
}
