package engine

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBoardConstants(t *testing.T) {
	tests := []struct {
		name     string
		actual   int
		expected int
	}{
		{"MinBoardSize", MinBoardSize, 4},
		{"MaxBoardSize", MaxBoardSize, 7},
		{"MaxLayoutSize", MaxLayoutSize, 7},
		{"DefaultMaxAttempts", DefaultMaxAttempts, 200},
		{"FallbackMinMoves", FallbackMinMoves, 2},
		{"PieceKinds", len(PieceKinds), 6},
	}

	for _, test := range tests {
		if test.actual != test.expected {
			t.Errorf("%s: expected %d, got %d", test.name, test.expected, test.actual)
		}
	}
}

func TestKindNamesAndLetters(t *testing.T) {
	tests := []struct {
		kind   Kind
		name   string
		letter byte
	}{
		{King, "king", 'K'},
		{Queen, "queen", 'Q'},
		{Rook, "rook", 'R'},
		{Bishop, "bishop", 'B'},
		{Knight, "knight", 'N'},
		{Pawn, "pawn", 'P'},
		{Wall, "wall", 0},
		{None, "none", 0},
	}

	for _, test := range tests {
		if got := test.kind.String(); got != test.name {
			t.Errorf("Expected %s, got %s", test.name, got)
		}
		if got := test.kind.Letter(); got != test.letter {
			t.Errorf("%s: expected letter %q, got %q", test.name, test.letter, got)
		}
		if test.kind.IsPiece() != (test.letter != 0) {
			t.Errorf("%s: unexpected IsPiece %v", test.name, test.kind.IsPiece())
		}
	}
}

func TestCellJSONMarshaling(t *testing.T) {
	cell := Piece(Knight, Opposing)

	data, err := json.Marshal(cell)
	if err != nil {
		t.Fatalf("Failed to marshal cell: %v", err)
	}
	if want := `{"kind":"knight","side":"opposing"}`; string(data) != want {
		t.Errorf("Expected %s, got %s", want, data)
	}

	var decoded Cell
	if err := json.Unmarshal([]byte(`{"kind":"Knight","side":"OPPOSING"}`), &decoded); err != nil {
		t.Fatalf("Failed to unmarshal cell: %v", err)
	}
	if decoded != cell {
		t.Errorf("Expected %+v, got %+v", cell, decoded)
	}

	if err := json.Unmarshal([]byte(`{"kind":"dragon","side":"opposing"}`), &decoded); err == nil {
		t.Error("Expected error for unknown kind")
	}
	if err := json.Unmarshal([]byte(`{"kind":"rook","side":"blue"}`), &decoded); err == nil {
		t.Error("Expected error for unknown side")
	}
}

func TestMoveJSONMarshaling(t *testing.T) {
	data, err := json.Marshal(Move{Row: 2, Col: 3, IsCapture: true})
	if err != nil {
		t.Fatalf("Failed to marshal move: %v", err)
	}
	if want := `{"row":2,"col":3,"is_capture":true}`; string(data) != want {
		t.Errorf("Expected %s, got %s", want, data)
	}
}

func TestGameStateJSONMarshaling(t *testing.T) {
	state := GameState{
		Board:        mustParse(t, "R.p"),
		Level:        3,
		MinMoves:     1,
		SolutionPath: []Move{{Row: 0, Col: 2, IsCapture: true}},
		Status:       Won,
		Souls:        1,
		Message:      "Perfect! Optimal path found.",
		ConfigName:   "classic",
	}

	data, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("Failed to marshal state: %v", err)
	}

	for _, fragment := range []string{`"status":"won"`, `"level":3`, `"souls":1`, `"kind":"rook"`, `"config_name":"classic"`} {
		if !strings.Contains(string(data), fragment) {
			t.Errorf("Expected JSON to contain %s, got %s", fragment, data)
		}
	}

	var decoded GameState
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal state: %v", err)
	}
	if decoded.Status != Won || decoded.Board.At(0, 0) != Piece(Rook, Controlled) {
		t.Errorf("Round trip lost data: %+v", decoded)
	}
}

func TestStatusText(t *testing.T) {
	var s Status
	if err := s.UnmarshalText([]byte("lost")); err != nil || s != Lost {
		t.Errorf("Expected lost, got %s (%v)", s, err)
	}
	if err := s.UnmarshalText([]byte("draw")); err == nil {
		t.Error("Expected error for unknown status")
	}
}

func TestGameStateClone(t *testing.T) {
	board := mustParse(t, "R..n", "####", "..b.")
	entry := MoveHistoryEntry{From: Pos{0, 0}, To: Pos{0, 1}, KindBefore: Rook, KindAfter: Rook, MoveNumber: 1}
	state := &GameState{
		Board:        board.Clone(),
		InitialBoard: board,
		Level:        2,
		SolutionPath: []Move{{Row: 0, Col: 3, IsCapture: true}},
		MovesMade:    1,
		MoveHistory:  []MoveHistoryEntry{entry},
		CurrentMoves: []MoveHistoryEntry{entry},
		Layout:       board.Layout(),
	}

	clone := state.Clone()
	if diff := cmp.Diff(state, clone); diff != "" {
		t.Fatalf("Clone differs (-state +clone):\n%s", diff)
	}

	state.Board.Set(0, 0, Empty())
	state.SolutionPath[0].Col = 2
	state.MoveHistory[0].MoveNumber = 9
	state.CurrentMoves[0].MoveNumber = 9
	state.Layout[0] = "...."
	state.MovesMade = 2

	if clone.Board.At(0, 0) != Piece(Rook, Controlled) || clone.SolutionPath[0].Col != 3 ||
		clone.MoveHistory[0].MoveNumber != 1 || clone.CurrentMoves[0].MoveNumber != 1 ||
		clone.Layout[0] != "R..n" || clone.MovesMade != 1 {
		t.Errorf("Clone shares memory with the original: %+v", clone)
	}

	if (*GameState)(nil).Clone() != nil {
		t.Error("Expected nil clone of nil state")
	}
}
