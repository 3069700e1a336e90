package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLegalMoves(t *testing.T) {
	tests := []struct {
		name   string
		layout []string
		from   Pos
		want   []Move
	}{
		{
			name:   "rook slides and stops on capture",
			layout: []string{"R..p", "....", "....", "...."},
			from:   Pos{0, 0},
			want: []Move{
				{Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3, IsCapture: true},
				{Row: 1, Col: 0}, {Row: 2, Col: 0}, {Row: 3, Col: 0},
			},
		},
		{
			name:   "ray ends at first enemy",
			layout: []string{"R.pp"},
			from:   Pos{0, 0},
			want:   []Move{{Row: 0, Col: 1}, {Row: 0, Col: 2, IsCapture: true}},
		},
		{
			name:   "knight jumps from corner",
			layout: []string{"N...", "....", "....", "...."},
			from:   Pos{0, 0},
			want:   []Move{{Row: 2, Col: 1}, {Row: 1, Col: 2}},
		},
		{
			name:   "knight jumps over walls",
			layout: []string{"N#..", "##..", "...."},
			from:   Pos{0, 0},
			want:   []Move{{Row: 2, Col: 1}, {Row: 1, Col: 2}},
		},
		{
			name:   "bishop blocked by wall",
			layout: []string{"B..", ".#.", "..."},
			from:   Pos{0, 0},
			want:   nil,
		},
		{
			name:   "king steps in all directions",
			layout: []string{"...", ".K.", "..."},
			from:   Pos{1, 1},
			want: []Move{
				{Row: 1, Col: 2}, {Row: 1, Col: 0}, {Row: 2, Col: 1}, {Row: 0, Col: 1},
				{Row: 2, Col: 2}, {Row: 2, Col: 0}, {Row: 0, Col: 2}, {Row: 0, Col: 0},
			},
		},
		{
			name:   "queen combines rook and bishop",
			layout: []string{"#p", "Q."},
			from:   Pos{1, 0},
			want:   []Move{{Row: 1, Col: 1}, {Row: 0, Col: 1, IsCapture: true}},
		},
		{
			name:   "pawn advances and captures diagonally",
			layout: []string{"n.b.", ".P.."},
			from:   Pos{1, 1},
			want: []Move{
				{Row: 0, Col: 1},
				{Row: 0, Col: 2, IsCapture: true},
				{Row: 0, Col: 0, IsCapture: true},
			},
		},
		{
			name:   "pawn cannot capture straight ahead",
			layout: []string{".p#.", ".P.."},
			from:   Pos{1, 1},
			want:   nil,
		},
		{
			name:   "pawn on top row is frozen",
			layout: []string{"P.", ".p"},
			from:   Pos{0, 0},
			want:   nil,
		},
		{
			name:   "opposing piece captures controlled piece",
			layout: []string{"r.R"},
			from:   Pos{0, 0},
			want:   []Move{{Row: 0, Col: 1}, {Row: 0, Col: 2, IsCapture: true}},
		},
		{
			name:   "empty cell has no moves",
			layout: []string{"..", ".R"},
			from:   Pos{0, 0},
			want:   nil,
		},
		{
			name:   "wall has no moves",
			layout: []string{"#.", ".R"},
			from:   Pos{0, 0},
			want:   nil,
		},
		{
			name:   "off board has no moves",
			layout: []string{"R"},
			from:   Pos{3, 3},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, tt.layout...)
			got := LegalMoves(b, tt.from.Row, tt.from.Col)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LegalMoves mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCanMoveTo(t *testing.T) {
	b := mustParse(t, "R..p", "....")

	m, ok := CanMoveTo(b, Pos{0, 0}, Pos{0, 3})
	if !ok {
		t.Fatal("Expected capture on (0,3) to be legal")
	}
	if !m.IsCapture {
		t.Error("Expected move to be flagged as a capture")
	}

	if _, ok := CanMoveTo(b, Pos{0, 0}, Pos{1, 1}); ok {
		t.Error("Expected diagonal rook move to be illegal")
	}
	if _, ok := CanMoveTo(b, Pos{1, 1}, Pos{0, 1}); ok {
		t.Error("Expected move from empty cell to be illegal")
	}
}

func TestApplyMove(t *testing.T) {
	t.Run("plain move", func(t *testing.T) {
		b := mustParse(t, "R..p")
		next := ApplyMove(b, Pos{0, 0}, Pos{0, 1})
		if diff := cmp.Diff([]string{".R.p"}, next.Layout()); diff != "" {
			t.Errorf("Layout mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("capture switches soul", func(t *testing.T) {
		b := mustParse(t, "R..p")
		next := ApplyMove(b, Pos{0, 0}, Pos{0, 3})
		if diff := cmp.Diff([]string{"...P"}, next.Layout()); diff != "" {
			t.Errorf("Layout mismatch (-want +got):\n%s", diff)
		}
		if got := next.At(0, 3); got != Piece(Pawn, Controlled) {
			t.Errorf("Expected controlled pawn on (0,3), got %+v", got)
		}
	})

	t.Run("input board untouched", func(t *testing.T) {
		b := mustParse(t, "R..p")
		ApplyMove(b, Pos{0, 0}, Pos{0, 3})
		if diff := cmp.Diff([]string{"R..p"}, b.Layout()); diff != "" {
			t.Errorf("Original board changed (-want +got):\n%s", diff)
		}
	})

	t.Run("opposing capture keeps side", func(t *testing.T) {
		b := mustParse(t, "r.N")
		next := ApplyMove(b, Pos{0, 0}, Pos{0, 2})
		if got := next.At(0, 2); got != Piece(Knight, Opposing) {
			t.Errorf("Expected opposing knight on (0,2), got %+v", got)
		}
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		layout []string
		want   Status
	}{
		{"lone controlled piece wins", []string{"K"}, Won},
		{"won even when immobile", []string{"P#", ".."}, Won},
		{"no controlled piece loses", []string{"..", ".p"}, Lost},
		{"empty board loses", []string{"...."}, Lost},
		{"stuck pawn loses", []string{"p#", "P."}, Lost},
		{"movable piece keeps playing", []string{"R.p"}, Playing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(mustParse(t, tt.layout...)); got != tt.want {
				t.Errorf("Classify() = %s, expected %s", got, tt.want)
			}
		})
	}
}
