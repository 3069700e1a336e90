package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/wricardo/soulchess/game/engine"
	"github.com/wricardo/soulchess/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	seed     uint64
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
		seed:     7,
	}
}

func (m *MockSessionManager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	if id == "" {
		id = fmt.Sprintf("t%03d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(config, m.seed)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		Seed:           m.seed,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, service.ErrSessionNotFound
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, config *engine.GameConfig) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, config)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return service.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.Touch(time.Now())
		return nil
	}
	return service.ErrSessionNotFound
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.GameConfig
}

func NewMockConfigManager() *MockConfigManager {
	seed := uint64(11)
	return &MockConfigManager{
		configs: map[string]*engine.GameConfig{
			"intro": {
				Name:        "Intro",
				Description: "Rook takes the knight, knight takes the bishop",
				Level:       1,
				Layout:      []string{"R..n", "####", "..b."},
			},
			"trap": {
				Name:        "Trap",
				Description: "Taking the pawn first leaves you stuck",
				Level:       1,
				Layout:      []string{"n..", "..#", "R.p"},
			},
			"generated": {
				Name:        "Generated",
				Description: "Generated puzzles",
				Level:       1,
				Seed:        &seed,
			},
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.GameConfig, error) {
	if config, exists := m.configs[name]; exists {
		return config, nil
	}
	return nil, service.ErrConfigNotFound
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	var configs []*service.ConfigInfo
	for id, config := range m.configs {
		configs = append(configs, &service.ConfigInfo{
			Filename:    id + ".json",
			ConfigID:    id,
			Name:        config.Name,
			Description: config.Description,
			Level:       config.StartLevel(),
			FixedLayout: config.HasLayout(),
		})
	}
	return configs, nil
}

func (m *MockConfigManager) GetDefault() *engine.GameConfig {
	return m.configs["intro"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.GameConfig) error {
	m.configs[name] = config
	return nil
}

func newTestService(t *testing.T) (service.GameService, *MockSessionManager, *MockConfigManager) {
	t.Helper()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	return service.NewGameService(sessions, configs), sessions, configs
}

func createSession(t *testing.T, svc service.GameService, configName string) *service.SessionInfo {
	t.Helper()
	info, err := svc.CreateSession(context.Background(), configName, 0)
	if err != nil {
		t.Fatalf("CreateSession(%q) failed: %v", configName, err)
	}
	return info
}

func eventTypes(events []service.GameEvent) []string {
	types := make([]string, len(events))
	for i, ev := range events {
		types[i] = ev.Type
	}
	return types
}

func TestGameService_CreateSession(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	t.Run("default config", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "", 0)
		if err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if info.ConfigName != "intro" {
			t.Errorf("Expected config_id 'intro' for the default config, got %q", info.ConfigName)
		}
		if info.GameState.MinMoves != 2 {
			t.Errorf("Expected intro puzzle to need 2 moves, got %d", info.GameState.MinMoves)
		}
		if info.Seed != 7 {
			t.Errorf("Expected session seed 7, got %d", info.Seed)
		}
	})

	t.Run("level override", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "generated", 3)
		if err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if info.GameState.Level != 3 {
			t.Errorf("Expected level 3, got %d", info.GameState.Level)
		}
		if info.GameConfig.Level != 3 {
			t.Errorf("Expected session config level 3, got %d", info.GameConfig.Level)
		}
	})

	t.Run("override leaves the shared config untouched", func(t *testing.T) {
		cfg, _ := svc.LoadConfig(ctx, "generated")
		if cfg.Level != 1 {
			t.Errorf("Expected stored config to keep level 1, got %d", cfg.Level)
		}
	})

	t.Run("unknown config", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, "missing", 0)
		if !errors.Is(err, service.ErrConfigNotFound) {
			t.Fatalf("Expected ErrConfigNotFound, got %v", err)
		}
		if !strings.Contains(err.Error(), "Available configs") {
			t.Errorf("Expected available configs in error, got %v", err)
		}
	})

	t.Run("negative level", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, "intro", -1)
		if !errors.Is(err, service.ErrInvalidRequest) {
			t.Errorf("Expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := svc.CreateSession(cancelled, "intro", 0); !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	})
}

func TestGameService_SessionLifecycle(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	info := createSession(t, svc, "intro")

	got, err := svc.GetSession(ctx, info.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.ID != info.ID || got.ConfigName != "intro" {
		t.Errorf("Unexpected session info: %+v", got)
	}

	sessions, err := svc.ListSessions(ctx)
	if err != nil || len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d (%v)", len(sessions), err)
	}

	if err := svc.DeleteSession(ctx, info.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := svc.GetSession(ctx, info.ID); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after delete, got %v", err)
	}
	if err := svc.DeleteSession(ctx, info.ID); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on second delete, got %v", err)
	}
}

func TestGameService_Select(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	info := createSession(t, svc, "intro")

	result, err := svc.Select(ctx, info.ID, engine.Pos{Row: 0, Col: 0})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	want := []engine.Move{{Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3, IsCapture: true}}
	if diff := cmp.Diff(want, result.Moves); diff != "" {
		t.Errorf("Select moves mismatch (-want +got):\n%s", diff)
	}

	result, err = svc.Select(ctx, info.ID, engine.Pos{Row: 2, Col: 2})
	if err != nil {
		t.Fatalf("Select of opposing piece failed: %v", err)
	}
	if len(result.Moves) != 0 {
		t.Errorf("Expected no moves for an opposing piece, got %v", result.Moves)
	}

	if _, err := svc.Select(ctx, info.ID, engine.Pos{Row: 9, Col: 9}); !errors.Is(err, engine.ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
	if _, err := svc.Select(ctx, "nope", engine.Pos{}); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestGameService_Move(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	t.Run("optimal solve", func(t *testing.T) {
		info := createSession(t, svc, "intro")

		result, err := svc.Move(ctx, info.ID, engine.Pos{Row: 0, Col: 3})
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if !result.Success {
			t.Fatalf("Expected capture to succeed: %s", result.Message)
		}
		if result.Message != "Soul Switched: ROOK → KNIGHT" {
			t.Errorf("Unexpected message %q", result.Message)
		}
		if diff := cmp.Diff([]string{service.EventMove, service.EventSoulSwitch}, eventTypes(result.Events)); diff != "" {
			t.Errorf("Events mismatch (-want +got):\n%s", diff)
		}
		if len(result.LegalMoves) == 0 {
			t.Error("Expected the knight to have moves")
		}

		result, err = svc.Move(ctx, info.ID, engine.Pos{Row: 2, Col: 2})
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if result.GameState.Status != engine.Won || !result.GameState.Optimal {
			t.Errorf("Expected optimal win, got status %s optimal %v", result.GameState.Status, result.GameState.Optimal)
		}
		if result.Message != "Perfect! Optimal path found." {
			t.Errorf("Unexpected message %q", result.Message)
		}
		if diff := cmp.Diff([]string{service.EventMove, service.EventSoulSwitch, service.EventVictory}, eventTypes(result.Events)); diff != "" {
			t.Errorf("Events mismatch (-want +got):\n%s", diff)
		}
		if len(result.LegalMoves) != 0 {
			t.Errorf("Expected no legal moves after the win, got %v", result.LegalMoves)
		}

		if _, err := svc.Move(ctx, info.ID, engine.Pos{Row: 0, Col: 0}); !errors.Is(err, engine.ErrGameOver) {
			t.Errorf("Expected ErrGameOver after the win, got %v", err)
		}
	})

	t.Run("illegal move", func(t *testing.T) {
		info := createSession(t, svc, "intro")

		result, err := svc.Move(ctx, info.ID, engine.Pos{Row: 1, Col: 1})
		if err != nil {
			t.Fatalf("Illegal move should not be an error: %v", err)
		}
		if result.Success {
			t.Error("Expected illegal move to fail")
		}
		if result.Outcome != nil || len(result.Events) != 0 {
			t.Errorf("Expected no outcome or events, got %+v", result)
		}
		if result.Message != "Can't move there!" {
			t.Errorf("Unexpected message %q", result.Message)
		}
		if result.GameState.MovesMade != 0 {
			t.Errorf("Expected no move to be counted, got %d", result.GameState.MovesMade)
		}
	})

	t.Run("stuck", func(t *testing.T) {
		info := createSession(t, svc, "trap")

		result, err := svc.Move(ctx, info.ID, engine.Pos{Row: 2, Col: 2})
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if result.GameState.Status != engine.Lost {
			t.Errorf("Expected lost game, got %s", result.GameState.Status)
		}
		if diff := cmp.Diff([]string{service.EventMove, service.EventSoulSwitch, service.EventStuck}, eventTypes(result.Events)); diff != "" {
			t.Errorf("Events mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing session", func(t *testing.T) {
		if _, err := svc.Move(ctx, "nope", engine.Pos{}); !errors.Is(err, service.ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestGameService_BulkMove(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name          string
		moves         []engine.Pos
		wantExecuted  int
		wantCode      string
		wantStoppedOn int
		wantSuccess   bool
		wantSouls     int
		wantGameOver  bool
	}{
		{
			name:         "plain moves",
			moves:        []engine.Pos{{Row: 0, Col: 1}, {Row: 0, Col: 2}},
			wantExecuted: 2,
			wantSuccess:  true,
		},
		{
			name:          "stops at victory",
			moves:         []engine.Pos{{Row: 0, Col: 3}, {Row: 2, Col: 2}, {Row: 0, Col: 0}},
			wantExecuted:  2,
			wantCode:      service.StopVictory,
			wantStoppedOn: 2,
			wantSuccess:   true,
			wantSouls:     2,
			wantGameOver:  true,
		},
		{
			name:          "stops at illegal move",
			moves:         []engine.Pos{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 0, Col: 2}},
			wantExecuted:  1,
			wantCode:      service.StopIllegalMove,
			wantStoppedOn: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := createSession(t, svc, "intro")

			result, err := svc.BulkMove(ctx, info.ID, tt.moves)
			if err != nil {
				t.Fatalf("BulkMove failed: %v", err)
			}
			if result.MovesExecuted != tt.wantExecuted {
				t.Errorf("Expected %d moves executed, got %d", tt.wantExecuted, result.MovesExecuted)
			}
			if result.RequestedMoves != len(tt.moves) {
				t.Errorf("Expected %d requested, got %d", len(tt.moves), result.RequestedMoves)
			}
			if result.StopReasonCode != tt.wantCode {
				t.Errorf("Expected stop code %q, got %q", tt.wantCode, result.StopReasonCode)
			}
			if result.StoppedOnMove != tt.wantStoppedOn {
				t.Errorf("Expected stop on move %d, got %d", tt.wantStoppedOn, result.StoppedOnMove)
			}
			if result.Success != tt.wantSuccess {
				t.Errorf("Expected success %v, got %v", tt.wantSuccess, result.Success)
			}
			if result.SoulsGained != tt.wantSouls {
				t.Errorf("Expected %d souls gained, got %d", tt.wantSouls, result.SoulsGained)
			}
			if result.GameOver != tt.wantGameOver {
				t.Errorf("Expected game over %v, got %v", tt.wantGameOver, result.GameOver)
			}
			if len(result.Outcomes) != tt.wantExecuted {
				t.Errorf("Expected %d outcomes, got %d", tt.wantExecuted, len(result.Outcomes))
			}
		})
	}

	t.Run("truncates long sequences", func(t *testing.T) {
		info := createSession(t, svc, "intro")

		moves := make([]engine.Pos, service.MaxBulkMoves+10)
		for i := range moves {
			// Shuffle the rook between (0,1) and (0,0)
			moves[i] = engine.Pos{Row: 0, Col: (i + 1) % 2}
		}

		result, err := svc.BulkMove(ctx, info.ID, moves)
		if err != nil {
			t.Fatalf("BulkMove failed: %v", err)
		}
		if !result.Truncated || result.Limit != service.MaxBulkMoves {
			t.Errorf("Expected truncation at %d, got truncated=%v limit=%d", service.MaxBulkMoves, result.Truncated, result.Limit)
		}
		if result.MovesExecuted != service.MaxBulkMoves {
			t.Errorf("Expected %d moves executed, got %d", service.MaxBulkMoves, result.MovesExecuted)
		}
	})

	t.Run("rejects empty and finished games", func(t *testing.T) {
		info := createSession(t, svc, "intro")

		if _, err := svc.BulkMove(ctx, info.ID, nil); !errors.Is(err, service.ErrInvalidRequest) {
			t.Errorf("Expected ErrInvalidRequest, got %v", err)
		}

		svc.BulkMove(ctx, info.ID, []engine.Pos{{Row: 0, Col: 3}, {Row: 2, Col: 2}})
		if _, err := svc.BulkMove(ctx, info.ID, []engine.Pos{{Row: 0, Col: 0}}); !errors.Is(err, engine.ErrGameOver) {
			t.Errorf("Expected ErrGameOver, got %v", err)
		}
	})
}

func TestGameService_Hint(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	info := createSession(t, svc, "intro")

	hint, err := svc.Hint(ctx, info.ID)
	if err != nil {
		t.Fatalf("Hint failed: %v", err)
	}
	if diff := cmp.Diff(&engine.Move{Row: 0, Col: 3, IsCapture: true}, hint.Move); diff != "" {
		t.Errorf("Hint mismatch (-want +got):\n%s", diff)
	}
	if hint.Message != "Hint: Move here." || hint.HintsUsed != 1 {
		t.Errorf("Unexpected hint result %+v", hint)
	}

	// Wander off the solution until the stored path runs out
	svc.Move(ctx, info.ID, engine.Pos{Row: 0, Col: 1})
	svc.Move(ctx, info.ID, engine.Pos{Row: 0, Col: 2})

	hint, err = svc.Hint(ctx, info.ID)
	if err != nil {
		t.Fatalf("Exhausted hints should not be an error: %v", err)
	}
	if hint.Move != nil || hint.Message != "No more hints available." {
		t.Errorf("Expected no hint, got %+v", hint)
	}
}

func TestGameService_RestartAndLevels(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	info := createSession(t, svc, "intro")

	if _, err := svc.NextLevel(ctx, info.ID); !errors.Is(err, engine.ErrNotWon) {
		t.Errorf("Expected ErrNotWon before solving, got %v", err)
	}

	svc.Move(ctx, info.ID, engine.Pos{Row: 0, Col: 3})
	state, err := svc.Restart(ctx, info.ID)
	if err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	if state.MovesMade != 0 || state.Souls != 0 || state.Message != "Level Restarted." {
		t.Errorf("Unexpected state after restart: moves=%d souls=%d message=%q", state.MovesMade, state.Souls, state.Message)
	}
	if state.Board.At(0, 0) != engine.Piece(engine.Rook, engine.Controlled) {
		t.Error("Expected rook back on (0,0)")
	}

	svc.BulkMove(ctx, info.ID, []engine.Pos{{Row: 0, Col: 3}, {Row: 2, Col: 2}})
	state, err = svc.NextLevel(ctx, info.ID)
	if err != nil {
		t.Fatalf("NextLevel failed: %v", err)
	}
	if state.Level != 2 {
		t.Errorf("Expected level 2, got %d", state.Level)
	}
	if state.TotalMoves != 3 {
		t.Errorf("Expected cumulative history to carry over 3 moves, got %d", state.TotalMoves)
	}

	state, err = svc.NewPuzzle(ctx, info.ID)
	if err != nil {
		t.Fatalf("NewPuzzle failed: %v", err)
	}
	if state.Level != 2 || state.MovesMade != 0 {
		t.Errorf("Expected a fresh level 2 puzzle, got level %d with %d moves", state.Level, state.MovesMade)
	}
}

func TestGameService_GetMoveHistory(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	info := createSession(t, svc, "intro")
	svc.BulkMove(ctx, info.ID, []engine.Pos{{Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 1}})

	moveNumbers := func(h *service.HistoryResponse) []int {
		nums := make([]int, len(h.Moves))
		for i, m := range h.Moves {
			nums[i] = m.MoveNumber
		}
		return nums
	}

	tests := []struct {
		name      string
		opts      service.HistoryOptions
		want      []int
		wantPages int
		wantNext  bool
		wantPrev  bool
		wantLimit int
	}{
		{"defaults", service.HistoryOptions{}, []int{3, 2, 1}, 1, false, false, 20},
		{"desc first page", service.HistoryOptions{Page: 1, Limit: 2, Order: "desc"}, []int{3, 2}, 2, true, false, 2},
		{"desc second page", service.HistoryOptions{Page: 2, Limit: 2, Order: "desc"}, []int{1}, 2, false, true, 2},
		{"asc", service.HistoryOptions{Page: 1, Limit: 2, Order: "asc"}, []int{1, 2}, 2, true, false, 2},
		{"past the end", service.HistoryOptions{Page: 5, Limit: 2, Order: "asc"}, []int{}, 2, false, true, 2},
		{"limit capped", service.HistoryOptions{Limit: 500}, []int{3, 2, 1}, 1, false, false, 100},
		{"huge page asc", service.HistoryOptions{Page: 100_000_000_000_000_000, Limit: 100, Order: "asc"}, []int{}, 1, false, true, 100},
		{"huge page desc", service.HistoryOptions{Page: 100_000_000_000_000_000, Limit: 100, Order: "desc"}, []int{}, 1, false, true, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history, err := svc.GetMoveHistory(ctx, info.ID, tt.opts)
			if err != nil {
				t.Fatalf("GetMoveHistory failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, moveNumbers(history)); diff != "" {
				t.Errorf("Move numbers mismatch (-want +got):\n%s", diff)
			}
			if history.TotalMoves != 3 {
				t.Errorf("Expected 3 total moves, got %d", history.TotalMoves)
			}
			if history.TotalPages != tt.wantPages || history.HasNext != tt.wantNext || history.HasPrevious != tt.wantPrev {
				t.Errorf("Unexpected pagination %+v", history)
			}
			if history.PageSize != tt.wantLimit {
				t.Errorf("Expected page size %d, got %d", tt.wantLimit, history.PageSize)
			}
		})
	}
}

func TestGameService_Configs(t *testing.T) {
	svc, _, configs := newTestService(t)
	ctx := context.Background()

	list, err := svc.ListConfigs(ctx)
	if err != nil || len(list) != 3 {
		t.Fatalf("Expected 3 configs, got %d (%v)", len(list), err)
	}

	config := &engine.GameConfig{Name: "Mine", Description: "Custom", Layout: []string{"Q..r"}}
	if err := svc.SaveConfig(ctx, "mine", config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if configs.configs["mine"] != config {
		t.Error("Expected config to reach the config manager")
	}

	if err := svc.SaveConfig(ctx, "bad", &engine.GameConfig{Name: "Bad", Description: "No pieces", Layout: []string{"...."}}); !errors.Is(err, engine.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if err := svc.SaveConfig(ctx, " ", config); !errors.Is(err, service.ErrInvalidRequest) {
		t.Errorf("Expected ErrInvalidRequest, got %v", err)
	}
}

func TestGameService_Solve(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Solve(ctx, []string{"r.R.r"})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !result.Solvable || result.Unique || result.MinMoves != 2 {
		t.Errorf("Expected two two-move solutions, got %+v", result)
	}
	if result.Status != engine.Playing {
		t.Errorf("Expected playing status, got %s", result.Status)
	}

	result, err = svc.Solve(ctx, []string{"P.", ".p"})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if result.Solvable || len(result.Solutions) != 0 {
		t.Errorf("Expected no solution, got %+v", result)
	}

	if _, err := svc.Solve(ctx, []string{"R.x"}); !errors.Is(err, engine.ErrInvalidLayout) {
		t.Errorf("Expected ErrInvalidLayout, got %v", err)
	}

	oversized := make([]string, 8)
	for i := range oversized {
		oversized[i] = "qqqqqqqq"
	}
	oversized[0] = "Qqqqqqqq"
	if _, err := svc.Solve(ctx, oversized); !errors.Is(err, engine.ErrInvalidLayout) {
		t.Errorf("Expected ErrInvalidLayout for an 8x8 layout, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := svc.Solve(cancelled, []string{"R..n", "####", "..b."}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestGameService_GenerateAndProfile(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Generate(ctx, 3, 1234)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	second, err := svc.Generate(ctx, 3, 1234)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Same seed should give the same puzzle (-first +second):\n%s", diff)
	}
	if first.Seed != 1234 || first.Level != 3 {
		t.Errorf("Unexpected seed or level: %+v", first)
	}
	if !first.Failed {
		solved, err := svc.Solve(ctx, first.Layout)
		if err != nil {
			t.Fatalf("Solve of generated layout failed: %v", err)
		}
		if solved.MinMoves != first.MinMoves {
			t.Errorf("Generated min moves %d, solver says %d", first.MinMoves, solved.MinMoves)
		}
	}

	profile, err := svc.Profile(ctx, 6)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if diff := cmp.Diff(engine.ProfileForLevel(6), *profile); diff != "" {
		t.Errorf("Profile mismatch (-want +got):\n%s", diff)
	}
	if _, err := svc.Profile(ctx, 0); !errors.Is(err, service.ErrInvalidRequest) {
		t.Errorf("Expected ErrInvalidRequest, got %v", err)
	}
}
