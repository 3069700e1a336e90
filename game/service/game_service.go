package service

import (
	"context"
	"sync"
	"time"

	"github.com/wricardo/soulchess/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string, level int) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Select(ctx context.Context, sessionID string, pos engine.Pos) (*SelectResult, error)
	Move(ctx context.Context, sessionID string, to engine.Pos) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, moves []engine.Pos) (*BulkMoveResult, error)
	Hint(ctx context.Context, sessionID string) (*HintResult, error)
	Restart(ctx context.Context, sessionID string) (*engine.GameState, error)
	NewPuzzle(ctx context.Context, sessionID string) (*engine.GameState, error)
	NextLevel(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error

	// Puzzle tools, independent of sessions
	Solve(ctx context.Context, layout []string) (*SolveResult, error)
	Generate(ctx context.Context, level int, seed uint64) (*GenerateResult, error)
	Profile(ctx context.Context, level int) (*engine.DifficultyProfile, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active game session. The service holds mu while it
// drives Engine, so one session's puzzle generation never blocks another.
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	Seed           uint64
	CreatedAt      time.Time
	LastAccessedAt time.Time

	mu       sync.Mutex
	accessMu sync.Mutex
}

// Touch records an access at t
func (s *Session) Touch(t time.Time) {
	s.accessMu.Lock()
	s.LastAccessedAt = t
	s.accessMu.Unlock()
}

// LastAccessed returns the time of the latest access
func (s *Session) LastAccessed() time.Time {
	s.accessMu.Lock()
	defer s.accessMu.Unlock()
	return s.LastAccessedAt
}
