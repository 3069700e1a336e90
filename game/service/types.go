package service

import (
	"time"

	"github.com/wricardo/soulchess/game/engine"
)

// MaxBulkMoves caps the number of moves accepted in one bulk call
const MaxBulkMoves = 50

// Event types reported in MoveResult and BulkMoveResult
const (
	EventMove       = "move"
	EventSoulSwitch = "soul_switch"
	EventVictory    = "victory"
	EventStuck      = "stuck"
	EventRestart    = "restart"
	EventHint       = "hint"
	EventNewPuzzle  = "new_puzzle"
	EventNextLevel  = "next_level"
)

// Stop reason codes for BulkMoveResult
const (
	StopIllegalMove = "illegal_move"
	StopGameOver    = "game_over"
	StopVictory     = "victory"
	StopStuck       = "stuck"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	Seed           uint64             `json:"seed"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// SelectResult lists the moves available from a selected cell
type SelectResult struct {
	Pos   engine.Pos    `json:"pos"`
	Moves []engine.Move `json:"moves"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success    bool                `json:"success"`
	GameState  *engine.GameState   `json:"game_state"`
	Message    string              `json:"message"`
	Outcome    *engine.MoveOutcome `json:"outcome,omitempty"`
	Events     []GameEvent         `json:"events,omitempty"`
	LegalMoves []engine.Move       `json:"legal_moves"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	MovesExecuted  int                  `json:"moves_executed"`
	RequestedMoves int                  `json:"requested_moves"`
	Success        bool                 `json:"success"`
	GameState      *engine.GameState    `json:"game_state"`
	Outcomes       []engine.MoveOutcome `json:"outcomes"`
	Events         []GameEvent          `json:"events"`
	StoppedReason  string               `json:"stopped_reason,omitempty"`
	StopReasonCode string               `json:"stop_reason_code,omitempty"` // illegal_move|game_over|victory|stuck
	StoppedOnMove  int                  `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool                 `json:"truncated,omitempty"`
	Limit          int                  `json:"limit,omitempty"`

	SoulsGained int           `json:"souls_gained"`
	GameOver    bool          `json:"game_over"`
	Message     string        `json:"message,omitempty"`
	LegalMoves  []engine.Move `json:"legal_moves"`
}

// HintResult carries the next step of the stored solution
type HintResult struct {
	Move      *engine.Move `json:"move,omitempty"`
	Message   string       `json:"message"`
	HintsUsed int          `json:"hints_used"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	Timestamp time.Time  `json:"timestamp"`
	Position  engine.Pos `json:"position,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Level       int    `json:"level"`
	BoardSize   int    `json:"board_size,omitempty"`
	FixedLayout bool   `json:"fixed_layout"`
}

// SolveResult reports an exhaustive search over a posted layout
type SolveResult struct {
	Layout    []string        `json:"layout"`
	Status    engine.Status   `json:"status"`
	Solvable  bool            `json:"solvable"`
	Unique    bool            `json:"unique"`
	MinMoves  int             `json:"min_moves"`
	Solutions [][]engine.Move `json:"solutions"`
	Explored  int             `json:"explored"`
}

// GenerateResult is a generated puzzle together with the seed that produced it
type GenerateResult struct {
	Seed         uint64                   `json:"seed"`
	Layout       []string                 `json:"layout"`
	Level        int                      `json:"level"`
	MinMoves     int                      `json:"min_moves"`
	SolutionPath []engine.Move            `json:"solution_path"`
	Fallback     bool                     `json:"fallback"`
	Failed       bool                     `json:"failed"`
	Attempts     int                      `json:"attempts"`
	Explored     int                      `json:"explored"`
	Profile      engine.DifficultyProfile `json:"profile"`
}
