package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/wricardo/soulchess/game/engine"
)

// gameServiceImpl implements the GameService interface. Engine access is
// serialized per session; there is no service-wide lock.
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// newSessionInfo snapshots a session. It locks the session itself.
func newSessionInfo(sess *Session, configID string) *SessionInfo {
	sess.mu.Lock()
	state := sess.Engine.GetState().Clone()
	sess.mu.Unlock()

	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		Seed:           sess.Seed,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessed(),
		GameState:      state,
		GameConfig:     sess.Config,
	}
}

// session looks up a session and marks it as accessed
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
		}
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// withSession runs fn while holding the session's lock
func (s *gameServiceImpl) withSession(sessionID string, fn func(*Session) error) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess)
}

// CreateSession creates a new game session. A positive level overrides the
// configuration's starting level.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string, level int) (*SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if level < 0 {
		return nil, fmt.Errorf("%w: level must not be negative", ErrInvalidRequest)
	}

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	if level > 0 {
		override := *config
		override.Level = level
		config = &override
	}

	// Let session manager generate a proper 4-character ID. Generation runs
	// outside every lock.
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := ctx.Err(); err != nil {
		s.sessions.Delete(session.ID)
		return nil, err
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return newSessionInfo(session, configID), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	return newSessionInfo(sess, s.getConfigID(sess.Config.Name)), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, newSessionInfo(sess, s.getConfigID(sess.Config.Name)))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(sessionID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
		}
		return err
	}
	return nil
}

// Select lists the moves available from a cell of the session's board
func (s *gameServiceImpl) Select(ctx context.Context, sessionID string, pos engine.Pos) (*SelectResult, error) {
	var result *SelectResult
	err := s.withSession(sessionID, func(sess *Session) error {
		moves, err := sess.Engine.Select(pos.Row, pos.Col)
		if err != nil {
			return fmt.Errorf("select %s: %w", pos, err)
		}
		result = &SelectResult{Pos: pos, Moves: moves}
		return nil
	})
	return result, err
}

// Move moves the session's controlled piece. An illegal target is reported
// through Success rather than an error.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, to engine.Pos) (*MoveResult, error) {
	var result *MoveResult
	err := s.withSession(sessionID, func(sess *Session) error {
		outcome, err := sess.Engine.Move(to)
		if err != nil && !errors.Is(err, engine.ErrIllegalMove) {
			return fmt.Errorf("move to %s: %w", to, err)
		}

		state := sess.Engine.GetState().Clone()
		result = &MoveResult{
			Success:    err == nil,
			GameState:  state,
			Message:    state.Message,
			Events:     []GameEvent{},
			LegalMoves: sess.Engine.GetLegalMoves(),
		}

		if outcome != nil {
			result.Outcome = outcome
			result.Events = outcomeEvents(*outcome)
		}
		return nil
	})
	return result, err
}

// BulkMove executes a sequence of moves, stopping at the first illegal one
// or when the puzzle ends
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []engine.Pos) (*BulkMoveResult, error) {
	if len(moves) == 0 {
		return nil, fmt.Errorf("%w: no moves provided", ErrInvalidRequest)
	}

	var result *BulkMoveResult
	err := s.withSession(sessionID, func(sess *Session) error {
		var err error
		result, err = bulkMove(sess, moves)
		return err
	})
	return result, err
}

// bulkMove drives a locked session through moves
func bulkMove(sess *Session, moves []engine.Pos) (*BulkMoveResult, error) {
	if sess.Engine.IsGameOver() {
		return nil, fmt.Errorf("bulk move: %w", engine.ErrGameOver)
	}

	result := &BulkMoveResult{RequestedMoves: len(moves)}
	if len(moves) > MaxBulkMoves {
		moves = moves[:MaxBulkMoves]
		result.Truncated = true
		result.Limit = MaxBulkMoves
	}

	startSouls := sess.Engine.GetSouls()
	outcomes, err := sess.Engine.BulkMove(moves)
	if err != nil && !errors.Is(err, engine.ErrIllegalMove) {
		return nil, fmt.Errorf("bulk move: %w", err)
	}

	result.Outcomes = outcomes
	result.MovesExecuted = len(outcomes)
	result.Events = []GameEvent{}
	for _, o := range outcomes {
		result.Events = append(result.Events, outcomeEvents(o)...)
	}

	state := sess.Engine.GetState().Clone()
	switch {
	case err != nil:
		result.StopReasonCode = StopIllegalMove
		result.StoppedReason = err.Error()
		result.StoppedOnMove = len(outcomes) + 1
	case state.Status == engine.Won:
		result.StopReasonCode = StopVictory
		result.StoppedReason = state.Message
		result.StoppedOnMove = len(outcomes)
	case state.Status == engine.Lost:
		result.StopReasonCode = StopStuck
		result.StoppedReason = state.Message
		result.StoppedOnMove = len(outcomes)
	}

	result.Success = err == nil
	result.GameState = state
	result.SoulsGained = state.Souls - startSouls
	result.GameOver = sess.Engine.IsGameOver()
	result.Message = state.Message
	result.LegalMoves = sess.Engine.GetLegalMoves()

	return result, nil
}

// Hint reveals the next step of the stored solution. Running out of hints
// is reported in the message rather than as an error.
func (s *gameServiceImpl) Hint(ctx context.Context, sessionID string) (*HintResult, error) {
	var result *HintResult
	err := s.withSession(sessionID, func(sess *Session) error {
		move, err := sess.Engine.Hint()
		if err != nil && !errors.Is(err, engine.ErrNoHint) {
			return fmt.Errorf("hint: %w", err)
		}

		state := sess.Engine.GetState()
		result = &HintResult{
			Move:      move,
			Message:   state.Message,
			HintsUsed: state.HintsUsed,
		}
		return nil
	})
	return result, err
}

// Restart puts the session's puzzle back on its initial board
func (s *gameServiceImpl) Restart(ctx context.Context, sessionID string) (*engine.GameState, error) {
	var state *engine.GameState
	err := s.withSession(sessionID, func(sess *Session) error {
		state = sess.Engine.Restart().Clone()
		return nil
	})
	return state, err
}

// NewPuzzle deals a fresh puzzle at the session's current level
func (s *gameServiceImpl) NewPuzzle(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Generation holds only this session's lock
	var state *engine.GameState
	err := s.withSession(sessionID, func(sess *Session) error {
		state = sess.Engine.NewPuzzle().Clone()
		return nil
	})
	return state, err
}

// NextLevel advances a session whose puzzle has been won
func (s *gameServiceImpl) NextLevel(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var state *engine.GameState
	err := s.withSession(sessionID, func(sess *Session) error {
		next, err := sess.Engine.NextLevel()
		if err != nil {
			return fmt.Errorf("next level: %w", err)
		}
		state = next.Clone()
		return nil
	})
	return state, err
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	var state *engine.GameState
	err := s.withSession(sessionID, func(sess *Session) error {
		state = sess.Engine.GetState().Clone()
		return nil
	})
	return state, err
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	var history []engine.MoveHistoryEntry
	err := s.withSession(sessionID, func(sess *Session) error {
		history = slices.Clone(sess.Engine.GetMoveHistory())
		return nil
	})
	if err != nil {
		return nil, err
	}
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	// Pages past the end are empty
	start := total
	if opts.Page <= totalPages {
		start = (opts.Page - 1) * opts.Limit
	}
	end := min(start+opts.Limit, total)

	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = history[start:end]
	}

	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig validates and saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	if strings.TrimSpace(configName) == "" {
		return fmt.Errorf("%w: config name is required", ErrInvalidRequest)
	}
	if err := engine.ValidateGameConfig(config); err != nil {
		return err
	}
	return s.configs.SaveConfig(configName, config)
}

// Solve runs the exhaustive search over a layout without touching any session
func (s *gameServiceImpl) Solve(ctx context.Context, layout []string) (*SolveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	board, err := engine.ParseLayout(layout)
	if err != nil {
		return nil, err
	}

	sol, err := engine.SolveContext(ctx, board, engine.SolveBudget)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	return &SolveResult{
		Layout:    board.Layout(),
		Status:    engine.Classify(board),
		Solvable:  sol.Solvable(),
		Unique:    sol.Unique(),
		MinMoves:  sol.MinMoves,
		Solutions: sol.Solutions,
		Explored:  sol.Explored,
	}, nil
}

// Generate deals one puzzle for level from a generator seeded with seed.
// The same level and seed always produce the same puzzle.
func (s *gameServiceImpl) Generate(ctx context.Context, level int, seed uint64) (*GenerateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gen := engine.NewGenerator(engine.NewSeededRand(seed), engine.WithLogger(log.Default()))
	puzzle := gen.Generate(level)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &GenerateResult{
		Seed:         seed,
		Layout:       puzzle.Board.Layout(),
		Level:        puzzle.Level,
		MinMoves:     puzzle.MinMoves,
		SolutionPath: puzzle.SolutionPath,
		Fallback:     puzzle.Fallback,
		Failed:       puzzle.Failed(),
		Attempts:     puzzle.Attempts,
		Explored:     puzzle.Explored,
		Profile:      puzzle.Profile,
	}, nil
}

// Profile returns the difficulty parameters used for level
func (s *gameServiceImpl) Profile(ctx context.Context, level int) (*engine.DifficultyProfile, error) {
	if level < 1 {
		return nil, fmt.Errorf("%w: level must be at least 1", ErrInvalidRequest)
	}
	profile := engine.ProfileForLevel(level)
	return &profile, nil
}

// outcomeEvents describes what a single move did
func outcomeEvents(o engine.MoveOutcome) []GameEvent {
	now := time.Now()
	events := []GameEvent{{
		Type:      EventMove,
		Message:   fmt.Sprintf("Moved %s from %s to %s", o.KindBefore, o.From, o.To),
		Timestamp: now,
		Position:  o.To,
	}}

	if o.IsCapture {
		events = append(events, GameEvent{
			Type:      EventSoulSwitch,
			Message:   fmt.Sprintf("Captured %s, now playing as %s", o.Captured, o.KindAfter),
			Timestamp: now,
			Position:  o.To,
		})
	}

	switch o.Status {
	case engine.Won:
		events = append(events, GameEvent{
			Type:      EventVictory,
			Message:   o.Message,
			Timestamp: now,
			Position:  o.To,
		})
	case engine.Lost:
		events = append(events, GameEvent{
			Type:      EventStuck,
			Message:   o.Message,
			Timestamp: now,
			Position:  o.To,
		})
	}

	return events
}
