package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// GameConfig describes a puzzle set. A config either pins a hand-authored
// layout or asks for generated puzzles starting at Level.
type GameConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Level       int      `json:"level"`
	Seed        *uint64  `json:"seed,omitempty"`
	BoardSize   int      `json:"board_size,omitempty"`
	Layout      []string `json:"layout,omitempty"`
	Messages    Messages `json:"messages"`
}

// Messages holds the player-facing texts. Empty entries fall back to
// DefaultMessages.
type Messages struct {
	Welcome      string `json:"welcome"`
	LevelStart   string `json:"level_start"`
	Moving       string `json:"moving"`
	SoulSwitch   string `json:"soul_switch"`
	Optimal      string `json:"optimal"`
	NotOptimal   string `json:"not_optimal"`
	Stuck        string `json:"stuck"`
	Restarted    string `json:"restarted"`
	Hint         string `json:"hint"`
	NoHint       string `json:"no_hint"`
	CantMove     string `json:"cant_move"`
	NotSolvedYet string `json:"not_solved_yet"`
	NoPuzzle     string `json:"no_puzzle"`
}

// DefaultMessages returns the stock texts
func DefaultMessages() Messages {
	return Messages{
		Welcome:      "Find the optimal path...",
		LevelStart:   "Level %d Start!",
		Moving:       "Moving...",
		SoulSwitch:   "Soul Switched: %s → %s",
		Optimal:      "Perfect! Optimal path found.",
		NotOptimal:   "Solved, but not optimal (%d moves).",
		Stuck:        "You are stuck.",
		Restarted:    "Level Restarted.",
		Hint:         "Hint: Move here.",
		NoHint:       "No more hints available.",
		CantMove:     "Can't move there!",
		NotSolvedYet: "Solve this puzzle before moving on.",
		NoPuzzle:     "No puzzle could be generated. Try a new puzzle.",
	}
}

// withDefaults fills empty messages from DefaultMessages
func (m Messages) withDefaults() Messages {
	d := DefaultMessages()
	fill := func(s *string, def string) {
		if *s == "" {
			*s = def
		}
	}
	fill(&m.Welcome, d.Welcome)
	fill(&m.LevelStart, d.LevelStart)
	fill(&m.Moving, d.Moving)
	fill(&m.SoulSwitch, d.SoulSwitch)
	fill(&m.Optimal, d.Optimal)
	fill(&m.NotOptimal, d.NotOptimal)
	fill(&m.Stuck, d.Stuck)
	fill(&m.Restarted, d.Restarted)
	fill(&m.Hint, d.Hint)
	fill(&m.NoHint, d.NoHint)
	fill(&m.CantMove, d.CantMove)
	fill(&m.NotSolvedYet, d.NotSolvedYet)
	fill(&m.NoPuzzle, d.NoPuzzle)
	return m
}

// StartLevel returns the level a config starts at, at least 1
func (c *GameConfig) StartLevel() int {
	if c == nil || c.Level < 1 {
		return 1
	}
	return c.Level
}

// HasLayout reports whether the config pins a hand-authored board
func (c *GameConfig) HasLayout() bool {
	return c != nil && len(c.Layout) > 0
}

// DefaultConfig returns the built-in config used when no config files exist
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:        "classic",
		Description: "Generated puzzles starting at level 1",
		Level:       1,
		Messages:    DefaultMessages(),
	}
}

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if config.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if config.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidConfig)
	}
	if config.Level < 0 {
		return fmt.Errorf("%w: level must not be negative, got %d", ErrInvalidConfig, config.Level)
	}
	if config.BoardSize != 0 && (config.BoardSize < MinBoardSize || config.BoardSize > MaxBoardSize) {
		return fmt.Errorf("%w: board_size must be between %d and %d, got %d",
			ErrInvalidConfig, MinBoardSize, MaxBoardSize, config.BoardSize)
	}

	// Format strings
	msgs := config.Messages
	if msgs.SoulSwitch != "" && strings.Count(msgs.SoulSwitch, "%s") != 2 {
		return fmt.Errorf("%w: messages.soul_switch must contain %%s twice", ErrInvalidConfig)
	}
	if msgs.NotOptimal != "" && !strings.Contains(msgs.NotOptimal, "%d") {
		return fmt.Errorf("%w: messages.not_optimal must contain %%d for the target move count", ErrInvalidConfig)
	}
	if msgs.LevelStart != "" && !strings.Contains(msgs.LevelStart, "%d") {
		return fmt.Errorf("%w: messages.level_start must contain %%d for the level", ErrInvalidConfig)
	}

	if !config.HasLayout() {
		return nil
	}

	board, err := ParseLayout(config.Layout)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if board.CountSide(Controlled) != 1 {
		return fmt.Errorf("%w: layout must contain exactly one controlled piece", ErrInvalidConfig)
	}
	if board.CountSide(Opposing) == 0 {
		return fmt.Errorf("%w: layout must contain at least one opposing piece", ErrInvalidConfig)
	}
	sol, err := SolveContext(context.Background(), board, SolveBudget)
	if err != nil {
		return fmt.Errorf("%w: layout too complex to verify: %v", ErrInvalidConfig, err)
	}
	if !sol.Solvable() {
		return fmt.Errorf("%w: layout has no solution", ErrInvalidConfig)
	}

	return nil
}

// LoadGameConfig loads a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads a game configuration by name from the configs directory
func LoadConfigByName(configName string) (*GameConfig, error) {
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	config, err := LoadGameConfig(filepath.Join("configs", configName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", configName, err)
	}
	return config, nil
}
