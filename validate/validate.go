// Command validate checks the puzzle configuration JSON files in a directory
// (../configs by default). It checks:
//   - JSON structure and required fields
//   - Level and board size ranges
//   - Message format strings
//   - Layout legend (. # KQRBNP kqrbnp) and equal row widths
//   - Exactly one controlled piece and at least one opposing piece
//   - Solvability, with a warning when the minimal solution is not unique
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/soulchess/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// Info is only filled for valid files.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration JSON file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if config.Name == "" {
		result.fail("name is required")
	}
	if config.Description == "" {
		result.fail("description is required")
	}
	if config.Level < 0 {
		result.fail("level must not be negative, got %d", config.Level)
	}
	if config.BoardSize != 0 && (config.BoardSize < engine.MinBoardSize || config.BoardSize > engine.MaxBoardSize) {
		result.fail("board_size must be between %d and %d, got %d", engine.MinBoardSize, engine.MaxBoardSize, config.BoardSize)
	}

	validateMessages(&result, config.Messages)

	if config.HasLayout() {
		validateLayout(&result, config.Layout)
	}

	if result.Valid {
		result.Info = append(result.Info, fmt.Sprintf("✓ Name: %s", config.Name))
		if !config.HasLayout() {
			size := engine.ProfileForLevel(config.StartLevel()).BoardSize
			if config.BoardSize != 0 {
				size = config.BoardSize
			}
			result.Info = append(result.Info, fmt.Sprintf("✓ Generated puzzles from level %d on a %dx%d board", config.StartLevel(), size, size))
		}
		if config.Seed != nil {
			result.Info = append(result.Info, fmt.Sprintf("✓ Fixed seed: %d", *config.Seed))
		}
	}

	return result
}

// validateMessages checks the format verbs of the templated messages
func validateMessages(result *ValidationResult, msgs engine.Messages) {
	if msgs.SoulSwitch != "" && strings.Count(msgs.SoulSwitch, "%s") != 2 {
		result.fail("messages.soul_switch must contain %%s twice")
	}
	if msgs.NotOptimal != "" && !strings.Contains(msgs.NotOptimal, "%d") {
		result.fail("messages.not_optimal must contain %%d")
	}
	if msgs.LevelStart != "" && !strings.Contains(msgs.LevelStart, "%d") {
		result.fail("messages.level_start must contain %%d")
	}
}

// validateLayout parses a hand-authored layout and runs the solver over it
func validateLayout(result *ValidationResult, layout []string) {
	board, err := engine.ParseLayout(layout)
	if err != nil {
		result.fail("Layout: %v", err)
		return
	}

	controlled := board.CountSide(engine.Controlled)
	opposing := board.CountSide(engine.Opposing)
	if controlled != 1 {
		result.fail("Layout must contain exactly one controlled piece, found %d", controlled)
	}
	if opposing == 0 {
		result.fail("Layout must contain at least one opposing piece")
	}
	if !result.Valid {
		return
	}

	sol := engine.Solve(board)
	if !sol.Solvable() {
		result.fail("Layout has no solution (%d states explored)", sol.Explored)
		return
	}

	if !sol.Unique() {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d different solutions of %d moves", len(sol.Solutions), sol.MinMoves))
	}

	_, piece, _ := board.Controlled()
	result.Info = append(result.Info,
		fmt.Sprintf("✓ Grid: %dx%d", board.Rows(), board.Cols()),
		fmt.Sprintf("✓ Controlled: %s", piece.Kind),
		fmt.Sprintf("✓ Opposing pieces: %d", opposing),
		fmt.Sprintf("✓ Walls: %d", board.CountWalls()),
		fmt.Sprintf("✓ Minimum moves: %d", sol.MinMoves),
		fmt.Sprintf("✓ Solution: %s", formatPath(sol.Solutions[0])),
	)
}

func formatPath(path []engine.Move) string {
	steps := make([]string, len(path))
	for i, m := range path {
		steps[i] = m.String()
	}
	return strings.Join(steps, " ")
}

// validateDir validates every *.json file in dir, writes a report to w and
// reports whether all of them are valid
func validateDir(w io.Writer, dir string) (bool, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return false, fmt.Errorf("finding config files: %w", err)
	}
	if len(files) == 0 {
		return false, fmt.Errorf("no config files in %s", dir)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Info {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, e := range result.Errors {
				fmt.Fprintln(w, "  ❌ "+e)
			}
		}
		for _, warning := range result.Warnings {
			fmt.Fprintln(w, "  ⚠️  "+warning)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid, nil
}

func main() {
	cmd := &cli.Command{
		Name:      "validate",
		Usage:     "validate Soul Chess puzzle configurations",
		ArgsUsage: "[config-dir]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := "../configs"
			if cmd.Args().Len() > 0 {
				dir = cmd.Args().First()
			}

			ok, err := validateDir(os.Stdout, dir)
			if err != nil {
				return err
			}
			if !ok {
				return cli.Exit("", 1)
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
