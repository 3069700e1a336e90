// Package engine provides the core game logic for Soul Chess puzzles.
//
// A puzzle is a small board holding walls, one controlled piece and a number
// of opposing pieces that never move. The controlled piece moves by standard
// chess rules, and capturing an opposing piece makes it take that piece's
// kind (a soul switch). The puzzle is won once every opposing piece is gone
// and lost when the controlled piece has no legal move left.
//
// The package implements:
//   - Move generation for the six piece kinds (LegalMoves)
//   - The soul switch transition (ApplyMove) and board classification (Classify)
//   - An exhaustive breadth-first solver returning every minimal solution (Solve)
//   - A seeded generator that only keeps puzzles with a unique minimal solution
//     of a level-dependent length (Generator)
//   - Per-session play state with restarts, hints and level progression (GameEngine)
//   - Configuration loading and validation
//
// Core Types:
//
// Board is a value type; every transition returns a deep copy. The Engine
// interface is implemented by GameEngine, which wraps a GameState together
// with the GameConfig it was created from.
//
// Usage:
//
//	config, err := engine.LoadConfigByName("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(config, 42)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	moves := gameEngine.GetLegalMoves()
//	outcome, err := gameEngine.Move(moves[0].To())
//
// Layout format:
//
// Boards are written one string per row: '.' empty, '#' wall, upper-case
// KQRBNP for the controlled piece and lower-case kqrbnp for opposing pieces.
// Row 0 is the top row and pawns advance towards it.
package engine
