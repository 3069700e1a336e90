// Package config loads Soul Chess puzzle configurations from a directory of
// JSON files and caches them.
//
// A configuration either pins a hand-authored layout or asks for generated
// puzzles starting at a level:
//
//	{
//	  "name": "Classic",
//	  "description": "Generated puzzles from level 1",
//	  "level": 1,
//	  "seed": 7,
//	  "board_size": 5,
//	  "layout": ["R..n", "####", "..b."],
//	  "messages": {"welcome": "Find the optimal path..."}
//	}
//
// Only name and description are required. Layout rows use '.' for empty
// cells, '#' for walls, upper case KQRBNP for the controlled piece and lower
// case for opposing pieces. A layout must hold exactly one controlled piece
// and be solvable.
//
// The default configuration is classic.json, then the first valid file in
// the directory, then a built-in level 1 configuration.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("intro")
//	configs, err := manager.ListConfigs()
package config
