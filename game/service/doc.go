// Package service provides the business logic layer for Soul Chess.
//
// GameService is the one entry point the transports (HTTP, WebSocket, MCP)
// talk to. It owns no state of its own: sessions live behind a
// SessionManager and puzzle configurations behind a ConfigManager, so both
// can be swapped out in tests.
//
// Session operations (Move, BulkMove, Hint, Restart, NewPuzzle, NextLevel)
// drive the session's engine and report what happened as events. An illegal
// move is reported with Success false; asking a finished puzzle for another
// move fails with engine.ErrGameOver.
//
// Solve, Generate and Profile work on layouts and levels directly and never
// touch a session.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic", 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, info.ID, engine.Pos{Row: 0, Col: 3})
package service
