// Package session provides in-memory session management for Soul Chess.
//
// Each session owns its own game engine. The engine's generator is seeded
// from the configuration's seed when one is set, otherwise from crypto
// randomness, and the seed is recorded on the session so a run can be
// replayed.
//
// Session Identifiers:
//
// Sessions use 4-character hexadecimal IDs for easy reference. Lookups are
// case-insensitive, and generated IDs are redrawn until an unused one is
// found.
//
// Concurrency:
//
// The manager is safe for concurrent use. Engines are built outside the
// manager's lock since puzzle generation can take a noticeable time.
//
// Usage:
//
//	manager := session.NewManager(engine.WithLogger(log.Default()))
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// Idle sessions can be dropped with CleanupExpiredSessions.
package session
