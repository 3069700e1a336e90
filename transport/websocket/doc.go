// Package websocket pushes Soul Chess session updates to browsers.
//
// A central Hub keeps the connected clients of every session. Each
// connection gets a read pump, which only keeps the connection alive, and a
// write pump that delivers queued messages and pings.
//
// Clients connect with the session ID as a query parameter
// (/ws?session=ab12). After every state change the API broadcasts a
// state_update message carrying the full GameState; hints and finished
// puzzles are announced with hint, victory and stuck events.
//
// Broadcasting never blocks the caller. Messages go through a bounded queue
// drained by Run, and a client whose own buffer is full is disconnected.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	hub.ServeWS(w, r, sessionID)
//	hub.BroadcastToSession(sessionID, state)
package websocket
