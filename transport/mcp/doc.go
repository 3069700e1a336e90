// Package mcp exposes Soul Chess to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call is translated into a request
// against the REST API, and the JSON answer is rendered as plain text with
// the board drawn using the layout alphabet (upper-case for the controlled
// piece, lower-case for opposing pieces, # for walls).
//
// MCP Tools:
//   - create_session, list_sessions, get_session
//   - game_state, legal_moves
//   - move, bulk_move (both take an optional intent for rubber duck reasoning)
//   - hint, restart_puzzle, new_puzzle, next_level
//   - move_history, list_configs
//   - solve_layout: run the solver over any layout
//   - game_instructions: rules and legend
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: POST JSON-RPC messages to /mcp, handled by GetMCPServer().HandleMessage
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
