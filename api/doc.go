// Package api provides the HTTP REST API for Soul Chess.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session {config_id, level}
//   - GET /api/sessions - List sessions (?sort=accessed|created&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/select - Legal moves from {row, col}
//   - POST /api/sessions/{id}/move - Move the controlled piece to {row, col}
//   - POST /api/sessions/{id}/bulk-move - Up to 50 moves {moves: [{row, col}, ...]}
//   - POST /api/sessions/{id}/hint - Next step of the stored solution
//   - POST /api/sessions/{id}/restart - Reset the current puzzle
//   - POST /api/sessions/{id}/new - Deal a new puzzle at the same level
//   - POST /api/sessions/{id}/next-level - Advance after a win
//   - GET /api/sessions/{id}/history - Paginated move history (?page&limit&order)
//
// Configuration:
//   - GET /api/configs - List configurations
//   - GET /api/configs/{name} - Get one configuration
//   - POST /api/configs - Validate and save a configuration
//
// Puzzle Tools:
//   - POST /api/solve - Exhaustive search over {layout: [...]}
//   - GET /api/generate - Generate a puzzle (?level=N&seed=S)
//   - GET /api/profiles/{level} - Difficulty parameters for a level
//
// WebSocket:
//   - GET /ws?session={id} - Live state updates for one session
//
// An illegal move is not an HTTP error: the response carries success=false
// and the unchanged state. Errors are returned as JSON:
//
//	{"error": "session not found: abcd"}
//
// with 404 for unknown sessions or configs, 400 for malformed input and
// invalid layouts, 409 for moves after the puzzle ended or next-level before
// a win, and 500 otherwise.
package api
