package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/soulchess/game/engine"
	"github.com/wricardo/soulchess/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
	logger     *log.Logger
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log.Default(),
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Soul Chess",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Soul Chess - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Capture every opposing piece with your single controlled piece. Capturing a
piece makes your piece take on the captured piece's kind. Win in the minimum
number of moves for an optimal solve.

AVAILABLE TOOLS:
- create_session: Create a new game session (optional config_id and level)
- list_sessions / get_session: Inspect sessions
- game_state: Board, status and move counters
- legal_moves: Where the controlled piece can go
- move: Move the controlled piece to a row/col - requires intent explanation
- bulk_move: Several moves at once - requires intent explanation
- hint: Next step of the stored solution
- restart_puzzle / new_puzzle / next_level: Puzzle control
- move_history: View past moves
- list_configs: Available configurations
- solve_layout: Run the solver over any layout
- game_instructions: Full rules and layout legend

NOTE: The 'intent' parameter on move/bulk_move tools serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

// sessionTool declares a tool whose only input is a session id
func sessionTool(name, description string) mcp.Tool {
	return mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config and starting level",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Config to use (optional, see list_configs)",
				},
				"level": map[string]interface{}{
					"type":        "integer",
					"description": "Starting level, overrides the config (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(sessionTool("get_session", "Get details of a specific session"), c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(sessionTool("game_state", "Get the current board, status and move counters"), c.handleGameState)

	c.mcpServer.AddTool(sessionTool("legal_moves", "List the cells the controlled piece can move to"), c.handleLegalMoves)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the controlled piece to a cell. Landing on an opposing piece captures it and switches your piece's kind.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Target row (0-based, 0 is the top row)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Target column (0-based)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: fmt.Sprintf("Execute up to %d moves in sequence, stopping at the first illegal move or when the puzzle ends", service.MaxBulkMoves),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"row": map[string]interface{}{"type": "integer"},
							"col": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"row", "col"},
					},
					"description": "Target cells in order",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of moves (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(sessionTool("hint", "Reveal the next step of the stored optimal solution"), c.handleHint)
	c.mcpServer.AddTool(sessionTool("restart_puzzle", "Reset the current puzzle to its starting board"), c.handleRestart)
	c.mcpServer.AddTool(sessionTool("new_puzzle", "Deal a fresh puzzle at the current level"), c.handleNewPuzzle)
	c.mcpServer.AddTool(sessionTool("next_level", "Advance to the next level after solving the puzzle"), c.handleNextLevel)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest or newest first",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_layout",
		Description: "Run the exhaustive solver over a layout and report every minimal solution",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"layout": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Board rows, e.g. [\"R..n\", \"####\", \"..b.\"]",
				},
			},
			Required: []string{"layout"},
		},
	}, c.handleSolveLayout)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// parsePositions accepts [{row, col}, ...] or [[row, col], ...]
func parsePositions(raw interface{}) ([]engine.Pos, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("moves must be an array")
	}

	positions := make([]engine.Pos, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case map[string]interface{}:
			row, rok := v["row"].(float64)
			col, cok := v["col"].(float64)
			if !rok || !cok {
				return nil, fmt.Errorf("move %d: row and col are required", i+1)
			}
			positions = append(positions, engine.Pos{Row: int(row), Col: int(col)})
		case []interface{}:
			if len(v) != 2 {
				return nil, fmt.Errorf("move %d: expected [row, col]", i+1)
			}
			row, rok := v[0].(float64)
			col, cok := v[1].(float64)
			if !rok || !cok {
				return nil, fmt.Errorf("move %d: expected [row, col]", i+1)
			}
			positions = append(positions, engine.Pos{Row: int(row), Col: int(col)})
		default:
			return nil, fmt.Errorf("move %d: expected {row, col}", i+1)
		}
	}
	return positions, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := map[string]interface{}{}
	if configID := request.GetString("config_id", ""); configID != "" {
		body["config_id"] = configID
	}
	if level := request.GetInt("level", 0); level > 0 {
		body["level"] = level
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n", session.ID, session.ConfigName)
	result += formatGameState(session.GameState)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		level, status := 0, ""
		if s.GameState != nil {
			level, status = s.GameState.Level, s.GameState.Status.String()
		}
		fmt.Fprintf(&sb, "- %s (Config: %s, Level: %d, Status: %s, Created: %s)\n",
			s.ID, s.ConfigName, level, status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleLegalMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pos, piece, ok := state.Board.Controlled()
	if !ok {
		return mcp.NewToolResultError("no controlled piece on the board"), nil
	}

	var selected service.SelectResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/select"), pos, &selected); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatLegalMoves(piece.Kind, pos, selected.Moves)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")
	args := request.GetArguments()
	if _, ok := args["row"]; !ok {
		return mcp.NewToolResultError("row is required"), nil
	}
	if _, ok := args["col"]; !ok {
		return mcp.NewToolResultError("col is required"), nil
	}

	c.logIntent("move", sessionID, request.GetString("intent", ""))

	body := engine.Pos{Row: request.GetInt("row", 0), Col: request.GetInt("col", 0)}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

// logIntent records the reasoning an agent attached to a move
func (c *Client) logIntent(tool, sessionID, intent string) {
	if intent == "" {
		return
	}
	c.logger.Printf("[MCP] %s session=%s intent=%q", tool, sessionID, intent)
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	moves, err := parsePositions(request.GetArguments()["moves"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	c.logIntent("bulk_move", sessionID, request.GetString("intent", ""))

	body := map[string]interface{}{
		"moves": moves,
	}

	var result service.BulkMoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/bulk-move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkMoveResult(sessionID, &result)), nil
}

func (c *Client) handleHint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	var hint service.HintResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/hint"), nil, &hint); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if hint.Move == nil {
		return mcp.NewToolResultText(hint.Message), nil
	}

	result := fmt.Sprintf("%s\nNext move: row %d, col %d", hint.Message, hint.Move.Row, hint.Move.Col)
	if hint.Move.IsCapture {
		result += " (capture)"
	}
	result += fmt.Sprintf("\nHints used: %d", hint.HintsUsed)
	return mcp.NewToolResultText(result), nil
}

// stateAction posts to a session endpoint that answers with {message, state}
func (c *Client) stateAction(ctx context.Context, request mcp.CallToolRequest, suffix string) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, suffix), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRestart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.stateAction(ctx, request, "/restart")
}

func (c *Client) handleNewPuzzle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.stateAction(ctx, request, "/new")
}

func (c *Client) handleNextLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.stateAction(ctx, request, "/next-level")
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	params := url.Values{}
	if page := request.GetInt("page", 0); page > 0 {
		params.Set("page", fmt.Sprint(page))
	}
	if limit := request.GetInt("limit", 0); limit > 0 {
		params.Set("limit", fmt.Sprint(limit))
	}
	if order := request.GetString("order", ""); order != "" {
		params.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	sb.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		kind := fmt.Sprintf("generated, starts at level %d", config.Level)
		if config.FixedLayout {
			kind = "fixed layout"
		}
		fmt.Fprintf(&sb, "• %s (config_id: %s)\n  %s\n  %s\n\n", config.Name, config.ConfigID, config.Description, kind)
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleSolveLayout(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := request.GetArguments()["layout"].([]interface{})
	if !ok {
		return mcp.NewToolResultError("layout must be an array of strings"), nil
	}
	layout := make([]string, 0, len(raw))
	for _, row := range raw {
		s, ok := row.(string)
		if !ok {
			return mcp.NewToolResultError("layout must be an array of strings"), nil
		}
		layout = append(layout, s)
	}

	var result service.SolveResult
	if err := c.apiCall(ctx, "POST", "/api/solve", map[string]interface{}{"layout": layout}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSolveResult(&result)), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(gameInstructions), nil
}

const gameInstructions = `♞ Soul Chess - Complete Instructions

GAME OBJECTIVE:
You control exactly one piece. Capture every opposing piece to win.

SOUL SWITCH:
When your piece captures, it becomes the kind of the piece it captured.
A rook that takes a knight continues as a knight. Your side never changes.

LAYOUT LEGEND:
• Upper-case letter - your controlled piece (K Q R B N P)
• Lower-case letter - an opposing piece (k q r b n p)
• # - wall (blocks sliding pieces, knights jump over)
• . - empty cell
Rows are numbered from 0 at the top, columns from 0 at the left.

MOVEMENT:
• King: one step in any of the 8 directions
• Queen: slides any distance in 8 directions
• Rook: slides orthogonally
• Bishop: slides diagonally
• Knight: L-shaped jump, ignores walls in between
• Pawn: steps one cell up into an empty cell, captures one cell diagonally up
Opposing pieces never move. Sliding stops at the first occupied cell and may
capture it if it is opposing.

OUTCOMES:
• Won: no opposing pieces remain
• Stuck: opposing pieces remain and your piece has no legal move
• Optimal: won in exactly the minimum number of moves

STRATEGY:
• Order matters: each capture changes how you move next
• Look ahead at the kind you will become before capturing
• Use legal_moves to confirm reachable cells
• Use hint sparingly, it follows the stored optimal line only while you do

TOOLS:
• create_session, game_state, legal_moves, move, bulk_move
• hint, restart_puzzle, new_puzzle, next_level
• move_history, list_configs, solve_layout

Good luck, and may your soul find the shortest path!`
