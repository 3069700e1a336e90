package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/wricardo/soulchess/game/engine"
	"github.com/wricardo/soulchess/game/service"
	"github.com/wricardo/soulchess/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil, in which case no
// WebSocket updates are sent.
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("", s.handleIndex).Methods("GET")

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Game operations
	api.HandleFunc("/sessions/{id}/state", s.handleGetGameState).Methods("GET")
	api.HandleFunc("/sessions/{id}/select", s.handleSelect).Methods("POST")
	api.HandleFunc("/sessions/{id}/move", s.handleMove).Methods("POST")
	api.HandleFunc("/sessions/{id}/bulk-move", s.handleBulkMove).Methods("POST")
	api.HandleFunc("/sessions/{id}/hint", s.handleHint).Methods("POST")
	api.HandleFunc("/sessions/{id}/restart", s.handleRestart).Methods("POST")
	api.HandleFunc("/sessions/{id}/new", s.handleNewPuzzle).Methods("POST")
	api.HandleFunc("/sessions/{id}/next-level", s.handleNextLevel).Methods("POST")
	api.HandleFunc("/sessions/{id}/history", s.handleGetHistory).Methods("GET")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	// Puzzle tools
	api.HandleFunc("/solve", s.handleSolve).Methods("POST")
	api.HandleFunc("/generate", s.handleGenerate).Methods("GET")
	api.HandleFunc("/profiles/{level}", s.handleProfile).Methods("GET")

	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps a service error to its HTTP status
func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusForError(err), err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrConfigNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, engine.ErrInvalidLayout),
		errors.Is(err, engine.ErrInvalidConfig),
		errors.Is(err, engine.ErrOutOfBounds),
		errors.Is(err, engine.ErrUnsolvable),
		errors.Is(err, engine.ErrNoControlledPiece),
		errors.Is(err, engine.ErrSearchLimit):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrGameOver),
		errors.Is(err, engine.ErrNotWon),
		errors.Is(err, engine.ErrNoHint):
		return http.StatusConflict
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// decodeBody decodes a JSON request body. An empty body leaves v untouched.
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// broadcastState pushes the latest state to WebSocket clients
func (s *Server) broadcastState(sessionID string, state *engine.GameState) {
	if s.hub == nil || state == nil {
		return
	}
	s.hub.BroadcastToSession(sessionID, state)

	switch state.Status {
	case engine.Won:
		s.hub.BroadcastEvent(sessionID, websocket.EventVictory, map[string]interface{}{
			"optimal":    state.Optimal,
			"moves_made": state.MovesMade,
			"min_moves":  state.MinMoves,
			"message":    state.Message,
		})
	case engine.Lost:
		s.hub.BroadcastEvent(sessionID, websocket.EventStuck, map[string]interface{}{
			"message": state.Message,
		})
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"name": "soulchess",
		"endpoints": []string{
			"POST /api/sessions",
			"GET /api/sessions",
			"GET /api/sessions/{id}",
			"DELETE /api/sessions/{id}",
			"GET /api/sessions/{id}/state",
			"POST /api/sessions/{id}/select",
			"POST /api/sessions/{id}/move",
			"POST /api/sessions/{id}/bulk-move",
			"POST /api/sessions/{id}/hint",
			"POST /api/sessions/{id}/restart",
			"POST /api/sessions/{id}/new",
			"POST /api/sessions/{id}/next-level",
			"GET /api/sessions/{id}/history",
			"GET /api/configs",
			"POST /api/configs",
			"GET /api/configs/{name}",
			"POST /api/solve",
			"GET /api/generate",
			"GET /api/profiles/{level}",
		},
	})
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID   string `json:"config_id,omitempty"`
		ConfigName string `json:"config_name,omitempty"` // Deprecated, use config_id
		Level      int    `json:"level,omitempty"`
	}

	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	configID := req.ConfigID
	if configID == "" && req.ConfigName != "" {
		configID = req.ConfigName
	}

	session, err := s.service.CreateSession(r.Context(), configID, req.Level)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("[SESSION] created %s config=%s level=%d seed=%d", session.ID, session.ConfigName, session.GameState.Level, session.Seed)
	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of sessions to return

	if sortBy != "created" {
		sortBy = "accessed"
	}
	if order != "asc" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else {
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	total := len(sessions)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(sessions) {
			sessions = sessions[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.service.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Game Operation Handlers

func (s *Server) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	state, err := s.service.GetGameState(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

// decodePos reads a {row, col} body
func decodePos(r *http.Request) (engine.Pos, error) {
	var req struct {
		Row *int `json:"row"`
		Col *int `json:"col"`
	}
	if err := decodeBody(r, &req); err != nil {
		return engine.Pos{}, err
	}
	if req.Row == nil || req.Col == nil {
		return engine.Pos{}, errors.New("row and col are required")
	}
	return engine.Pos{Row: *req.Row, Col: *req.Col}, nil
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	pos, err := decodePos(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	result, err := s.service.Select(r.Context(), mux.Vars(r)["id"], pos)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	pos, err := decodePos(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	result, err := s.service.Move(r.Context(), sessionID, pos)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcastState(sessionID, result.GameState)

	if o := result.Outcome; o != nil {
		log.Printf("[MOVE] session=%s %s %s->%s capture=%v now=%s status=%s",
			sessionID, o.KindBefore, o.From, o.To, o.IsCapture, o.KindAfter, o.Status)
	} else {
		log.Printf("[MOVE] session=%s ILLEGAL target=%s", sessionID, pos)
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleBulkMove(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Moves []engine.Pos `json:"moves"`
	}

	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.BulkMove(r.Context(), sessionID, req.Moves)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcastState(sessionID, result.GameState)

	stop := result.StopReasonCode
	if stop == "" {
		stop = "none"
	}
	log.Printf("[BULK] session=%s exec=%d/%d stop=%s souls+=%d status=%s",
		sessionID, result.MovesExecuted, result.RequestedMoves, stop, result.SoulsGained, result.GameState.Status)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.Hint(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil && result.Move != nil {
		s.hub.BroadcastEvent(sessionID, websocket.EventHint, result)
	}

	respondJSON(w, http.StatusOK, result)
}

// stateHandler wraps the session operations that return only a new state
func (s *Server) stateHandler(op func(ctx context.Context, sessionID string) (*engine.GameState, error), verb string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := mux.Vars(r)["id"]

		state, err := op(r.Context(), sessionID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		s.broadcastState(sessionID, state)
		log.Printf("[%s] session=%s level=%d min_moves=%d", verb, sessionID, state.Level, state.MinMoves)

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message": state.Message,
			"state":   state,
		})
	}
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.stateHandler(s.service.Restart, "RESTART")(w, r)
}

func (s *Server) handleNewPuzzle(w http.ResponseWriter, r *http.Request) {
	s.stateHandler(s.service.NewPuzzle, "NEW")(w, r)
}

func (s *Server) handleNextLevel(w http.ResponseWriter, r *http.Request) {
	s.stateHandler(s.service.NextLevel, "LEVEL")(w, r)
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetMoveHistory(r.Context(), sessionID, opts)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	configName := strings.TrimSuffix(mux.Vars(r)["name"], ".json")

	config, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, config)
}

// configID derives a file-safe identifier from a display name
func configID(name string) string {
	id := strings.ToLower(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, id)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID string `json:"config_id,omitempty"`
		engine.GameConfig
	}

	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}

	id := req.ConfigID
	if id == "" {
		id = configID(req.Name)
	}

	if err := s.service.SaveConfig(r.Context(), id, &req.GameConfig); err != nil {
		respondError(w, statusForError(err), fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": id,
	})
}

// Puzzle tool handlers

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Layout []string `json:"layout"`
	}

	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.Solve(r.Context(), req.Layout)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	level := 1
	if levelStr := query.Get("level"); levelStr != "" {
		l, err := strconv.Atoi(levelStr)
		if err != nil || l < 1 {
			respondError(w, http.StatusBadRequest, "level must be a positive integer")
			return
		}
		level = l
	}

	seed := engine.RandomSeed()
	if seedStr := query.Get("seed"); seedStr != "" {
		v, err := strconv.ParseUint(seedStr, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "seed must be an unsigned integer")
			return
		}
		seed = v
	}

	result, err := s.service.Generate(r.Context(), level, seed)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(mux.Vars(r)["level"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "level must be an integer")
		return
	}

	profile, err := s.service.Profile(r.Context(), level)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	if s.hub == nil {
		http.Error(w, "WebSocket updates are disabled", http.StatusServiceUnavailable)
		return
	}

	state, err := s.service.GetGameState(r.Context(), sessionID)
	if err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)

	// Give the new client the current board straight away
	s.hub.BroadcastToSession(sessionID, state)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
