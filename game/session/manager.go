package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/soulchess/game/engine"
	"github.com/wricardo/soulchess/game/service"
)

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

// maxIDAttempts bounds the draws spent looking for an unused session ID
const maxIDAttempts = 64

// Manager handles game session lifecycle
type Manager struct {
	sessions   map[string]*service.Session
	engineOpts []engine.Option
	mu         sync.RWMutex
}

// NewManager creates a new session manager. The options are passed to
// every engine the manager creates.
func NewManager(opts ...engine.Option) *Manager {
	return &Manager{
		sessions:   make(map[string]*service.Session),
		engineOpts: opts,
	}
}

// Create creates a new session with the given ID and configuration. An empty
// id asks the manager for a fresh 4-character one. The engine is seeded from
// the configuration's seed when set, otherwise from crypto randomness.
func (m *Manager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	if strings.ContainsAny(id, " /\\?#") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}

	seed := engine.RandomSeed()
	if config != nil && config.Seed != nil {
		seed = *config.Seed
	}

	// Puzzle generation can take a while, keep it outside the lock
	eng, err := engine.NewEngine(config, seed, m.engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id, err = m.generateSessionID()
		if err != nil {
			return nil, err
		}
	} else if m.sessionExists(id) {
		return nil, ErrSessionAlreadyExists
	}

	now := time.Now()
	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         eng.GetConfig(),
		Seed:           seed,
		CreatedAt:      now,
		LastAccessedAt: now,
	}

	m.sessions[strings.ToLower(id)] = session

	return session, nil
}

// Get retrieves a session by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// GetOrCreate gets an existing session or creates a new one
func (m *Manager) GetOrCreate(id string, config *engine.GameConfig) (*service.Session, error) {
	session, err := m.Get(id)
	if err == nil {
		return session, nil
	}

	if errors.Is(err, ErrSessionNotFound) {
		return m.Create(id, config)
	}

	return nil, err
}

// List returns all active sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}

	return result
}

// Delete removes a session
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	if _, exists := m.sessions[lowerID]; !exists {
		return ErrSessionNotFound
	}
	delete(m.sessions, lowerID)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return ErrSessionNotFound
	}

	session.Touch(time.Now())
	return nil
}

// CleanupExpiredSessions removes sessions that haven't been accessed in the given duration
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, session := range m.sessions {
		if session.LastAccessed().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}

	return removed
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// generateSessionID draws random 4-character IDs until an unused one turns
// up. Callers must hold the write lock.
func (m *Manager) generateSessionID() (string, error) {
	bytes := make([]byte, 2)
	for i := 0; i < maxIDAttempts; i++ {
		if _, err := rand.Read(bytes); err != nil {
			return "", fmt.Errorf("failed to generate session ID: %w", err)
		}
		id := hex.EncodeToString(bytes)
		if !m.sessionExists(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("no free session ID after %d attempts", maxIDAttempts)
}

// sessionExists checks if a session exists (case-insensitive)
func (m *Manager) sessionExists(id string) bool {
	_, exists := m.sessions[strings.ToLower(id)]
	return exists
}
