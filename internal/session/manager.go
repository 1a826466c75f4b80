// Package session hands out isolated pipeline cores keyed by session ID.
// Sessions live in memory only and expire after idling; nothing survives a
// restart.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nidhogg/metamind/internal/orchestrator"
	"github.com/nidhogg/metamind/internal/quality"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("session not found")

// Session pairs a core with the lock that serializes its pipeline passes.
// Subsystem trails mutate on every pass, so concurrent requests against
// the same session must not interleave.
type Session struct {
	ID   string
	core *orchestrator.Core
	mu   sync.Mutex
}

// Process runs one pipeline pass under the session lock.
func (s *Session) Process(input string) orchestrator.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.ProcessInput(input)
}

// Feedback routes a feedback message under the session lock.
func (s *Session) Feedback(feedback string) quality.FeedbackRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.ProcessFeedback(feedback)
}

// Insights snapshots the session under the session lock.
func (s *Session) Insights() orchestrator.Insights {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.Insights()
}

// Profile snapshots the user view under the session lock.
func (s *Session) Profile() orchestrator.ProfileSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.ProfileSummary()
}

// Manager creates, finds, and expires sessions.
type Manager struct {
	sessions *cache.Cache
	logger   *zap.Logger
}

// NewManager creates a session manager whose sessions expire after the
// idle TTL; expired entries are purged at the sweep interval.
func NewManager(ttl, sweep time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		sessions: cache.New(ttl, sweep),
		logger:   logger,
	}
}

// Create starts a new isolated session and returns it.
func (m *Manager) Create() *Session {
	s := &Session{
		ID:   uuid.New().String(),
		core: orchestrator.NewCore(m.logger),
	}
	m.sessions.Set(s.ID, s, cache.DefaultExpiration)
	m.logger.Info("session created", zap.String("id", s.ID))
	return s
}

// Get returns the session for an ID, refreshing its idle TTL.
func (m *Manager) Get(id string) (*Session, error) {
	v, found := m.sessions.Get(id)
	if !found {
		return nil, ErrNotFound
	}
	s := v.(*Session)
	m.sessions.Set(id, s, cache.DefaultExpiration)
	return s, nil
}

// Delete drops a session.
func (m *Manager) Delete(id string) {
	m.sessions.Delete(id)
	m.logger.Info("session deleted", zap.String("id", id))
}

// Count returns the number of live sessions.
func (m *Manager) Count() int { return m.sessions.ItemCount() }
