package triage

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"pawtrack.app/triage/common/logger"
	"pawtrack.app/triage/internal/model"
)

var ErrSessionNotFound = errors.New("assessment session not found")

// Manager owns the live assessment sessions for this instance and is
// the only entry point the rest of the application needs: open, toggle,
// reset, request an AI assessment, close.
type Manager struct {
	mu           sync.Mutex
	sessions     map[string]*Session
	orchestrator *Orchestrator
}

func NewManager(orchestrator *Orchestrator) *Manager {
	return &Manager{
		sessions:     make(map[string]*Session),
		orchestrator: orchestrator,
	}
}

// Open creates a session scoped to one assessment UI instance.
func (m *Manager) Open(dogID *int64) View {
	s := newSession(dogID)
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	return s.View()
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close discards a session entirely. Any in-flight AI request is
// cancelled and its eventual result ignored.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.close()
	}
}

// RequestAssessment runs the AI emergency assessment for a session.
// On success the result is stored on the session and the session
// advances to the AI-result step. On failure the session stays in its
// pre-call step and the classified error is returned; retry is
// user-initiated. A result arriving after the session was reset or
// closed is discarded, never applied.
func (m *Manager) RequestAssessment(ctx context.Context, sessionID string) (*model.EmergencyAssessment, error) {
	s, err := m.Get(sessionID)
	if err != nil {
		return nil, err
	}

	callCtx, cancel, gen, input, err := s.beginAssessment(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	callCtx = logger.WithLogFields(callCtx, logger.LogFields{
		SessionID: logger.Ptr(sessionID),
	})

	result, err := m.orchestrator.AssessEmergency(callCtx, input)
	if err != nil {
		s.failAssessment(gen)
		return nil, err
	}

	if !s.completeAssessment(gen, result) {
		slog.InfoContext(ctx, "discarding assessment result for reset session",
			"session_id", sessionID)
		return nil, ErrStaleResult
	}
	return result, nil
}
