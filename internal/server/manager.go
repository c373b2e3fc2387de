package server

import (
	"context"
	"errors"
	"sync"

	"github.com/talentscout/screener/internal/screening"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session already closed")
)

// SessionFactory builds a fresh screening session for the given identifier.
type SessionFactory func(id string) *screening.Session

// Manager keeps the independent sessions served over HTTP, keyed by uuid.
// Turns within one session are serialized; sessions never share state.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	factory  SessionFactory
}

type entry struct {
	mu      sync.Mutex
	session *screening.Session
}

func NewManager(factory SessionFactory) *Manager {
	return &Manager{
		sessions: make(map[string]*entry),
		factory:  factory,
	}
}

// Create starts a new session and returns its id and opening message.
func (m *Manager) Create() (string, string) {
	id := uuid.NewString()
	session := m.factory(id)
	greeting := session.Greeting()

	m.mu.Lock()
	m.sessions[id] = &entry{session: session}
	m.mu.Unlock()

	return id, greeting
}

// Turn feeds one user message into the session. A closed session is dropped
// from the manager once its closing reply has been produced.
func (m *Manager) Turn(ctx context.Context, id, text string) (screening.Reply, screening.Phase, error) {
	e, err := m.get(id)
	if err != nil {
		return screening.Reply{}, 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.Closed() {
		return screening.Reply{}, screening.PhaseClosed, ErrSessionClosed
	}

	reply := e.session.HandleTurn(ctx, text)
	phase := e.session.Phase()

	if reply.Closed {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
	}

	return reply, phase, nil
}

func (m *Manager) Transcript(id string) ([]screening.Turn, error) {
	e, err := m.get(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Transcript(), nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) get(id string) (*entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}
