package session

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"cloud-kitchen-client/internal/domain"
)

var ErrNoSession = errors.New("no active session")

// State is everything the client persists between calls: the bearer token
// and the profile returned at login.
type State struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user,omitempty"`
}

type Store interface {
	// Load returns ErrNoSession when nothing is stored.
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, state *State) error
	Clear(ctx context.Context) error
}

type Reason string

const (
	ReasonLogout       Reason = "logout"
	ReasonUnauthorized Reason = "unauthorized"
)

// ClearedFunc observes session teardown. prev is the state that was removed,
// nil if nothing was stored.
type ClearedFunc func(ctx context.Context, prev *State, reason Reason)

type MemoryStore struct {
	mu    sync.RWMutex
	state *State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil, ErrNoSession
	}
	cp := *s.state
	return &cp, nil
}

func (s *MemoryStore) Save(_ context.Context, state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *state
	s.state = &cp
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = nil
	return nil
}

// Manager is the session object handed to every client. Only SignIn,
// SignOut and Invalidate mutate the store.
type Manager struct {
	store Store

	mu        sync.RWMutex
	listeners []ClearedFunc
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// OnCleared registers fn to run after the session is torn down.
func (m *Manager) OnCleared(fn ClearedFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Token returns the stored bearer token, or "" when unauthenticated.
func (m *Manager) Token(ctx context.Context) (string, error) {
	state, err := m.store.Load(ctx)
	if errors.Is(err, ErrNoSession) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return state.Token, nil
}

func (m *Manager) User(ctx context.Context) (*domain.User, error) {
	state, err := m.store.Load(ctx)
	if errors.Is(err, ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return state.User, nil
}

func (m *Manager) SignIn(ctx context.Context, token string, user *domain.User) error {
	if token == "" {
		return errors.New("empty token")
	}
	return m.store.Save(ctx, &State{Token: token, User: user})
}

func (m *Manager) SignOut(ctx context.Context) error {
	return m.clear(ctx, ReasonLogout)
}

// Invalidate drops the session after the server rejected its token.
func (m *Manager) Invalidate(ctx context.Context) error {
	return m.clear(ctx, ReasonUnauthorized)
}

func (m *Manager) clear(ctx context.Context, reason Reason) error {
	prev, err := m.store.Load(ctx)
	if err != nil {
		prev = nil
	}
	if err := m.store.Clear(ctx); err != nil {
		return err
	}

	m.mu.RLock()
	listeners := append([]ClearedFunc(nil), m.listeners...)
	m.mu.RUnlock()
	for _, fn := range listeners {
		fn(ctx, prev, reason)
	}
	return nil
}

// Headers returns the JSON content type plus the bearer token when one is
// stored.
func (m *Manager) Headers(ctx context.Context) (http.Header, error) {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")

	token, err := m.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h, nil
}
