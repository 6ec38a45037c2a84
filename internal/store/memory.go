package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ Store = (*Memory)(nil)

// Memory is an in-memory Store used by tests and as a fallback when the
// config directory is unavailable.
type Memory struct {
	mu       sync.RWMutex
	token    string
	profile  Profile
	prefs    Prefs
	clientID string
	first    time.Time
	last     time.Time
	records  map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

func (m *Memory) Token(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == "" {
		return "", ErrNoToken
	}
	return m.token, nil
}

func (m *Memory) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Memory) ClearToken(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func (m *Memory) Profile(_ context.Context) (Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profile, nil
}

func (m *Memory) SetProfile(_ context.Context, p Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = p
	return nil
}

func (m *Memory) ClearProfile(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = Profile{}
	return nil
}

func (m *Memory) Prefs(_ context.Context) (Prefs, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.prefs, nil
}

func (m *Memory) SetPrefs(_ context.Context, p Prefs) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = p
	return nil
}

func (m *Memory) ClearPrefs(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = Prefs{}
	return nil
}

func (m *Memory) ClearRecords(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string][]byte)
	return nil
}

func (m *Memory) ClientID(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clientID == "" {
		m.clientID = uuid.NewString()
	}
	return m.clientID, nil
}

func (m *Memory) MarkSignedIn(_ context.Context, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.first.IsZero() {
		m.first = at
	}
	m.last = at
	return nil
}

func (m *Memory) SignInTimes(_ context.Context) (time.Time, time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.first, m.last, nil
}

func (m *Memory) Close() error { return nil }
