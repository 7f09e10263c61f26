package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/callback-service/internal/domain"
	"github.com/spec-kit/callback-service/internal/repository"
)

// mockAgentRepo is an in-memory repository.AgentRepository for tests.
type mockAgentRepo struct {
	mu     sync.Mutex
	agents []domain.Agent
}

func (m *mockAgentRepo) Create(_ context.Context, agent *domain.Agent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	agent.ID = uuid.NewString()
	agent.CreatedAt = time.Now()
	m.agents = append(m.agents, *agent)
	return nil
}

func (m *mockAgentRepo) GetByName(_ context.Context, name string) (*domain.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, agent := range m.agents {
		if agent.Name == name {
			found := agent
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockAgentRepo) List(_ context.Context) ([]domain.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Agent{}, m.agents...), nil
}

func (m *mockAgentRepo) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.agents), nil
}

// mockCallbackRepo is an in-memory repository.CallbackRepository preserving
// insertion order.
type mockCallbackRepo struct {
	mu        sync.Mutex
	callbacks []domain.Callback
}

func (m *mockCallbackRepo) Create(_ context.Context, callback *domain.Callback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	callback.ID = uuid.NewString()
	callback.CreatedAt = time.Now()
	callback.UpdatedAt = callback.CreatedAt
	m.callbacks = append(m.callbacks, *callback)
	return nil
}

func (m *mockCallbackRepo) Update(_ context.Context, callback *domain.Callback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.callbacks {
		if m.callbacks[i].ID == callback.ID {
			callback.UpdatedAt = time.Now()
			m.callbacks[i] = *callback
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockCallbackRepo) GetByID(_ context.Context, id string) (*domain.Callback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, callback := range m.callbacks {
		if callback.ID == id {
			found := callback
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockCallbackRepo) ListWithFilter(_ context.Context, filter repository.CallbackFilter) ([]domain.Callback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.Callback
	for _, callback := range m.callbacks {
		if filter.AgentName != nil && callback.AgentName != *filter.AgentName {
			continue
		}
		if filter.CallbackDate != nil && callback.CallbackDate != *filter.CallbackDate {
			continue
		}
		if filter.CallbackType != nil && callback.CallbackType != *filter.CallbackType {
			continue
		}
		result = append(result, callback)
	}
	return result, nil
}

// mockCheckRepo is an in-memory repository.CheckRepository.
type mockCheckRepo struct {
	mu     sync.Mutex
	checks []domain.Check
}

func (m *mockCheckRepo) Create(_ context.Context, check *domain.Check) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	check.ID = uuid.NewString()
	check.CreatedAt = time.Now()
	m.checks = append(m.checks, *check)
	return nil
}

func (m *mockCheckRepo) ListWithFilter(_ context.Context, filter repository.CheckFilter) ([]domain.Check, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.Check
	for _, check := range m.checks {
		if filter.AgentName != nil && check.AgentName != *filter.AgentName {
			continue
		}
		if filter.Plan != nil && check.Plan != *filter.Plan {
			continue
		}
		result = append(result, check)
	}
	return result, nil
}

// fakeSessionStore is an in-memory auth.SessionStore.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]string)}
}

func (f *fakeSessionStore) Put(_ context.Context, sessionID, subject string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[sessionID] = subject
	return nil
}

func (f *fakeSessionStore) Exists(_ context.Context, sessionID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.sessions[sessionID]
	return ok, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sessionID)
	return nil
}
