package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/callback-service/internal/api/http/handlers"
	"github.com/spec-kit/callback-service/internal/auth"
	"github.com/spec-kit/callback-service/internal/config"
	"github.com/spec-kit/callback-service/internal/domain"
	"github.com/spec-kit/callback-service/internal/events"
	"github.com/spec-kit/callback-service/internal/observability"
	"github.com/spec-kit/callback-service/internal/repository"
	"github.com/spec-kit/callback-service/internal/service"
)

// --- in-memory stores ---

type memAgentRepo struct {
	mu     sync.Mutex
	agents []domain.Agent
}

func (m *memAgentRepo) Create(_ context.Context, agent *domain.Agent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	agent.ID = uuid.NewString()
	agent.CreatedAt = time.Now()
	m.agents = append(m.agents, *agent)
	return nil
}

func (m *memAgentRepo) GetByName(_ context.Context, name string) (*domain.Agent, error) {
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

func (m *memAgentRepo) List(_ context.Context) ([]domain.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Agent{}, m.agents...), nil
}

func (m *memAgentRepo) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.agents), nil
}

type memCallbackRepo struct {
	mu        sync.Mutex
	callbacks []domain.Callback
}

func (m *memCallbackRepo) Create(_ context.Context, callback *domain.Callback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	callback.ID = uuid.NewString()
	callback.CreatedAt = time.Now()
	callback.UpdatedAt = callback.CreatedAt
	m.callbacks = append(m.callbacks, *callback)
	return nil
}

func (m *memCallbackRepo) Update(_ context.Context, callback *domain.Callback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.callbacks {
		if m.callbacks[i].ID == callback.ID {
			m.callbacks[i] = *callback
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memCallbackRepo) GetByID(_ context.Context, id string) (*domain.Callback, error) {
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

func (m *memCallbackRepo) ListWithFilter(_ context.Context, filter repository.CallbackFilter) ([]domain.Callback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.Callback
	for _, callback := range m.callbacks {
		if filter.AgentName != nil && callback.AgentName != *filter.AgentName {
			continue
		}
		result = append(result, callback)
	}
	return result, nil
}

type memCheckRepo struct {
	mu     sync.Mutex
	checks []domain.Check
}

func (m *memCheckRepo) Create(_ context.Context, check *domain.Check) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	check.ID = uuid.NewString()
	check.CreatedAt = time.Now()
	m.checks = append(m.checks, *check)
	return nil
}

func (m *memCheckRepo) ListWithFilter(_ context.Context, filter repository.CheckFilter) ([]domain.Check, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.Check
	for _, check := range m.checks {
		if filter.AgentName != nil && check.AgentName != *filter.AgentName {
			continue
		}
		result = append(result, check)
	}
	return result, nil
}

type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]string
}

func (m *memSessionStore) Put(_ context.Context, sessionID, subject string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = subject
	return nil
}

func (m *memSessionStore) Exists(_ context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[sessionID]
	return ok, nil
}

func (m *memSessionStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

// --- harness ---

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 5,
			BcryptCost:            4,
			AdminPassword:         "admin1234",
		},
		Roster: config.RosterConfig{SeedDefaults: true},
	}

	agentRepo := &memAgentRepo{}
	callbackRepo := &memCallbackRepo{}
	checkRepo := &memCheckRepo{}
	sessions := &memSessionStore{sessions: make(map[string]string)}
	dispatcher := events.NewInMemoryDispatcher()
	logger := zap.NewNop()

	authService, err := service.NewAuthService(cfg, service.AuthDependencies{
		AgentRepo:    agentRepo,
		SessionStore: sessions,
		Logger:       logger,
	})
	require.NoError(t, err)

	callbackService := service.NewCallbackService(callbackRepo, dispatcher)
	checkService := service.NewCheckService(checkRepo, dispatcher)
	analyticsService := service.NewAnalyticsService(callbackRepo, checkRepo)
	rosterService := service.NewRosterService(agentRepo, dispatcher, cfg.Auth.BcryptCost)

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("callback-service", "test", nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		Callbacks:      handlers.NewCallbacksHandler(callbackService, checkService, analyticsService),
		Admin:          handlers.NewAdminHandler(callbackService, checkService, analyticsService, rosterService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), sessions, agentRepo),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	var parsed map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", raw)
	}
	return resp, parsed
}

func loginAgent(t *testing.T, app *fiber.App, name, code string) string {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/auth/agents/login", "", map[string]string{"name": name, "code": code})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	return data["auth"].(map[string]any)["token"].(string)
}

// --- tests ---

func TestLoginFlow_SeededDefaults(t *testing.T) {
	app := newTestApp(t)

	// empty roster is seeded on first contact with the login screen
	resp, body := doJSON(t, app, "GET", "/auth/agents", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	names := body["data"].(map[string]any)["agents"].([]any)
	assert.Equal(t, []any{"John Doe", "Jane Smith"}, names)

	token := loginAgent(t, app, "John Doe", "JD123")
	assert.NotEmpty(t, token)

	// wrong code: inline error, no session
	resp, body = doJSON(t, app, "POST", "/auth/agents/login", "", map[string]string{"name": "John Doe", "code": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["error"].(map[string]any)["code"])
}

func TestSubmitAndListCallbacks(t *testing.T) {
	app := newTestApp(t)
	johnToken := loginAgent(t, app, "John Doe", "JD123")
	janeToken := loginAgent(t, app, "Jane Smith", "JS456")

	payload := map[string]any{
		"full_name":     "Mary Jones",
		"callback_date": "2026-09-01",
		"callback_type": "warm",
		"notes":         "prefers mornings",
	}
	resp, body := doJSON(t, app, "POST", "/callbacks", johnToken, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := body["data"].(map[string]any)
	assert.Equal(t, "John Doe", created["agent_name"])

	// Jane submits one too; John only sees his own
	payload["full_name"] = "Other Person"
	resp, _ = doJSON(t, app, "POST", "/callbacks", janeToken, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = doJSON(t, app, "GET", "/callbacks", johnToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := body["data"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "Mary Jones", rows[0].(map[string]any)["full_name"])
}

func TestSubmitCallback_MissingRequiredFields(t *testing.T) {
	app := newTestApp(t)
	token := loginAgent(t, app, "John Doe", "JD123")

	resp, body := doJSON(t, app, "POST", "/callbacks", token, map[string]any{"notes": "no name or date"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", body["error"].(map[string]any)["code"])
}

func TestEditCallback(t *testing.T) {
	app := newTestApp(t)
	token := loginAgent(t, app, "John Doe", "JD123")

	resp, body := doJSON(t, app, "POST", "/callbacks", token, map[string]any{
		"full_name":     "Mary Jones",
		"callback_date": "2026-09-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["data"].(map[string]any)["id"].(string)

	resp, body = doJSON(t, app, "PUT", "/callbacks/"+id, token, map[string]any{
		"full_name":     "Mary Jones-Smith",
		"callback_date": "2026-09-02",
		"callback_type": "hot",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := body["data"].(map[string]any)
	assert.Equal(t, "Mary Jones-Smith", updated["full_name"])
	assert.Equal(t, "hot", updated["callback_type"])
}

func TestAdminConsole(t *testing.T) {
	app := newTestApp(t)
	agentToken := loginAgent(t, app, "John Doe", "JD123")

	// agent tokens do not open admin views
	resp, _ := doJSON(t, app, "GET", "/admin/agents", agentToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// wrong password rejected
	resp, _ = doJSON(t, app, "POST", "/auth/admin/unlock", "", map[string]string{"password": "letmein"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/auth/admin/unlock", "", map[string]string{"password": "admin1234"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	adminToken := body["data"].(map[string]any)["auth"].(map[string]any)["token"].(string)

	resp, body = doJSON(t, app, "POST", "/admin/agents", adminToken, map[string]string{"name": "New Agent", "code": "NA789"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "New Agent", body["data"].(map[string]any)["name"])

	// duplicate roster name rejected
	resp, body = doJSON(t, app, "POST", "/admin/agents", adminToken, map[string]string{"name": "New Agent", "code": "other"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", body["error"].(map[string]any)["code"])

	// the new agent can log in with their code
	_ = loginAgent(t, app, "New Agent", "NA789")

	resp, body = doJSON(t, app, "GET", "/admin/agents", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]any), 3)
}

func TestAdminStats(t *testing.T) {
	app := newTestApp(t)
	agentToken := loginAgent(t, app, "John Doe", "JD123")

	today := time.Now().Format(domain.DateLayout)
	for _, cb := range []map[string]any{
		{"full_name": "One", "callback_date": today, "callback_type": "hot"},
		{"full_name": "Two", "callback_date": "2030-01-01", "callback_type": "cold"},
	} {
		resp, _ := doJSON(t, app, "POST", "/callbacks", agentToken, cb)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := doJSON(t, app, "POST", "/auth/admin/unlock", "", map[string]string{"password": "admin1234"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	adminToken := body["data"].(map[string]any)["auth"].(map[string]any)["token"].(string)

	resp, body = doJSON(t, app, "GET", "/admin/callbacks/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := body["data"].(map[string]any)
	assert.Equal(t, float64(2), stats["total"])
	assert.Equal(t, float64(1), stats["due_today"])
}

func TestLogoutTerminatesSession(t *testing.T) {
	app := newTestApp(t)
	token := loginAgent(t, app, "John Doe", "JD123")

	resp, _ := doJSON(t, app, "GET", "/callbacks", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, "GET", "/callbacks", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["error"].(map[string]any)["code"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/callbacks", "/admin/callbacks"} {
		resp, _ := doJSON(t, app, "GET", path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "path %s", path)
	}
}
