package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/repository"
)

const testKey = "secret-key"

type MockTrigger struct {
	mock.Mock
}

func (m *MockTrigger) Trigger() bool { return m.Called().Bool(0) }
func (m *MockTrigger) Running() bool { return m.Called().Bool(0) }
func (m *MockTrigger) Last() *domain.RunSummary {
	s, _ := m.Called().Get(0).(*domain.RunSummary)
	return s
}

type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) Recent(ctx context.Context, limit int) ([]repository.RunLogEntry, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]repository.RunLogEntry), args.Error(1)
}

type fakePool struct{ err error }

func (p fakePool) Ping(context.Context) error { return p.err }
func (p fakePool) Close()                     {}

func serve(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(HeaderAPIKey, testKey)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestTriggerSync(t *testing.T) {
	trigger := new(MockTrigger)
	trigger.On("Trigger").Return(true).Once()
	trigger.On("Trigger").Return(false).Once()
	trigger.On("Running").Return(true)
	router := NewRouter(Config{APIKey: testKey}, Deps{Sync: trigger})

	rec := serve(t, router, http.MethodPost, "/api/v1/sync")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"status": "queued", "running": true}`, rec.Body.String())

	rec = serve(t, router, http.MethodPost, "/api/v1/sync")
	assert.Equal(t, http.StatusConflict, rec.Code)
	trigger.AssertExpectations(t)
}

func TestLastRun(t *testing.T) {
	trigger := new(MockTrigger)
	trigger.On("Last").Return(nil).Once()
	trigger.On("Last").Return(&domain.RunSummary{RunID: "run-1", Created: 2}).Once()
	router := NewRouter(Config{APIKey: testKey}, Deps{Sync: trigger})

	assert.Equal(t, http.StatusNotFound, serve(t, router, http.MethodGet, "/api/v1/runs/last").Code)

	rec := serve(t, router, http.MethodGet, "/api/v1/runs/last")
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.RunSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, 2, got.Created)
}

func TestListRuns(t *testing.T) {
	history := new(MockHistory)
	history.On("Recent", mock.Anything, 5).Return([]repository.RunLogEntry{{RunID: "run-1"}}, nil)
	history.On("Recent", mock.Anything, 0).Return([]repository.RunLogEntry(nil), errors.New("db down"))
	router := NewRouter(Config{APIKey: testKey}, Deps{Sync: new(MockTrigger), History: history})

	rec := serve(t, router, http.MethodGet, "/api/v1/runs?limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"run_id":"run-1"`)

	assert.Equal(t, http.StatusBadRequest, serve(t, router, http.MethodGet, "/api/v1/runs?limit=abc").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(t, router, http.MethodGet, "/api/v1/runs").Code)
}

func TestListRuns_HistoryDisabled(t *testing.T) {
	router := NewRouter(Config{APIKey: testKey}, Deps{Sync: new(MockTrigger)})

	rec := serve(t, router, http.MethodGet, "/api/v1/runs")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgHistoryDisabled)
}

func TestHealthEndpoints(t *testing.T) {
	healthy := NewRouter(Config{APIKey: testKey}, Deps{Sync: new(MockTrigger), DB: fakePool{}})
	broken := NewRouter(Config{APIKey: testKey}, Deps{Sync: new(MockTrigger), DB: fakePool{err: errors.New("refused")}})
	noDB := NewRouter(Config{APIKey: testKey}, Deps{Sync: new(MockTrigger)})

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		healthy.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	assert.Equal(t, http.StatusServiceUnavailable, serve(t, broken, http.MethodGet, "/readyz").Code)
	assert.Equal(t, http.StatusOK, serve(t, noDB, http.MethodGet, "/readyz").Code)
	assert.Equal(t, http.StatusOK, serve(t, noDB, http.MethodGet, "/metrics").Code)
}

func TestLoggingMiddleware_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
	req.Header.Set(HeaderAPIKey, "secret-key-123")
	req.Header.Set(HeaderAuthorization, "Bearer mytoken")
	req.Header.Set("User-Agent", "TestAgent")
	loggingMiddleware(okHandler()).ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	require.True(t, strings.Contains(out, LogMsgRequestHeaders), out)
	assert.NotContains(t, out, "secret-key-123")
	assert.NotContains(t, out, "Bearer mytoken")
	assert.Contains(t, out, "TestAgent")
	assert.Contains(t, out, "status=200")
}

func TestSwaggerRequiresKey(t *testing.T) {
	router := NewRouter(Config{APIKey: testKey}, Deps{Sync: new(MockTrigger)})

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSwaggerServesDocument(t *testing.T) {
	router := NewRouter(Config{APIKey: testKey}, Deps{Sync: new(MockTrigger)})

	rec := serve(t, router, http.MethodGet, "/swagger/doc.json")

	require.Equal(t, http.StatusOK, rec.Code)
	var doc struct {
		Info  map[string]any            `json:"info"`
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Assignment Sync API", doc.Info["title"])
	for _, path := range []string{"/api/v1/sync", "/api/v1/runs", "/api/v1/runs/last", "/healthz", "/readyz"} {
		assert.Contains(t, doc.Paths, path)
	}
}
