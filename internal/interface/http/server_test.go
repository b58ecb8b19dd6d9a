package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/course-hub/coursehub/internal/application/service"
	"github.com/course-hub/coursehub/internal/infrastructure/metrics"
	"github.com/course-hub/coursehub/internal/infrastructure/persistence/sqldb"
	"github.com/course-hub/coursehub/internal/infrastructure/persistence/sqldb/sqldbtest"
	api "github.com/course-hub/coursehub/internal/interface/http"
	"github.com/course-hub/coursehub/internal/interface/http/handlers"
	"github.com/course-hub/coursehub/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fixture struct {
	handler http.Handler
	store   *sqldb.Store
	rec     *sqldbtest.Recorder
}

func newFixture(t *testing.T, mutate func(*api.Config, *api.Dependencies)) *fixture {
	t.Helper()

	store, rec := sqldbtest.Open(t)
	factory := sqldb.NewUnitOfWorkFactory(store, logger.Nop())

	checker := handlers.NewCompositeHealthChecker("test")
	checker.AddCheck("database", handlers.NewDatabaseCheck(store))

	cfg := api.DefaultConfig()
	cfg.RateLimit = 0
	deps := api.Dependencies{
		Managers:      service.NewManagers(factory, logger.Nop()),
		Logger:        logger.Nop(),
		HealthChecker: checker,
		Metrics:       metrics.New(),
	}
	if mutate != nil {
		mutate(&cfg, &deps)
	}

	srv := api.NewServer(cfg, deps)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	return &fixture{handler: srv.Handler(), store: store, rec: rec}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

// ══════════════════════════════════════════════════════════════════════════════
// CRUD ROUND TRIP
// ══════════════════════════════════════════════════════════════════════════════

func TestCourseLifecycle(t *testing.T) {
	f := newFixture(t, nil)

	w := f.do(t, http.MethodPost, "/api/courses", map[string]any{
		"course_name": "Distributed Systems",
		"start_date":  "2024-01-01T00:00:00Z",
		"end_date":    "2024-06-01T00:00:00Z",
		"is_active":   true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, service.MsgCourseCreateSuccess, decode(t, w).Message)

	w = f.do(t, http.MethodGet, "/api/courses", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var courses []struct {
		ID         string `json:"id"`
		CourseName string `json:"course_name"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &courses))
	require.Len(t, courses, 1)
	id := courses[0].ID

	w = f.do(t, http.MethodGet, "/api/courses/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), "Distributed Systems")

	w = f.do(t, http.MethodPut, "/api/courses", map[string]any{
		"id":          id,
		"course_name": "Distributed Systems II",
		"start_date":  "2024-01-01T00:00:00Z",
		"end_date":    "2024-07-01T00:00:00Z",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(t, http.MethodGet, "/api/courses/detail", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), "Distributed Systems II")

	w = f.do(t, http.MethodDelete, "/api/courses", map[string]string{"id": id})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(t, http.MethodGet, "/api/courses", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, service.MsgCourseListEmpty, env.Message)
}

func TestFailedOutcomesAre400(t *testing.T) {
	f := newFixture(t, nil)

	w := f.do(t, http.MethodGet, "/api/courses/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Equal(t, service.MsgCourseNotFound, env.Message)
	assert.Equal(t, "null", string(env.Data))

	w = f.do(t, http.MethodPut, "/api/students", map[string]any{"id": uuid.NewString(), "name": "Nobody"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.MsgStudentUpdateFailed, decode(t, w).Message)
}

// ══════════════════════════════════════════════════════════════════════════════
// INPUT HANDLING
// ══════════════════════════════════════════════════════════════════════════════

func TestRejectsBadBodiesBeforeTheStore(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		name     string
		path     string
		body     any
		contains string
	}{
		{"malformed json", "/api/courses", `{"course_name":`, "not valid JSON"},
		{"unknown field", "/api/students", `{"nickname":"x"}`, "not valid JSON"},
		{"empty body", "/api/lessons", nil, "not valid JSON"},
		{"bad email", "/api/instructors", map[string]string{"name": "Ada", "email": "nope"}, "email: failed email"},
		{"bad reference", "/api/courses", map[string]string{"course_name": "Go", "instructor_id": "42"}, "instructor_id: failed uuid"},
		{"negative duration", "/api/lessons", map[string]any{"name": "Intro", "duration": -5}, "duration: failed gte=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.rec.Reset()
			w := f.do(t, http.MethodPost, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			env := decode(t, w)
			assert.False(t, env.Success)
			assert.Contains(t, env.Message, tt.contains)
			assert.Zero(t, f.rec.Total())
		})
	}
}

func TestNullBodyWritesNothing(t *testing.T) {
	f := newFixture(t, nil)

	paths := []string{
		"/api/courses", "/api/instructors", "/api/students",
		"/api/lessons", "/api/exams", "/api/registrations",
		"/api/exams/results", "/api/courses/validate",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			f.rec.Reset()
			w := f.do(t, http.MethodPost, path, "null")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			env := decode(t, w)
			assert.False(t, env.Success)
			assert.Equal(t, service.MsgNilInput, env.Message)
			assert.Zero(t, f.rec.Total())
		})
	}

	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		w := f.do(t, method, "/api/courses", "null")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	w := f.do(t, http.MethodGet, "/api/courses", nil)
	assert.Equal(t, service.MsgCourseListEmpty, decode(t, w).Message)
}

func TestValidateCourseEndpoint(t *testing.T) {
	f := newFixture(t, nil)

	w := f.do(t, http.MethodPost, "/api/courses/validate", map[string]string{
		"course_name": "Compilers",
		"start_date":  "2024-03-01",
		"end_date":    "2024-02-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.MsgCourseDatesOrder, decode(t, w).Message)

	w = f.do(t, http.MethodPost, "/api/courses/validate", map[string]string{
		"course_name": "Compilers",
		"start_date":  "2024-01-01",
		"end_date":    "2024-02-01",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.MsgCourseValid, decode(t, w).Message)
}

// ══════════════════════════════════════════════════════════════════════════════
// ERROR MAPPING
// ══════════════════════════════════════════════════════════════════════════════

func TestMissingReferenceIs400(t *testing.T) {
	f := newFixture(t, nil)

	w := f.do(t, http.MethodPost, "/api/registrations", map[string]any{
		"student_id":        uuid.NewString(),
		"course_id":         uuid.NewString(),
		"registration_date": "2024-02-01T00:00:00Z",
		"price":             "99.90",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "referenced entity does not exist")
}

func TestStorageFailureIs500(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.store.Close())

	w := f.do(t, http.MethodGet, "/api/instructors", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "an unexpected error occurred", env.Message)
	assert.NotContains(t, w.Body.String(), "closed")
}

func TestRouting(t *testing.T) {
	f := newFixture(t, nil)

	w := f.do(t, http.MethodGet, "/api/nothing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, decode(t, w).Success)

	w = f.do(t, http.MethodPatch, "/api/courses", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.False(t, decode(t, w).Success)

	w = f.do(t, http.MethodPost, "/api/courses/detail", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = f.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/registrations")
}

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & METRICS
// ══════════════════════════════════════════════════════════════════════════════

func TestHealthEndpoints(t *testing.T) {
	f := newFixture(t, nil)

	w := f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var status handlers.HealthStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.Healthy)
	assert.True(t, status.Checks["database"].Healthy)

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/ready", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/live", nil).Code)

	require.NoError(t, f.store.Close())

	w = f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, http.StatusServiceUnavailable, f.do(t, http.MethodGet, "/ready", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/live", nil).Code)
}

func TestHealthWithFailingCheck(t *testing.T) {
	f := newFixture(t, func(_ *api.Config, d *api.Dependencies) {
		checker := handlers.NewCompositeHealthChecker("test")
		checker.AddCheck("broker", func(context.Context) error { return errors.New("unreachable") })
		d.HealthChecker = checker
	})

	w := f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Some checks failed: broker")
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, nil)

	f.do(t, http.MethodGet, "/api/courses", nil)
	w := f.do(t, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `coursehub_http_requests_total{method="GET",route="/api/courses",status="400"} 1`)
}

func TestMetricsDisabled(t *testing.T) {
	f := newFixture(t, func(c *api.Config, _ *api.Dependencies) { c.EnableMetrics = false })

	w := f.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ══════════════════════════════════════════════════════════════════════════════
// MIDDLEWARE
// ══════════════════════════════════════════════════════════════════════════════

func TestRequestIDIsEchoed(t *testing.T) {
	f := newFixture(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))

	w = f.do(t, http.MethodGet, "/live", nil)
	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(t, err)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t, func(c *api.Config, _ *api.Dependencies) {
		c.AllowedOrigins = []string{"https://school.example"}
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/courses", nil)
	req.Header.Set("Origin", "https://school.example")
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://school.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/live", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	w = httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	f := newFixture(t, func(c *api.Config, _ *api.Dependencies) {
		c.RateLimit = 0.001
		c.RateLimitBurst = 2
	})

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/live", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/live", nil).Code)

	w := f.do(t, http.MethodGet, "/live", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.False(t, decode(t, w).Success)

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.9, 10.0.0.1")
	spoofed := httptest.NewRecorder()
	f.handler.ServeHTTP(spoofed, req)
	assert.Equal(t, http.StatusTooManyRequests, spoofed.Code)
}

func TestRateLimit_TrustedProxyKeysByForwardedFor(t *testing.T) {
	f := newFixture(t, func(c *api.Config, _ *api.Dependencies) {
		c.RateLimit = 0.001
		c.RateLimitBurst = 1
		c.TrustProxy = true
	})

	get := func(xff string) int {
		req := httptest.NewRequest(http.MethodGet, "/live", nil)
		req.Header.Set("X-Forwarded-For", xff)
		w := httptest.NewRecorder()
		f.handler.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, get("10.0.0.9, 10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, get("10.0.0.9"))
	assert.Equal(t, http.StatusOK, get("10.0.0.10"))
}

func TestBodyTooLarge(t *testing.T) {
	f := newFixture(t, func(c *api.Config, _ *api.Dependencies) { c.MaxBodyBytes = 16 })

	w := f.do(t, http.MethodPost, "/api/students", `{"name":"`+strings.Repeat("a", 64)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
