package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"creator-pricing-workers/internal/common/config"
	"creator-pricing-workers/internal/common/logger"
	"creator-pricing-workers/internal/common/ratelimit"
	"creator-pricing-workers/internal/common/validation"
	qe "creator-pricing-workers/internal/workers/pricing/calculate-quick-estimate"
	"creator-pricing-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helpers
// ==========================

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, stderrors.New("redis: connection refused")
}

func newTestValidator(t *testing.T) *validation.Validator {
	t.Helper()
	reg, err := registry.Default()
	require.NoError(t, err)
	v, err := validation.NewValidator(reg.InputSchemas())
	require.NoError(t, err)
	return v
}

func newTestServer(t *testing.T, limiter ratelimit.Limiter, checks map[string]Check) *Server {
	t.Helper()
	log := logger.NewTestLogger(t)
	s := NewServer(config.HTTPConfig{Address: ":0"}, Dependencies{
		Estimator: qe.NewHandler(qe.DefaultConfig(), nil, nil, log),
		Limiter:   limiter,
		Validator: newTestValidator(t),
		Checks:    checks,
		Logger:    log,
	})
	s.clock = func() time.Time { return fixedNow }
	return s
}

func postEstimate(s *Server, body, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, QuickEstimatePath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

const microStatic = `{"followerCount": 25000, "platform": "instagram", "contentFormat": "static"}`

// ==========================
// Quick Estimate
// ==========================

func TestQuickEstimate_OK(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := postEstimate(s, microStatic, "203.0.113.7:5123")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var out qe.Output
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "micro", out.Estimate.Tier)
	assert.Equal(t, "$320 - $480", out.DisplayRange)
}

func TestQuickEstimate_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		code    string
		message string
	}{
		{"malformed json", `{"followerCount":`, "PARSE_ERROR", "Request body must be a JSON object"},
		{"missing platform", `{"followerCount": 25000, "contentFormat": "static"}`, "VALIDATION_FAILED", "platform"},
		{"wrong type", `{"followerCount": "lots", "platform": "instagram", "contentFormat": "static"}`, "VALIDATION_FAILED", "followerCount"},
		{"out of range", `{"followerCount": 500, "platform": "instagram", "contentFormat": "static"}`, "VALIDATION_FAILED", "Invalid followerCount: must be between 1000 and 10000000"},
		{"unknown format", `{"followerCount": 25000, "platform": "instagram", "contentFormat": "hologram"}`, "VALIDATION_FAILED", "Invalid contentFormat"},
	}

	s := newTestServer(t, nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postEstimate(s, tt.body, "203.0.113.7:5123")
			require.Equal(t, http.StatusBadRequest, rec.Code)

			body := decodeError(t, rec)
			assert.Equal(t, tt.code, string(body.Code))
			assert.Contains(t, body.Message, tt.message)
		})
	}
}

func TestQuickEstimate_RateLimitedPerIP(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(2, time.Minute, 100, func() time.Time { return fixedNow })
	s := newTestServer(t, limiter, nil)

	for i := 0; i < 2; i++ {
		rec := postEstimate(s, microStatic, "203.0.113.7:5123")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}
	assert.Equal(t, "0", postEstimate(s, microStatic, "203.0.113.7:9999").Header().Get("X-RateLimit-Remaining"))

	rec := postEstimate(s, microStatic, "203.0.113.7:40000")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	body := decodeError(t, rec)
	assert.Equal(t, "RATE_LIMITED", string(body.Code))
	assert.EqualValues(t, 60, body.Metadata["retryAfterSeconds"])

	other := postEstimate(s, microStatic, "198.51.100.2:5123")
	assert.Equal(t, http.StatusOK, other.Code, "limits are per client IP")
}

func TestQuickEstimate_ForwardedForIsTheClient(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(1, time.Minute, 100, func() time.Time { return fixedNow })
	s := newTestServer(t, limiter, nil)

	send := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, QuickEstimatePath, strings.NewReader(microStatic))
		req.RemoteAddr = "10.0.0.1:443"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.7"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.7"))
	assert.Equal(t, http.StatusOK, send("198.51.100.2"))
}

func TestQuickEstimate_LimiterErrorFailsOpen(t *testing.T) {
	s := newTestServer(t, failingLimiter{}, nil)

	rec := postEstimate(s, microStatic, "203.0.113.7:5123")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestQuickEstimate_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, QuickEstimatePath, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// ==========================
// Health and Readiness
// ==========================

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReady(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return stderrors.New("dial tcp: connection refused") }

	tests := []struct {
		name     string
		checks   map[string]Check
		status   int
		expected string
	}{
		{"no checks", nil, http.StatusOK, `{"status":"ready"}`},
		{"all ok", map[string]Check{"redis": ok, "postgres": ok}, http.StatusOK, `{"status":"ready","checks":{"redis":"ok","postgres":"ok"}}`},
		{"one down", map[string]Check{"redis": down, "postgres": ok}, http.StatusServiceUnavailable,
			`{"status":"not_ready","checks":{"redis":"dial tcp: connection refused","postgres":"ok"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil, tt.checks)

			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.expected, rec.Body.String())
		})
	}
}

func TestMetricsExposed(t *testing.T) {
	s := newTestServer(t, nil, nil)
	postEstimate(s, microStatic, "203.0.113.7:5123")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "scoring_results_total")
}
