package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger_JSONOutput tests that messages come out as JSON with fields
func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(InfoLevel, &buf)

	log.WithField("customer", "acme").WithError(errors.New("boom")).Info("export finished")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "export finished", entry["msg"])
	assert.Equal(t, "acme", entry["customer"])
	assert.Equal(t, "boom", entry["error"])
}

// TestLogger_LevelFiltering tests that debug is suppressed at info level
func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(InfoLevel, &buf)

	log.Debug("hidden")
	assert.Empty(t, buf.Bytes())

	log.Infof("shown %d", 1)
	assert.NotEmpty(t, buf.Bytes())
}

type stubChecker struct{ err error }

func (s stubChecker) HealthCheck(ctx context.Context) error { return s.err }

// TestHealthChecker_Readiness tests the ready and unready paths
func TestHealthChecker_Readiness(t *testing.T) {
	h := NewHealthChecker("1.0.2")
	h.AddDependency("database", stubChecker{})

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, StatusHealthy, status.Status)
	assert.Equal(t, "1.0.2", status.Version)
	assert.Equal(t, StatusHealthy, status.Dependencies["database"].Status)

	h.AddDependency("redis", stubChecker{err: errors.New("down")})
	rec = httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

// TestHealthChecker_Liveness tests that liveness never consults dependencies
func TestHealthChecker_Liveness(t *testing.T) {
	h := NewHealthChecker("1.0.2")
	h.AddDependency("database", stubChecker{err: errors.New("down")})

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestMetrics_ObserveHTTPRequest tests metric registration and serving
func TestMetrics_ObserveHTTPRequest(t *testing.T) {
	m := NewMetrics(nil)
	m.ObserveHTTPRequest(http.MethodGet, "/plugins", http.StatusOK, 25*time.Millisecond)
	m.ExportsTotal.WithLabelValues("completed").Inc()
	m.ZonesBuilt.Add(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "mbrshape_http_requests_total")
	assert.Contains(t, body, "mbrshape_exports_total")
	assert.Contains(t, body, "mbrshape_zones_built_total 3")
}
