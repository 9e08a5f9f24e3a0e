package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcahoon3/mbr-shapefile-generator/pkg/observability"
)

// TestWriteJSON tests JSON response encoding
func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, http.StatusOK, map[string]string{"hello": "world"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"hello":"world"}`, rec.Body.String())
}

// TestWriteError tests the error response shape
func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusNotFound, errors.New("plugin not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"plugin not found"}`, rec.Body.String())
}

// TestParseJSONOrError tests body decoding and the bad request path
func TestParseJSONOrError(t *testing.T) {
	var dest map[string]string

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":"b"}`))
	require.True(t, ParseJSONOrError(rec, req, &dest))
	assert.Equal(t, "b", dest["a"])

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	assert.False(t, ParseJSONOrError(rec, req, &dest))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestParsePathString tests mux path variable extraction
func TestParsePathString(t *testing.T) {
	router := mux.NewRouter()
	var got string
	router.HandleFunc("/plugins/{name}", func(w http.ResponseWriter, r *http.Request) {
		name, ok := ParsePathStringOrError(w, r, "name")
		require.True(t, ok)
		got = name
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plugins/mbr_tool", nil))
	assert.Equal(t, "mbr_tool", got)
}

// TestParseQueryBool tests query flag parsing with defaults
func TestParseQueryBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/plugins?deprecated=false", nil)
	assert.False(t, ParseQueryBool(req, "deprecated", true))
	assert.True(t, ParseQueryBool(req, "missing", true))
}

// TestRecoveryMiddleware tests panic conversion to a 500
func TestRecoveryMiddleware(t *testing.T) {
	log := observability.NewLogger(observability.ErrorLevel, io.Discard)
	handler := RecoveryMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body["error"])
}

// TestLoggingMiddleware tests status capture through the wrapper
func TestLoggingMiddleware(t *testing.T) {
	log := observability.NewLogger(observability.ErrorLevel, io.Discard)
	m := observability.NewMetrics(nil)

	handler := Chain(
		RecoveryMiddleware(log),
		LoggingMiddleware(log, m),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
