package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/RuvinSL/seo-auditor/pkg/interfaces"
	"github.com/RuvinSL/seo-auditor/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger records calls; loggers derived via With share the record
type TestLogger struct {
	fields []any
	rec    *logRecord
}

type logRecord struct {
	mu    sync.Mutex
	calls []LogCall
}

type LogCall struct {
	Level   string
	Message string
	Fields  []any
	Args    []any
}

func newTestLogger() *TestLogger {
	return &TestLogger{rec: &logRecord{}}
}

func (t *TestLogger) log(level, msg string, args []any) {
	t.rec.mu.Lock()
	defer t.rec.mu.Unlock()
	t.rec.calls = append(t.rec.calls, LogCall{Level: level, Message: msg, Fields: t.fields, Args: args})
}

func (t *TestLogger) Debug(msg string, args ...any) { t.log("debug", msg, args) }
func (t *TestLogger) Info(msg string, args ...any)  { t.log("info", msg, args) }
func (t *TestLogger) Warn(msg string, args ...any)  { t.log("warn", msg, args) }
func (t *TestLogger) Error(msg string, args ...any) { t.log("error", msg, args) }

func (t *TestLogger) With(args ...any) interfaces.Logger {
	fields := append(append([]any{}, t.fields...), args...)
	return &TestLogger{fields: fields, rec: t.rec}
}

func (t *TestLogger) Calls(level string) []LogCall {
	t.rec.mu.Lock()
	defer t.rec.mu.Unlock()
	var out []LogCall
	for _, c := range t.rec.calls {
		if c.Level == level {
			out = append(out, c)
		}
	}
	return out
}

type RequestMetricsCall struct {
	Method     string
	Path       string
	StatusCode int
	Duration   float64
}

// MockMetricsCollector implements the MetricsCollector interface for testing
type MockMetricsCollector struct {
	mu       sync.Mutex
	calls    []RequestMetricsCall
	inFlight int
	peak     int
}

func (m *MockMetricsCollector) RecordRequest(method, path string, statusCode int, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, RequestMetricsCall{Method: method, Path: path, StatusCode: statusCode, Duration: duration})
}

func (m *MockMetricsCollector) RecordAudit(status string, duration float64)     {}
func (m *MockMetricsCollector) RecordPageFetch(success bool, duration float64)  {}
func (m *MockMetricsCollector) RecordPageSpeed(status string, duration float64) {}

func (m *MockMetricsCollector) IncRequestsInFlight() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight++
	if m.inFlight > m.peak {
		m.peak = m.inFlight
	}
}

func (m *MockMetricsCollector) DecRequestsInFlight() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight--
}

func (m *MockMetricsCollector) RequestCalls() []RequestMetricsCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RequestMetricsCall{}, m.calls...)
}

// TestHandler can be configured for different behaviors
type TestHandler struct {
	StatusCode  int
	Body        string
	ShouldPanic bool
	PanicValue  interface{}
}

func (h *TestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.ShouldPanic {
		panic(h.PanicValue)
	}
	if h.StatusCode > 0 {
		w.WriteHeader(h.StatusCode)
	}
	if h.Body != "" {
		w.Write([]byte(h.Body))
	}
}

func TestRequestID_WithExistingID(t *testing.T) {
	handler := RequestID(&TestHandler{Body: "OK"})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(RequestIDHeader, "existing-request-123")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, "existing-request-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "OK", w.Body.String())
}

func TestRequestID_GenerateNew(t *testing.T) {
	handler := RequestID(&TestHandler{Body: "OK"})

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest("GET", "/test", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest("GET", "/test", nil))

	id := first.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.NotEqual(t, id, second.Header().Get(RequestIDHeader))
}

func TestRequestID_ContextPropagation(t *testing.T) {
	var captured string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = r.Context().Value(logger.RequestIDKey).(string)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(RequestIDHeader, "test-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "test-123", captured)
}

func TestLogging_RequestAndResponse(t *testing.T) {
	log := newTestLogger()
	handler := Logging(log)(&TestHandler{StatusCode: http.StatusCreated, Body: "Created"})

	req := httptest.NewRequest("POST", "/api/test", nil)
	req = req.WithContext(context.WithValue(req.Context(), logger.RequestIDKey, "log-test-123"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	started := log.Calls("debug")
	require.Len(t, started, 1)
	assert.Equal(t, "Request started", started[0].Message)

	completed := log.Calls("info")
	require.Len(t, completed, 1)
	assert.Equal(t, "Request completed", completed[0].Message)
	assert.Contains(t, completed[0].Args, "/api/test")
	assert.Contains(t, completed[0].Args, http.StatusCreated)
	require.Len(t, completed[0].Fields, 1)
	attr, ok := completed[0].Fields[0].(slog.Attr)
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "log-test-123", attr.Value.String())
}

func TestLogging_WithoutRequestID(t *testing.T) {
	log := newTestLogger()
	handler := Logging(log)(&TestHandler{Body: "OK"})

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/test", nil))

	completed := log.Calls("info")
	require.Len(t, completed, 1)
	assert.Empty(t, completed[0].Fields)
}

func TestMetrics_RecordRequest(t *testing.T) {
	collector := &MockMetricsCollector{}
	handler := Metrics(collector)(&TestHandler{StatusCode: http.StatusNotFound, Body: "Not Found"})

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/missing", nil))

	calls := collector.RequestCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "GET", calls[0].Method)
	assert.Equal(t, "/api/missing", calls[0].Path)
	assert.Equal(t, http.StatusNotFound, calls[0].StatusCode)
	assert.GreaterOrEqual(t, calls[0].Duration, 0.0)
	assert.Equal(t, 1, collector.peak)
	assert.Equal(t, 0, collector.inFlight)
}

func TestMetrics_DefaultStatusCode(t *testing.T) {
	collector := &MockMetricsCollector{}
	handler := Metrics(collector)(&TestHandler{Body: "OK"})

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/test", nil))

	calls := collector.RequestCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.StatusOK, calls[0].StatusCode)
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	collector := &MockMetricsCollector{}
	router := mux.NewRouter()
	router.Use(Metrics(collector))
	router.Handle("/api/v1/items/{id}", &TestHandler{Body: "OK"})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/items/42", nil))

	calls := collector.RequestCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/api/v1/items/{id}", calls[0].Path)
}

func TestRecovery_NoPanic(t *testing.T) {
	log := newTestLogger()
	w := httptest.NewRecorder()

	Recovery(log)(&TestHandler{Body: "OK"}).ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	assert.Equal(t, "OK", w.Body.String())
	assert.Empty(t, log.Calls("error"))
}

func TestRecovery_WithPanic(t *testing.T) {
	log := newTestLogger()
	handler := Recovery(log)(&TestHandler{ShouldPanic: true, PanicValue: "something went wrong"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal Server Error")

	errors := log.Calls("error")
	require.Len(t, errors, 1)
	assert.Equal(t, "Panic recovered", errors[0].Message)
	assert.Contains(t, errors[0].Args, "something went wrong")
}

func TestCORS_RegularRequest(t *testing.T) {
	w := httptest.NewRecorder()
	CORS()(&TestHandler{Body: "OK"}).ServeHTTP(w, httptest.NewRequest("GET", "/api/test", nil))

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization, X-Request-ID", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
	assert.Equal(t, "OK", w.Body.String())
}

func TestCORS_PreflightRequest(t *testing.T) {
	w := httptest.NewRecorder()
	CORS()(&TestHandler{Body: "Should not be called"}).ServeHTTP(w, httptest.NewRequest("OPTIONS", "/api/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestResponseWriter_WriteHeader(t *testing.T) {
	rw := wrap(httptest.NewRecorder())

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusBadRequest)

	assert.Equal(t, http.StatusCreated, rw.statusCode)
	assert.True(t, rw.written)
}

func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := wrap(rec)

	var _ http.Flusher = rw
	rw.Flush()

	assert.True(t, rec.Flushed)
	assert.True(t, rw.written)
	assert.Equal(t, http.StatusOK, rec.Code)
}
