package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/transactions_app/internal/middleware"
	"github.com/SscSPs/transactions_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStructuredLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(base))
	r.GET("/ping", func(c *gin.Context) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("inside handler")
		assert.Same(t, middleware.GetLoggerFromContext(c), middleware.GetLoggerFromCtx(c.Request.Context()))
		c.Status(http.StatusNoContent)
	})

	t.Run("keeps a valid incoming request id", func(t *testing.T) {
		buf.Reset()
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(middleware.RequestIDHeader, id)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, id, w.Header().Get(middleware.RequestIDHeader))
		assert.Contains(t, buf.String(), `"request_id":"`+id+`"`)
		assert.Contains(t, buf.String(), `"msg":"inside handler"`)
		assert.Contains(t, buf.String(), `"status":204`)
	})

	t.Run("replaces a malformed request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(middleware.RequestIDHeader, "not-a-uuid")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		got := w.Header().Get(middleware.RequestIDHeader)
		assert.NotEqual(t, "not-a-uuid", got)
		_, err := uuid.Parse(got)
		assert.NoError(t, err)
	})
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Same(t, slog.Default(), middleware.GetLoggerFromCtx(req.Context()))
}

func TestRateLimit(t *testing.T) {
	lim, err := middleware.NewRateLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.RateLimit(lim))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// another client has its own budget
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewRateLimiter_InvalidRate(t *testing.T) {
	_, err := middleware.NewRateLimiter("lots")
	assert.Error(t, err)
}

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New("test", reg)

	r := gin.New()
	r.Use(middleware.Metrics(m))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, url := range []string{"/items/1", "/items/2", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, url, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "4xx")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPRequestsInFlight))

	// a nil collector set is a no-op
	r = gin.New()
	r.Use(middleware.Metrics(nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS(t *testing.T) {
	preflight := func(r *gin.Engine, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	open := gin.New()
	open.Use(middleware.CORS([]string{"*"}))
	open.POST("/api", func(c *gin.Context) { c.Status(http.StatusOK) })
	w := preflight(open, "https://example.com")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	listed := gin.New()
	listed.Use(middleware.CORS([]string{"https://reports.example.com"}))
	listed.POST("/api", func(c *gin.Context) { c.Status(http.StatusOK) })
	w = preflight(listed, "https://reports.example.com")
	assert.Equal(t, "https://reports.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	w = preflight(listed, "https://evil.example.com")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
