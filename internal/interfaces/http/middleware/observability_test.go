package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestHTTPMetrics(t *testing.T) {
	_, err := HTTPMetrics(nil)
	assert.Error(t, err)

	mw, err := HTTPMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	r := gin.New()
	r.Use(mw)
	r.GET("/leases/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/leases/abc", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTracingDisabledPassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(TracingWithConfig(TracingConfig{Enabled: false}), TracingAttributeInjector(), SpanErrorMarker())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestTracingEnabled(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Tracing(), TracingAttributeInjector(), SpanErrorMarker())
	r.GET("/leases/:id", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/leases/7d0c0c43-5b9b-4a64-9f0e-8a3b8f0d2b11", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestProfiling(t *testing.T) {
	r := gin.New()
	r.Use(Profiling("/health"))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/leases", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/health", "/api/v1/leases", "/nowhere"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		if path == "/nowhere" {
			assert.Equal(t, http.StatusNotFound, w.Code)
		} else {
			assert.Equal(t, http.StatusOK, w.Code)
		}
	}
}
