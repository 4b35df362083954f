//go:build unit

package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"court-reservation/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggingRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	router := gin.New()
	router.Use(middleware.LoggingMiddleware(logger))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/resources/:id/availability", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})
	return router
}

func TestLoggingMiddleware(t *testing.T) {
	t.Run("正常系: client request id is echoed", func(t *testing.T) {
		var buf bytes.Buffer
		router := newLoggingRouter(&buf)

		req := httptest.NewRequest(http.MethodGet, "/api/resources/abc/availability", http.NoBody)
		req.Header.Set("X-Request-ID", "req-123")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
		assert.Equal(t, "req-123", rec.Body.String())
		assert.Contains(t, buf.String(), "request_id=req-123")
		assert.Contains(t, buf.String(), "target_id=abc")
		assert.Contains(t, buf.String(), "route=/api/resources/:id/availability")
	})

	t.Run("正常系: oversized request id is replaced", func(t *testing.T) {
		var buf bytes.Buffer
		router := newLoggingRouter(&buf)

		req := httptest.NewRequest(http.MethodGet, "/api/resources/abc/availability", http.NoBody)
		req.Header.Set("X-Request-ID", strings.Repeat("x", 65))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		_, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
		require.NoError(t, err)
	})

	t.Run("正常系: health probes stay below info", func(t *testing.T) {
		var buf bytes.Buffer
		router := newLoggingRouter(&buf)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, buf.String())
	})
}
