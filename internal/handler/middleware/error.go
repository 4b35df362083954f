package middleware

import (
	"log/slog"
	"net/http"

	"court-reservation/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error"

// ErrorHandler renders the last public error when a handler aborted without
// writing a body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			if resp, ok := c.Errors[i].Meta.(httperr.Response); ok && c.Errors[i].IsType(gin.ErrorTypePublic) {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, httperr.New(http.StatusInternalServerError, internalErrorMessage, nil))
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			slog.Error("recovered from panic",
				"error", rec,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", GetRequestID(c))

			c.AbortWithStatusJSON(http.StatusInternalServerError,
				httperr.New(http.StatusInternalServerError, internalErrorMessage, nil))
		}()
		c.Next()
	}
}

// NoRoute and NoMethod keep unknown endpoints on the same envelope as the API.
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, httperr.New(http.StatusNotFound, "Endpoint not found", nil))
}

func NoMethod(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, httperr.New(http.StatusMethodNotAllowed, "Method not allowed", nil))
}
