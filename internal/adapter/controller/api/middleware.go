package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/YoshitsuguKoike/potionlab/internal/app"
)

// RequestIDHeader carries the request correlation ID
const RequestIDHeader = "X-Request-ID"

// requestID propagates the caller's request ID or assigns a new one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// accessLog writes one debug line per request, and a warning for 5xx
func accessLog(logger app.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		id, _ := c.Get("request_id")
		if status >= 500 {
			logger.Warn("http %s %s -> %d (%s) request_id=%v", c.Request.Method, c.Request.URL.Path, status, time.Since(start), id)
			return
		}
		logger.Debug("http %s %s -> %d (%s) request_id=%v", c.Request.Method, c.Request.URL.Path, status, time.Since(start), id)
	}
}
