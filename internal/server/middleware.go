package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
)

// requestID keeps the caller's X-Request-ID or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if s.logger == nil {
			return
		}

		status := c.Writer.Status()
		line := fmt.Sprintf("%s %s %d %s request_id=%s",
			c.Request.Method,
			c.Request.URL.Path,
			status,
			time.Since(start).Round(time.Millisecond),
			c.GetString(requestIDKey),
		)
		if status >= http.StatusInternalServerError {
			s.logger.LogWarning(line)
			return
		}
		s.logger.Log(line)
	}
}
