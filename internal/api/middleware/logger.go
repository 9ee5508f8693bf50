package middleware

import (
	"fmt"
	"time"

	"recipe-finder/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger writes one access log entry per request, levelled by status.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", requestid.Get(c)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		switch {
		case status >= 500:
			common.LogError("Server error", append(fields, zap.String("error_type", "server_error"))...)
		case status >= 400:
			common.LogWarn("Client error", append(fields, zap.String("error_type", "client_error"))...)
		default:
			common.LogInfo("Request completed", fields...)
		}
	}
}

// Recovery turns a panic into a 500 response.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				common.LogError("Panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)
				abortWithError(c, common.ErrInternalError.WithCause(fmt.Errorf("panic: %v", err)))
			}
		}()

		c.Next()
	}
}

func abortWithError(c *gin.Context, err error) {
	status, resp := common.ToResponse(err, gin.IsDebugging())
	c.AbortWithStatusJSON(status, resp)
}
