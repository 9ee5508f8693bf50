package middleware

import (
	"context"
	"errors"
	"time"

	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Timeout bounds the request context by d. A handler that returns without
// writing once the deadline has passed gets a request timeout response.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			common.LogWarn("Request timed out",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Duration("timeout", d),
			)
			abortWithError(c, common.ErrRequestTimeout.WithCause(ctx.Err()))
		}
	}
}
