// Package handlers holds the response helpers shared by the HTTP handlers.
package handlers

import (
	"context"
	"errors"

	"recipe-finder/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondError writes err as an ErrorResponse. Details are included in
// debug mode only. Failures caused by the request deadline are reported as
// request timeouts.
func RespondError(c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(c.Request.Context().Err(), context.DeadlineExceeded) {
		err = common.ErrRequestTimeout.WithCause(err)
	}
	status, resp := common.ToResponse(err, gin.IsDebugging())
	if status >= 500 {
		common.LogError("Request failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestid.Get(c)),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

// BindJSON decodes the request body into v, reporting malformed input as an
// invalid request.
func BindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		common.LogWarn("Invalid request body",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestid.Get(c)),
		)
		RespondError(c, common.ErrInvalidRequest.WithCause(err))
		return false
	}
	return true
}
