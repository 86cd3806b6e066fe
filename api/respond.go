package api

import (
	"reelup/review-api/internal/apperr"
	"reelup/review-api/internal/workflow"
	"reelup/review-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// abortErr translates a taxonomy error into the JSON error shape all
// endpoints share. Internal errors get logged and masked
func (a *API) abortErr(c *gin.Context, err error) {
	requestID := c.MustGet("requestID").(string)

	kind := apperr.KindOf(err)
	msg := err.Error()

	if kind == apperr.Internal {
		msg = "Internal server error"
		zap.L().Error("Unexpected error", zap.Error(err), zap.String("requestID", requestID))
	}

	c.AbortWithStatusJSON(kind.HTTPStatus(), gin.H{
		"error":     msg,
		"kind":      kind.String(),
		"requestID": requestID,
	})
}

// caller assembles the workflow identity the jwt middleware injected
func caller(c *gin.Context) workflow.Caller {
	return workflow.Caller{
		ID:   c.MustGet("userID").(string),
		Role: model.Role(c.MustGet("userRole").(string)),
	}
}
