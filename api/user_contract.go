package api

import (
	"net/http"
	"time"

	"reelup/review-api/internal/access"
	"reelup/review-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserAcceptContract records the athlete contract acceptance. Non-admin
// accounts can't use the dashboard before accepting it
func (a *API) UserAcceptContract(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	if err := access.Check(caller(c).Role, access.OpAcceptContract); err != nil {
		a.abortErr(c, err)
		return
	}

	now := time.Now()

	err := a.DB.
		Model(model.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"contract_accepted":    true,
			"contract_accepted_at": &now,
		}).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to record contract acceptance", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contract_accepted":    true,
		"contract_accepted_at": now,
	})
}
