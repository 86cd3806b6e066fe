package api

import (
	"net/http"

	"reelup/review-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type verifyBody struct {
	UserID string `json:"user_id"`
	Code   string `json:"code"`
}

// UserVerify consumes an OTP code and flips the account to verified
func (a *API) UserVerify(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data verifyBody
	if err := c.ShouldBind(&data); err != nil || data.UserID == "" || data.Code == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "User ID and code are required",
			"requestID": requestID,
		})
		return
	}

	if err := a.OTP.Verify(data.UserID, data.Code); err != nil {
		a.abortErr(c, err)
		return
	}

	res := a.DB.
		Model(model.User{}).
		Where("id = ?", data.UserID).
		Update("verified", true)
	if res.Error != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to mark user verified", zap.Error(res.Error), zap.String("requestID", requestID))
		return
	}

	if res.RowsAffected == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "User not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"verified": true,
	})
}
