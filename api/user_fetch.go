package api

import (
	"net/http"

	"reelup/review-api/internal/access"
	"reelup/review-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserFetch returns the caller's own profile plus their latest videos.
// This is what the dashboard loads first
func (a *API) UserFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	if err := access.Check(caller(c).Role, access.OpFetchOwnUser); err != nil {
		a.abortErr(c, err)
		return
	}

	var user model.User

	err := a.DB.
		Where("id = ?", userID).
		First(&user).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user profile", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var videos []model.Video

	err = a.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(10).
		Find(&videos).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"videos": videos,
	})
}
