package api

import (
	"net/http"

	"reelup/review-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GalleryList is the public feed of published highlights. Responses
// are cached, a short delay after publishing is fine here
func (a *API) GalleryList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var videos []model.Video

	err := a.DB.
		Where("status = ?", model.StatusPublished).
		Order("updated_at desc").
		Limit(50).
		Find(&videos).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list published videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, videos)
}
