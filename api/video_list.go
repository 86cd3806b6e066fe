package api

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"reelup/review-api/internal/access"
	"reelup/review-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var validSortOpts = []string{"newest", "oldest", "updated"}

// VideoList returns the caller's own submissions in bulk, paged
func (a *API) VideoList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	if err := access.Check(caller(c).Role, access.OpListOwnVideos); err != nil {
		a.abortErr(c, err)
		return
	}

	pageStr := c.DefaultQuery("page", "0")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Page must be a non-negative integer",
			"requestID": requestID,
		})
		return
	}

	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 100 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Limit must be between 1 and 100",
			"requestID": requestID,
		})
		return
	}

	sort := strings.ToLower(c.DefaultQuery("sort", "newest"))
	if !slices.Contains(validSortOpts, sort) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid sorting option",
			"requestID": requestID,
		})
		return
	}

	order := ""

	switch sort {
	case "newest":
		order = "created_at desc"
	case "oldest":
		order = "created_at asc"
	case "updated":
		order = "updated_at desc"
	}

	query := a.DB.Where("user_id = ?", userID)

	if s := c.Query("status"); s != "" {
		status, ok := model.ParseStatus(s)
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid status filter",
				"requestID": requestID,
			})
			return
		}

		query = query.Where("status = ?", status)
	}

	offset := page * limit
	var entries []model.Video

	err = query.
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&entries).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to lookup user videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, entries)
}
