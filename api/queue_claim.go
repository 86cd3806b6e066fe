package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// QueueClaim takes a PENDING video off the queue for the calling
// editor. Losing a race against another editor reports a conflict,
// not a missing video
func (a *API) QueueClaim(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	videoID := c.Param("id")
	if videoID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "ID is missing",
			"requestID": requestID,
		})
		return
	}

	v, err := a.Workflow.Claim(caller(c), videoID)
	if err != nil {
		a.abortErr(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}
