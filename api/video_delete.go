package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// VideoDelete withdraws a PENDING submission before any editor picked
// it up
func (a *API) VideoDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	videoID := c.Param("id")
	if videoID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "ID is missing",
			"requestID": requestID,
		})
		return
	}

	if err := a.Workflow.Delete(caller(c), videoID); err != nil {
		a.abortErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
