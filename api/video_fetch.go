package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) VideoFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	videoID := c.Param("id")
	if videoID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "ID is missing",
			"requestID": requestID,
		})
		return
	}

	v, err := a.Workflow.Get(caller(c), videoID)
	if err != nil {
		a.abortErr(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}
