package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// QueueList shows the claimable work list, first submitted first
func (a *API) QueueList(c *gin.Context) {
	videos, err := a.Workflow.ListQueue(caller(c))
	if err != nil {
		a.abortErr(c, err)
		return
	}

	c.JSON(http.StatusOK, videos)
}

// AssignedList shows what's on the calling editor's desk
func (a *API) AssignedList(c *gin.Context) {
	videos, err := a.Workflow.ListAssigned(caller(c))
	if err != nil {
		a.abortErr(c, err)
		return
	}

	c.JSON(http.StatusOK, videos)
}
