package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) VideoReject(c *gin.Context) {
	videoID := c.Param("id")

	v, err := a.Workflow.Reject(caller(c), videoID)
	if err != nil {
		a.abortErr(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}
