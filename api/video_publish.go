package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) VideoPublish(c *gin.Context) {
	videoID := c.Param("id")

	v, err := a.Workflow.Publish(caller(c), videoID)
	if err != nil {
		a.abortErr(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}
