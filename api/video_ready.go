package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// VideoMarkReady hands an EDITING video back for publication review
func (a *API) VideoMarkReady(c *gin.Context) {
	videoID := c.Param("id")

	v, err := a.Workflow.MarkReady(caller(c), videoID)
	if err != nil {
		a.abortErr(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}
