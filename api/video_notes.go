package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type notesBody struct {
	Notes string `json:"notes"`
}

func (a *API) VideoUpdateNotes(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	videoID := c.Param("id")

	var data notesBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	v, err := a.Workflow.UpdateNotes(caller(c), videoID, data.Notes)
	if err != nil {
		a.abortErr(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}
