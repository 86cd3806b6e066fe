package api

import (
	"net/http"

	"reelup/review-api/internal/apperr"
	"reelup/review-api/model"

	"github.com/gin-gonic/gin"
)

func (a *API) AdminVideoList(c *gin.Context) {
	videos, err := a.Workflow.ListAll(caller(c))
	if err != nil {
		a.abortErr(c, err)
		return
	}

	c.JSON(http.StatusOK, videos)
}

type statusBody struct {
	Status string `json:"status"`
}

// AdminVideoSetStatus is the operational override, it skips the
// transition table entirely
func (a *API) AdminVideoSetStatus(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data statusBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	status, ok := model.ParseStatus(data.Status)
	if !ok {
		a.abortErr(c, apperr.Newf(apperr.InvalidInput, "invalid status %q", data.Status))
		return
	}

	v, err := a.Workflow.SetStatus(caller(c), c.Param("id"), status)
	if err != nil {
		a.abortErr(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}

type assignBody struct {
	EditorID string `json:"editor_id"`
}

func (a *API) AdminVideoAssign(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data assignBody
	if err := c.ShouldBind(&data); err != nil || data.EditorID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Editor ID is required",
			"requestID": requestID,
		})
		return
	}

	v, err := a.Workflow.AssignEditor(caller(c), c.Param("id"), data.EditorID)
	if err != nil {
		a.abortErr(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}
