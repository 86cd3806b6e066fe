package api

import (
	"net/http"

	"reelup/review-api/validators"

	"github.com/gin-gonic/gin"
)

type editedBody struct {
	EditedURL string `json:"edited_url"`
}

// VideoUploadEdited attaches (or replaces) the edited cut's locator
// while the video sits on the editing desk
func (a *API) VideoUploadEdited(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	videoID := c.Param("id")

	var data editedBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.LocatorValidator(data.EditedURL); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	v, err := a.Workflow.UploadEdited(caller(c), videoID, data.EditedURL)
	if err != nil {
		a.abortErr(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}
