package api

import (
	"net/http"

	"reelup/review-api/internal/workflow"
	"reelup/review-api/validators"

	"github.com/gin-gonic/gin"
)

type createBody struct {
	OriginalURL string `json:"original_url"`
	Caption     string `json:"caption"`
	Platform    string `json:"platform"`
}

// VideoCreate submits a new video into the review pipeline. The media
// itself was already uploaded through the external widget, we only get
// the locator
func (a *API) VideoCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data createBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.LocatorValidator(data.OriginalURL); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	v, err := a.Workflow.Create(caller(c), workflow.CreateInput{
		OriginalURL: data.OriginalURL,
		Caption:     data.Caption,
		Platform:    data.Platform,
	})
	if err != nil {
		a.abortErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, v)
}
