package api

import (
	"net/http"

	"reelup/review-api/internal/access"
	"reelup/review-api/internal/apperr"
	"reelup/review-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *API) AdminUserList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	if err := access.Check(caller(c).Role, access.OpListAllUsers); err != nil {
		a.abortErr(c, err)
		return
	}

	var users []model.User

	err := a.DB.
		Order("created_at desc").
		Find(&users).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, users)
}

func (a *API) AdminUserFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	if err := access.Check(caller(c).Role, access.OpFetchAnyUser); err != nil {
		a.abortErr(c, err)
		return
	}

	var user model.User

	err := a.DB.
		Where("id = ?", c.Param("id")).
		First(&user).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, user)
}

type roleBody struct {
	Role string `json:"role"`
}

// AdminUserSetRole changes an account's role. Admins can't touch their
// own role, locking yourself out should take two people
func (a *API) AdminUserSetRole(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	who := caller(c)

	if err := access.Check(who.Role, access.OpSetUserRole); err != nil {
		a.abortErr(c, err)
		return
	}

	targetID := c.Param("id")

	var data roleBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	role, ok := model.ParseRole(data.Role)
	if !ok {
		a.abortErr(c, apperr.Newf(apperr.InvalidInput, "invalid role %q", data.Role))
		return
	}

	if targetID == who.ID {
		a.abortErr(c, apperr.New(apperr.InvalidInput, "admins can't change their own role"))
		return
	}

	res := a.DB.
		Model(model.User{}).
		Where("id = ?", targetID).
		Update("role", role)
	if res.Error != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update role", zap.Error(res.Error), zap.String("requestID", requestID))
		return
	}

	if res.RowsAffected == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "User not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":   targetID,
		"role": role,
	})
}

type subscriptionBody struct {
	Subscription string `json:"subscription"`
}

// AdminUserSetSubscription mirrors what the billing webhook would do,
// kept as a manual override
func (a *API) AdminUserSetSubscription(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	if err := access.Check(caller(c).Role, access.OpSetUserSubscription); err != nil {
		a.abortErr(c, err)
		return
	}

	targetID := c.Param("id")

	var data subscriptionBody
	if err := c.ShouldBind(&data); err != nil || data.Subscription == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Subscription value is required",
			"requestID": requestID,
		})
		return
	}

	res := a.DB.
		Model(model.User{}).
		Where("id = ?", targetID).
		Update("subscription", data.Subscription)
	if res.Error != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update subscription", zap.Error(res.Error), zap.String("requestID", requestID))
		return
	}

	if res.RowsAffected == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "User not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           targetID,
		"subscription": data.Subscription,
	})
}
