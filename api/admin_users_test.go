package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reelup/review-api/internal/workflow"
	"reelup/review-api/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testAPI(t *testing.T) *API {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(model.User{}, model.Video{}))

	return &API{DB: db, Workflow: workflow.New(db)}
}

func seedAccount(t *testing.T, a *API, id string, role model.Role) {
	t.Helper()
	require.NoError(t, a.DB.Create(&model.User{
		ID:       id,
		Email:    id + "@example.com",
		Role:     role,
		Verified: true,
	}).Error)
}

// testCtx builds a context the way the middleware chain would
func testCtx(t *testing.T, callerID string, role model.Role, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	c.Request = httptest.NewRequest(http.MethodPatch, "/", &buf)
	c.Request.Header.Set("Content-Type", "application/json")

	c.Set("requestID", "test")
	c.Set("userID", callerID)
	c.Set("userRole", string(role))

	return c, w
}

func TestAdminUserSetRole(t *testing.T) {
	a := testAPI(t)
	seedAccount(t, a, "admin1", model.RoleAdmin)
	seedAccount(t, a, "user1", model.RoleUser)

	c, w := testCtx(t, "admin1", model.RoleAdmin, gin.H{"role": "EDITOR"})
	c.Params = gin.Params{{Key: "id", Value: "user1"}}

	a.AdminUserSetRole(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var user model.User
	require.NoError(t, a.DB.Where("id = ?", "user1").First(&user).Error)
	assert.Equal(t, model.RoleEditor, user.Role)
}

func TestAdminUserSetRole_SelfChangeRejected(t *testing.T) {
	a := testAPI(t)
	seedAccount(t, a, "admin1", model.RoleAdmin)

	c, w := testCtx(t, "admin1", model.RoleAdmin, gin.H{"role": "USER"})
	c.Params = gin.Params{{Key: "id", Value: "admin1"}}

	a.AdminUserSetRole(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// And the record didn't move
	var user model.User
	require.NoError(t, a.DB.Where("id = ?", "admin1").First(&user).Error)
	assert.Equal(t, model.RoleAdmin, user.Role)
}

func TestAdminUserSetRole_NonAdminForbidden(t *testing.T) {
	a := testAPI(t)
	seedAccount(t, a, "editor1", model.RoleEditor)
	seedAccount(t, a, "user1", model.RoleUser)

	c, w := testCtx(t, "editor1", model.RoleEditor, gin.H{"role": "ADMIN"})
	c.Params = gin.Params{{Key: "id", Value: "user1"}}

	a.AdminUserSetRole(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminUserSetRole_InvalidRole(t *testing.T) {
	a := testAPI(t)
	seedAccount(t, a, "admin1", model.RoleAdmin)
	seedAccount(t, a, "user1", model.RoleUser)

	c, w := testCtx(t, "admin1", model.RoleAdmin, gin.H{"role": "SUPERUSER"})
	c.Params = gin.Params{{Key: "id", Value: "user1"}}

	a.AdminUserSetRole(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminUserSetSubscription(t *testing.T) {
	a := testAPI(t)
	seedAccount(t, a, "admin1", model.RoleAdmin)
	seedAccount(t, a, "user1", model.RoleUser)

	c, w := testCtx(t, "admin1", model.RoleAdmin, gin.H{"subscription": "ACTIVE"})
	c.Params = gin.Params{{Key: "id", Value: "user1"}}

	a.AdminUserSetSubscription(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var user model.User
	require.NoError(t, a.DB.Where("id = ?", "user1").First(&user).Error)
	assert.True(t, user.CanUpload())
}
