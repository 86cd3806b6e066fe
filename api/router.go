// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"reelup/review-api/db"
	"reelup/review-api/internal/service"
	"reelup/review-api/internal/workflow"
	"reelup/review-api/middleware"
	"reelup/review-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Argon    *security.ArgonHash
	Workflow *workflow.Engine
	OTP      *service.OTPStore
}

func NewRouter() (*API, error) {
	a := &API{}

	d, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = d
	a.Workflow = workflow.New(d)
	a.OTP = service.NewOTPStore(time.Duration(viper.GetInt("mail.otp_ttl_minutes")) * time.Minute)
	a.Argon = security.New()

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors_origins"),
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	jwt := middleware.NewJWTMiddleware(d)

	rateLimit := viper.GetInt("security.rate_limit")
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
	})

	main := router.Group("/api", rateLimiter, middleware.BodySizeLimiter(1<<20))
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates a JWT token
		main.HEAD("/validate", jwt, a.Validate)

		// GET /api/gallery		-> Lists published videos, no auth needed
		main.GET("/gallery", cacheFor(30), a.GalleryList)
	}

	users := main.Group("/users")
	{
		// GET /api/users		-> Returns the caller's own profile and contract status
		users.GET("", jwt, a.UserFetch)

		// POST /api/users 		-> Registers a new user and sends an OTP mail
		users.POST("", a.UserRegister)

		// POST /api/users/login 	-> Logs in a user and returns a JWT token
		users.POST("/login", a.UserLogin)

		// POST /api/users/verify	-> Verifies a new user with their OTP code
		users.POST("/verify", a.UserVerify)

		// POST /api/users/contract	-> Accepts the athlete contract
		users.POST("/contract", jwt, a.UserAcceptContract)
	}

	videos := main.Group("/videos", jwt)
	{
		// POST /api/videos		-> Submits a new video into the review pipeline
		videos.POST("", a.VideoCreate)

		// GET /api/videos		-> Returns the caller's own videos, paged
		videos.GET("", a.VideoList)

		// GET /api/videos/:id		-> Returns a single video
		videos.GET("/:id", a.VideoFetch)

		// DELETE /api/videos/:id	-> Withdraws an own PENDING video
		videos.DELETE("/:id", a.VideoDelete)

		// PUT /api/videos/:id/edited	-> Attaches the edited cut's locator
		videos.PUT("/:id/edited", a.VideoUploadEdited)

		// PUT /api/videos/:id/notes	-> Sets the editor notes
		videos.PUT("/:id/notes", a.VideoUpdateNotes)

		// POST /api/videos/:id/ready	-> Marks an EDITING video READY
		videos.POST("/:id/ready", a.VideoMarkReady)

		// POST /api/videos/:id/publish	-> Publishes a READY video
		videos.POST("/:id/publish", a.VideoPublish)

		// POST /api/videos/:id/reject	-> Rejects a non-terminal video
		videos.POST("/:id/reject", a.VideoReject)
	}

	editors := main.Group("/editor", jwt)
	{
		// GET /api/editor/queue	-> Lists PENDING videos, oldest first
		editors.GET("/queue", a.QueueList)

		// POST /api/editor/queue/:id/claim -> Claims a PENDING video
		editors.POST("/queue/:id/claim", a.QueueClaim)

		// GET /api/editor/assigned	-> Lists the caller's assigned videos
		editors.GET("/assigned", a.AssignedList)
	}

	admin := main.Group("/admin", jwt)
	{
		// GET /api/admin/users		-> Lists every account
		admin.GET("/users", a.AdminUserList)

		// GET /api/admin/users/:id	-> Returns any account's full profile
		admin.GET("/users/:id", a.AdminUserFetch)

		// PATCH /api/admin/users/:id/role -> Changes an account's role
		admin.PATCH("/users/:id/role", a.AdminUserSetRole)

		// PATCH /api/admin/users/:id/subscription -> Updates the billing status
		admin.PATCH("/users/:id/subscription", a.AdminUserSetSubscription)

		// GET /api/admin/videos	-> Lists every submission
		admin.GET("/videos", a.AdminVideoList)

		// PATCH /api/admin/videos/:id/status -> Forces any status
		admin.PATCH("/videos/:id/status", a.AdminVideoSetStatus)

		// POST /api/admin/videos/:id/assign -> Puts a video on an editor's desk
		admin.POST("/videos/:id/assign", a.AdminVideoAssign)
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
