package main

import (
	"fmt"

	"reelup/review-api/api"
	"reelup/review-api/config"
	"reelup/review-api/model"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	a, err := api.NewRouter()
	if err != nil {
		panic(err)
	}

	// Bootstrap escape hatch, role changes otherwise require an
	// existing admin
	if email := config.SeedAdminEmail(); email != "" {
		res := a.DB.
			Model(model.User{}).
			Where("email = ?", email).
			Update("role", model.RoleAdmin)
		if res.Error != nil {
			panic(res.Error)
		}

		if res.RowsAffected == 0 {
			zap.L().Warn("No account with the seed admin email exists yet", zap.String("email", email))
		} else {
			zap.L().Info("Seeded admin account", zap.String("email", email))
		}
	}

	zap.L().Info("Server starting", zap.Int("port", viper.GetInt("host.port")))

	err = a.Router.Run(fmt.Sprintf(":%d", viper.GetInt("host.port")))
	if err != nil {
		panic(err)
	}
}
