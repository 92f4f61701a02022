package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/secureshare/secureshare/config"
	"github.com/secureshare/secureshare/controllers"
	"github.com/secureshare/secureshare/middleware"
	"github.com/secureshare/secureshare/models"
	"github.com/secureshare/secureshare/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *mongo.Database) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(utils.Ginzap(utils.Logger, time.RFC3339, true))
	r.Use(utils.RecoveryWithZap(utils.Logger, false))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	users := models.NewUserModel(db)
	files := models.NewFileModel(db)

	authController := controllers.NewAuthController(users)
	fileController := controllers.NewFileController(files)

	authGroup := r.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/signup", authController.Signup)
	authGroup.GET("/verify-email", authController.VerifyEmail)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/make-ops-user", middleware.AuthRequired(users), middleware.OpsRequired(), authController.MakeOpsUser)

	filesGroup := r.Group("/files")
	filesGroup.Use(middleware.AuthRequired(users))
	filesGroup.POST("/upload", middleware.OpsRequired(), fileController.Upload)
	filesGroup.GET("/download/:file_id", fileController.GenerateDownloadLink)
	filesGroup.GET("/download", fileController.Download)
	filesGroup.GET("/list", fileController.List)
	filesGroup.DELETE("/:file_id", middleware.OpsRequired(), fileController.Delete)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
