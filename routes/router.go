package routes

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"printlog/config"
	"printlog/controllers"
	"printlog/middleware"
	"printlog/repository"
	"printlog/utils"
)

// SetupRouter wires routes, middlewares and controllers.
func SetupRouter(db *gorm.DB, cfg config.AppConfig, logger *zap.Logger) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(utils.GinLogger(logger))
	r.Use(utils.GinRecovery(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Static("/static", cfg.StaticDir)
	r.Static("/uploads", cfg.UploadDir)

	r.GET("/", func(ctx *gin.Context) {
		ctx.File(filepath.Join(cfg.StaticDir, "index.html"))
	})
	r.GET("/admin.html", func(ctx *gin.Context) {
		ctx.File(filepath.Join(cfg.StaticDir, "admin.html"))
	})
	r.GET("/login.html", func(ctx *gin.Context) {
		ctx.File(filepath.Join(cfg.StaticDir, "login.html"))
	})

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	filamentRepo := repository.NewFilamentRepository(db)
	printRepo := repository.NewPrintRepository(db)

	authController := controllers.NewAuthController(cfg)
	filamentController := controllers.NewFilamentController(filamentRepo)
	printController := controllers.NewPrintController(printRepo, cfg.UploadDir, logger)
	statsController := controllers.NewStatsController(printRepo)

	auth := middleware.AuthRequired(cfg.JWTSecret)

	api := r.Group("/api")

	api.POST("/login", middleware.RateLimit(cfg.LoginRatePerMinute), authController.Login)
	api.GET("/verify", auth, authController.Verify)

	api.GET("/filaments", filamentController.List)
	api.POST("/filaments", auth, filamentController.Create)
	api.PUT("/filaments/:id", auth, filamentController.Update)
	api.DELETE("/filaments/:id", auth, filamentController.Delete)

	api.GET("/prints", printController.List)
	api.GET("/prints/:id", printController.Get)
	api.POST("/prints", printController.Create)
	api.PUT("/prints/:id", auth, printController.Update)
	api.PATCH("/prints/:id/status", auth, printController.UpdateStatus)
	api.DELETE("/prints/:id", auth, printController.Delete)

	api.GET("/summary", auth, printController.Summary)
	api.GET("/uploaders", printController.Uploaders)
	api.GET("/statistics", statsController.GetStatistics)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}
