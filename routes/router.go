package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/helthtracer/backend/config"
	"github.com/helthtracer/backend/controllers"
	"github.com/helthtracer/backend/middleware"
	"github.com/helthtracer/backend/services"
	"github.com/helthtracer/backend/stores"
	"github.com/helthtracer/backend/utils"
)

// SetupRouter wires routes, middlewares, stores, services and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
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
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}
	r.Use(middleware.RequestID())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
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

	habitStore := stores.NewGormHabitStore(db)
	habitLogStore := stores.NewGormHabitLogStore(db)
	sleepStore := stores.NewGormSleepStore(db)

	habitLogService := services.NewHabitLogService(habitStore, habitLogStore)
	statsService := services.NewStatsService(habitStore, habitLogStore, sleepStore)

	authController := controllers.NewAuthController(db)
	habitController := controllers.NewHabitController(db, habitStore)
	habitLogController := controllers.NewHabitLogController(habitLogService)
	sleepController := controllers.NewSleepController(sleepStore)
	postController := controllers.NewPostController(db)
	statsController := controllers.NewStatsController(db, statsService)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(), authController.UpdateProfile)

	// Public reads
	api.GET("/posts", postController.ListPosts)
	api.GET("/posts/:id", postController.GetPost)
	api.GET("/posts/:id/comments", postController.ListComments)
	api.GET("/posts/:id/stats", statsController.GetPostStats)
	api.GET("/users/:id", authController.GetUserPublic)
	api.GET("/users/:id/posts", postController.ListUserPosts)
	api.GET("/users/:id/stats", statsController.GetUserStats)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())
	protected.GET("/habits", habitController.ListMyHabits)
	protected.POST("/habits", habitController.CreateHabit)
	protected.PUT("/habits/:id", habitController.UpdateHabit)
	protected.DELETE("/habits/:id", habitController.DeleteHabit)
	protected.GET("/habit-logs", habitLogController.ListMonth)
	protected.POST("/habit-logs", habitLogController.Upsert)
	protected.DELETE("/habit-logs", habitLogController.Delete)
	protected.POST("/sleep-sessions", sleepController.StartSession)
	protected.PATCH("/sleep-sessions/:id/end", sleepController.EndSession)
	protected.GET("/sleep-sessions", sleepController.ListSessions)
	protected.POST("/posts", postController.CreatePost)
	protected.DELETE("/posts/:id", postController.DeletePost)
	protected.POST("/posts/:id/comments", postController.CreateComment)
	protected.DELETE("/comments/:commentId", postController.DeleteComment)
	protected.POST("/posts/:id/like", postController.ToggleLike)
	protected.GET("/posts/:id/like", postController.CheckLike)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}
