package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/guidanceoffice/discipline-backend/internal/config"
	"github.com/guidanceoffice/discipline-backend/internal/handler"
	"github.com/guidanceoffice/discipline-backend/internal/middleware"
	"github.com/guidanceoffice/discipline-backend/internal/response"
	"github.com/guidanceoffice/discipline-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Student *handler.StudentHandler
	Offense *handler.OffenseHandler
	Report  *handler.ReportHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict CORS to that list;
	// otherwise allow all so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Public auth routes.
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)

		auth.POST("/logout", middleware.RequireAuth(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// Everything else requires a signed-in staff account.
	api := router.Group("/api/v1")
	api.Use(middleware.RequireAuth(authService))
	{
		// Roster
		api.GET("/students", handlers.Student.List)
		api.POST("/students", handlers.Student.Create)
		api.GET("/students/:id", handlers.Student.Get)
		api.PUT("/students/:id", handlers.Student.Update)
		api.DELETE("/students/:id", handlers.Student.Delete)

		// Offenses
		api.GET("/students/:id/offenses", handlers.Offense.ListForStudent)
		api.POST("/students/:id/offenses", handlers.Offense.Create)
		api.DELETE("/offenses/:id", handlers.Offense.Delete)

		// Calendar, search, charts
		api.GET("/students/:id/calendar", handlers.Report.Calendar)
		api.GET("/offenses", handlers.Report.Search)
		api.GET("/charts/offenses-by-type-grade", handlers.Report.OffensesByTypeAndGrade)
		api.GET("/charts/offenses-by-gender-grade", handlers.Report.OffensesByGenderAndGrade)
	}

	return router
}
