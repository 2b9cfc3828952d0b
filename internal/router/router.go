package router

import (
	"net/http"
	"time"

	"github.com/classroom-hub/classroom-backend/internal/config"
	"github.com/classroom-hub/classroom-backend/internal/handler"
	"github.com/classroom-hub/classroom-backend/internal/middleware"
	"github.com/classroom-hub/classroom-backend/internal/model"
	"github.com/classroom-hub/classroom-backend/internal/response"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Department *handler.DepartmentHandler
	Subject    *handler.SubjectHandler
	Class      *handler.ClassHandler
	User       *handler.UserHandler
	Enrollment *handler.EnrollmentHandler
	System     *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// authLimiter throttles the sign-up and sign-in routes.
func SetupRouter(
	auth middleware.Authenticator,
	handlers *Handlers,
	authLimiter *middleware.RateLimiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// Credentialed requests need an explicit origin list; without one every
	// origin is allowed and cookies are not.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID, "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.AccessLog(log))
	router.Use(middleware.Brotli())

	router.NoRoute(func(c *gin.Context) {
		response.FailMessage(c, http.StatusNotFound, "Route not found.")
	})

	router.GET("/", handlers.System.Welcome)
	router.GET("/health", handlers.System.Health)

	api := router.Group("/api")
	api.Use(middleware.NoStore(), middleware.LoadSession(auth, log))

	staff := middleware.RequireRole(model.RoleTeacher, model.RoleAdmin)

	// ─── Auth ──────────────────────────────────────────────────────────
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/sign-up/email", authLimiter.Middleware(), handlers.Auth.SignUp)
		authGroup.POST("/sign-in/email", authLimiter.Middleware(), handlers.Auth.SignIn)
		authGroup.POST("/sign-out", handlers.Auth.SignOut)
		authGroup.GET("/get-session", handlers.Auth.GetSession)
	}

	// ─── Departments ───────────────────────────────────────────────────
	departments := api.Group("/departments")
	{
		departments.GET("", handlers.Department.List)
		departments.GET("/:id", handlers.Department.GetByID)
		departments.POST("", staff, handlers.Department.Create)
		departments.DELETE("/:id", staff, handlers.Department.Delete)
	}

	// ─── Subjects ──────────────────────────────────────────────────────
	subjects := api.Group("/subjects")
	{
		subjects.GET("", handlers.Subject.List)
		subjects.GET("/:id", handlers.Subject.GetByID)
		subjects.POST("", staff, handlers.Subject.Create)
		subjects.DELETE("/:id", staff, handlers.Subject.Delete)
	}

	// ─── Classes ───────────────────────────────────────────────────────
	classes := api.Group("/classes")
	{
		classes.GET("", handlers.Class.List)
		classes.GET("/:id", handlers.Class.GetByID)
		classes.POST("", staff, handlers.Class.Create)
		classes.DELETE("/:id", staff, handlers.Class.Delete)
	}

	// ─── Users ─────────────────────────────────────────────────────────
	users := api.Group("/users")
	{
		users.GET("", handlers.User.List)
		users.GET("/:id", handlers.User.GetByID)
	}

	// ─── Enrollments (signed in) ───────────────────────────────────────
	enrollments := api.Group("/enrollments")
	enrollments.Use(middleware.RequireSession())
	{
		enrollments.GET("", handlers.Enrollment.List)
		enrollments.POST("", handlers.Enrollment.Create)
	}

	return router
}
