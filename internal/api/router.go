package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/backoffice/user-admin-api/internal/api/handler"
	"github.com/backoffice/user-admin-api/internal/api/middleware"
	"github.com/backoffice/user-admin-api/internal/core/ports"
	"github.com/backoffice/user-admin-api/internal/core/service"
	"github.com/backoffice/user-admin-api/internal/infrastructure/config"
	mongodb "github.com/backoffice/user-admin-api/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, dispatcher ports.NotificationDispatcher, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("useradmin"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	gate := service.NewPermissionGate()
	passwords := service.NewRandomPasswordGenerator(cfg.PasswordLength)
	userService := service.NewUserService(userRepo, roleRepo, gate, passwords, dispatcher, log)
	authService := service.NewAuthService(userRepo, roleRepo, cfg.JWTSecret, cfg.TokenTTL)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	// --- Auth ---
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- User administration ---
	users := e.Group("/v1/users", middleware.Auth(cfg.JWTSecret))
	users.GET("", userHandler.List)
	users.GET("/new", userHandler.CreateForm)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.GET("/:id/edit", userHandler.EditForm)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	return e
}
