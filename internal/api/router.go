package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cvds/identity-service/internal/api/handler"
	"github.com/cvds/identity-service/internal/api/middleware"
	"github.com/cvds/identity-service/internal/core/ports"
)

// Dependencies carries everything the router needs wired in from bootstrap.
type Dependencies struct {
	AuthService ports.AuthService
	UserService ports.UserService
	Postgres    *pgxpool.Pool
	Redis       *redis.Client // nil unless the redis session backend is active
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	sessionMiddleware := middleware.Session(deps.AuthService)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/session", authHandler.GetSession, sessionMiddleware)
	e.PATCH("/auth/session", authHandler.RefreshSession, sessionMiddleware)
	e.DELETE("/auth/session", authHandler.Logout, sessionMiddleware)

	// --- User routes (authorization happens in the service layer) ---
	usersHandler := handler.NewUsersHandler(deps.UserService)
	e.GET("/users/:id", usersHandler.Get, sessionMiddleware)
	e.GET("/users/username/:username", usersHandler.GetByUsername, sessionMiddleware)
	e.POST("/users", usersHandler.Create, sessionMiddleware)
	e.PATCH("/users", usersHandler.Update, sessionMiddleware)
	e.DELETE("/users/:id", usersHandler.Delete, sessionMiddleware)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Postgres, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
