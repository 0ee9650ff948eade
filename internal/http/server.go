package http

import (
	"context"
	stdhttp "net/http"

	"order-service/internal/auth"
	"order-service/internal/config"
	"order-service/internal/http/handler"
	"order-service/internal/http/middleware"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	jsonKeyStatus    = "status"
	statusOK         = "ok"
	requestBodyLimit = "1M"
)

type ServerDependencies struct {
	Config          *config.Config
	UserRepo        handler.UserRepository
	OrderRepo       handler.OrderRepository
	ResetStore      handler.ResetTokenStore
	Notifier        handler.Notifier
	EventQuerier    handler.EventQuerier
	JWTService      *auth.JWTService
	AuthMiddleware  *auth.Middleware
	DomainWhitelist *auth.DomainWhitelist
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Set custom HTTP error handler
	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID middleware (first, so all logs have request ID)
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))
	e.Use(deps.DomainWhitelist.Middleware())

	// Global rate limiting
	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	// Strict rate limiting for auth endpoints
	strictRateLimiter := middleware.NewStrictRateLimiter()

	authHandler := handler.NewAuthHandler(deps.UserRepo, deps.JWTService, deps.ResetStore, deps.Notifier)
	userHandler := handler.NewUserHandler(deps.UserRepo)
	orderHandler := handler.NewOrderHandler(deps.OrderRepo, deps.UserRepo, deps.Notifier)
	eventsHandler := handler.NewEventsHandler(deps.EventQuerier)

	// Auth endpoints with strict rate limiting
	e.POST("/auth/signup", authHandler.Signup, strictRateLimiter.Middleware())
	e.POST("/auth/login", authHandler.Login, strictRateLimiter.Middleware())
	e.POST("/auth/password-reset/request", authHandler.RequestPasswordReset, strictRateLimiter.Middleware())
	e.POST("/auth/password-reset/confirm", authHandler.ConfirmPasswordReset, strictRateLimiter.Middleware())
	e.GET("/health", healthCheck)

	// User-facing API, JWT authenticated
	api := e.Group("/api")
	api.Use(deps.AuthMiddleware.RequireJWT())

	api.GET("/me", userHandler.Me)
	api.PUT("/me/password", userHandler.ChangePassword)
	api.DELETE("/me", userHandler.DeleteAccount)

	api.POST("/orders", orderHandler.Create)
	api.GET("/orders", orderHandler.List)
	api.GET("/orders/:id", orderHandler.Get)
	api.POST("/orders/:id/cancel", orderHandler.Cancel)

	// Operator surface, gated by static bearer tokens
	internal := e.Group("/internal")
	internal.Use(deps.AuthMiddleware.RequireBearer())

	internal.GET("/orders", orderHandler.ListAll)
	internal.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	internal.GET("/security-events", eventsHandler.List)

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
