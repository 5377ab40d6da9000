package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/jules-hotel/hotel-management/docs"
	"github.com/jules-hotel/hotel-management/internal/api/handler"
	"github.com/jules-hotel/hotel-management/internal/api/middleware"
	"github.com/jules-hotel/hotel-management/internal/core/domain"
	"github.com/jules-hotel/hotel-management/internal/core/ports"
)

// Dependencies groups everything the router wires into handlers.
type Dependencies struct {
	Routes        *middleware.RouteTable
	Tokens        middleware.TokenVerifier
	Auth          ports.AuthService
	PasswordReset ports.PasswordResetService
	Reviews       ports.ReviewService
	Users         ports.UserService
	LoginLimiter  *middleware.LoginRateLimiter
	Readiness     map[string]handler.Pinger
	Logger        zerolog.Logger

	// MetricsRegisterer receives the HTTP request metrics. Defaults to
	// prometheus.DefaultRegisterer.
	MetricsRegisterer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.MetricsRegisterer == nil {
		deps.MetricsRegisterer = prometheus.DefaultRegisterer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.IPExtractor = echo.ExtractIPDirect()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "hotel",
		Registerer: deps.MetricsRegisterer,
	}))
	e.Use(middleware.Gate(deps.Routes, deps.Tokens, deps.Logger))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.PasswordReset)
	reviewHandler := handler.NewReviewHandler(deps.Reviews, deps.Logger)
	adminHandler := handler.NewAdminHandler(deps.Users, deps.Reviews)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	login := []echo.MiddlewareFunc{}
	if deps.LoginLimiter != nil {
		login = append(login, deps.LoginLimiter.Middleware())
	}
	auth.POST("/login", authHandler.Login, login...)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/request-password-reset", authHandler.RequestPasswordReset)
	auth.POST("/reset-password", authHandler.ResetPassword)
	e.GET("/api/user-info", authHandler.UserInfo)

	// --- Reviews (public submission) ---
	e.POST("/api/reviews", reviewHandler.Submit)

	// --- Admin API ---
	adminAPI := e.Group("/api/admin", middleware.RBAC(domain.RoleAdmin))
	adminAPI.GET("/users", adminHandler.ListUsers)
	adminAPI.GET("/reviews", reviewHandler.List)

	// --- Admin console pages ---
	e.GET("/admin/login", adminHandler.LoginPage)
	e.GET("/admin/dashboard", adminHandler.Dashboard)
	e.GET("/admin/users", adminHandler.UsersPage)
	e.GET("/admin/reviews", adminHandler.ReviewsPage)

	// --- Health checks, metrics and docs (public) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Readiness, deps.Logger)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
