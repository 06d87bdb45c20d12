package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/middleware"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg)

	db, err := database.Initialize(cfg)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	e := buildServer(cfg, db)

	go func() {
		address := cfg.Server.Host + ":" + cfg.Server.Port
		slog.Info("starting server", "address", address, "environment", cfg.Server.Environment)
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}
}

func buildServer(cfg *config.Config, db *gorm.DB) *echo.Echo {
	userRepo := repositories.NewUserRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)

	metrics := services.NewPrometheusMetrics()
	passwordService := services.NewPasswordServiceWithCost(cfg.Security.BCryptCost)
	tokenService := services.NewTokenService(&cfg.JWT)
	sessionStore := services.NewSessionStore()
	statsService := services.NewStatsService()
	categoryService := services.NewCategoryService()

	authService := services.NewAuthService(
		userRepo, passwordService, tokenService, sessionStore, metrics, slog.Default())

	transactionFactory := func(session services.Session) services.TransactionServiceInterface {
		return services.NewTransactionService(
			session, transactionRepo, statsService, categoryService, metrics, slog.Default())
	}

	authHandler := handlers.NewAuthHandler(authService, tokenService)
	transactionHandler := handlers.NewTransactionHandler(transactionFactory, categoryService)
	healthHandler := handlers.NewHealthCheckHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	rateLimiter := middleware.NewRateLimiter(
		float64(cfg.Security.RateLimitPerSecond), cfg.Security.RateLimitBurst)

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(rateLimiter.Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	authed := api.Group("", middleware.RequireAuth(tokenService, sessionStore))
	authed.GET("/transactions", transactionHandler.List)
	authed.POST("/transactions", transactionHandler.Create)
	authed.PUT("/transactions/:id", transactionHandler.Update)
	authed.DELETE("/transactions/:id", transactionHandler.Delete)
	authed.GET("/transactions/stats", transactionHandler.Stats)
	authed.GET("/categories", transactionHandler.Categories)

	return e
}

func setupLogging(cfg *config.Config) {
	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))
}
