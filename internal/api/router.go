package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/cfo-web/finance-gateway/docs"
	"github.com/cfo-web/finance-gateway/internal/api/handler"
	"github.com/cfo-web/finance-gateway/internal/api/middleware"
	"github.com/cfo-web/finance-gateway/internal/core/domain"
	"github.com/cfo-web/finance-gateway/internal/core/service"
	"github.com/cfo-web/finance-gateway/internal/infrastructure/config"
	mongodb "github.com/cfo-web/finance-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/cfo-web/finance-gateway/internal/infrastructure/db/redis"
	"github.com/cfo-web/finance-gateway/internal/infrastructure/upstream"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("cfoweb"))

	// --- Dependencies ---
	upstreamClient := upstream.NewClient(cfg.Upstream.BaseURL, &http.Client{Timeout: 10 * time.Second})
	authAPI := upstream.NewAuthClient(upstreamClient)
	subscriptionAPI := upstream.NewSubscriptionClient(upstreamClient)
	expenseAPI := upstream.NewExpenseClient()

	subscriptionService := service.NewSubscriptionService(subscriptionAPI, redisdb.NewSubscriptionCache(rdb, log), log)
	expenseService := service.NewExpenseService(expenseAPI, log)
	todoService := service.NewTodoService(mongodb.NewTodoRepository(db), log)

	resolver := middleware.NewSessionResolver(rdb, authAPI, cfg.Production(), log)
	redirector := middleware.NewRedirector()
	gate := middleware.NewGate(subscriptionService, log)

	// Route-group requirements. Pages carrying financial data demand an
	// active subscription; account-scoped APIs only demand a session.
	authOnly := domain.AccessRequirement{RequireAuthenticated: true}
	subscriber := domain.DefaultRequirement()
	admin := domain.AccessRequirement{RequireAuthenticated: true, RequireAdmin: true}

	e.Use(redirector.Middleware())
	e.Use(resolver.Middleware())

	// --- Pages ---
	pages := handler.NewPageHandler()
	e.GET("/login", pages.Login)
	e.GET("/register", pages.Register)
	e.GET("/dashboard", pages.Dashboard, gate.Require(subscriber))
	e.GET("/finance", pages.Finance, gate.Require(subscriber))
	e.GET("/finance/upload", pages.Upload, gate.Require(subscriber))
	e.GET("/calendar", pages.Calendar, gate.Require(subscriber))
	e.GET("/admin", pages.Admin, gate.Require(admin))

	// --- Auth ---
	authHandler := handler.NewAuthHandler()
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, gate.Require(authOnly))

	// --- Subscriptions ---
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	subs := e.Group("/api/subscriptions", gate.Require(authOnly))
	subs.GET("/me", subscriptionHandler.Get)
	subs.GET("/me/active", subscriptionHandler.Active)
	subs.POST("", subscriptionHandler.Create)
	subs.PATCH("/:id/status", subscriptionHandler.UpdateStatus)

	// --- Expenses ---
	expenseHandler := handler.NewExpenseHandler(expenseService)
	expenses := e.Group("/api/expenses", gate.Require(subscriber))
	expenses.GET("", expenseHandler.List)
	expenses.GET("/summary", expenseHandler.Summary)
	expenses.GET("/:id", expenseHandler.Get)
	expenses.POST("", expenseHandler.Create)
	expenses.PUT("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)

	// --- Todos ---
	todoHandler := handler.NewTodoHandler(todoService)
	todos := e.Group("/api/todos", gate.Require(authOnly))
	todos.GET("", todoHandler.List)
	todos.POST("", todoHandler.Add)
	todos.PATCH("/:id", todoHandler.SetChecked)
	todos.DELETE("/:id", todoHandler.Remove)
	todos.PUT("/reorder", todoHandler.Reorder)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?

	return e
}
