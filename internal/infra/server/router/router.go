// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-ledger/api/config"
	"github.com/finance-ledger/api/internal/integration/entrypoint/controller"
	"github.com/finance-ledger/api/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	reportController      *controller.ReportController
	reportRateLimiter     *middleware.RateLimiter
	requestObserver       middleware.RequestObserver
	metricsHandler        http.Handler
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	reportController *controller.ReportController,
	reportRateLimiter *middleware.RateLimiter,
	requestObserver middleware.RequestObserver,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		healthController:      healthController,
		categoryController:    categoryController,
		transactionController: transactionController,
		reportController:      reportController,
		reportRateLimiter:     reportRateLimiter,
		requestObserver:       requestObserver,
		metricsHandler:        metricsHandler,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	switch environment {
	case config.EnvProduction:
		gin.SetMode(gin.ReleaseMode)
	case config.EnvTest:
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery(), middleware.RequestLogger())
	if r.requestObserver != nil {
		r.engine.Use(middleware.Metrics(r.requestObserver))
	}

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and service info endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/", r.healthController.Root)
	r.engine.GET("/docs", r.healthController.Docs(r.engine))
	r.engine.GET("/health", r.healthController.Check)
	if r.metricsHandler != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metricsHandler))
	}
}

// setupAPIRoutes configures the ledger routes.
func (r *Router) setupAPIRoutes() {
	categories := r.engine.Group("/categories")
	{
		categories.GET("", r.categoryController.List)
		categories.POST("", r.categoryController.Create)
		categories.GET("/:id", r.categoryController.Get)
		categories.PUT("/:id", r.categoryController.Update)
		categories.DELETE("/:id", r.categoryController.Delete)
	}

	transactions := r.engine.Group("/transactions")
	{
		transactions.GET("", r.transactionController.List)
		transactions.POST("", r.transactionController.Create)
		transactions.GET("/:id", r.transactionController.Get)
		transactions.PUT("/:id", r.transactionController.Update)
		transactions.DELETE("/:id", r.transactionController.Delete)

		reports := transactions.Group("/reports")
		{
			reports.GET("/aggregate", r.reportController.Aggregate)
			reports.GET("/download", r.reportRateLimiter.Middleware(), r.reportController.Download)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
