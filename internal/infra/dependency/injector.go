// Package dependency provides dependency injection for the application.
package dependency

import (
	"net/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-ledger/api/config"
	"github.com/finance-ledger/api/internal/application/usecase/category"
	"github.com/finance-ledger/api/internal/application/usecase/report"
	"github.com/finance-ledger/api/internal/application/usecase/transaction"
	infradb "github.com/finance-ledger/api/internal/infra/db"
	"github.com/finance-ledger/api/internal/infra/metrics"
	"github.com/finance-ledger/api/internal/infra/server/router"
	"github.com/finance-ledger/api/internal/integration/entrypoint/controller"
	"github.com/finance-ledger/api/internal/integration/entrypoint/middleware"
	"github.com/finance-ledger/api/internal/integration/persistence"
	reportrender "github.com/finance-ledger/api/internal/integration/report"
)

// Injector holds all application dependencies.
type Injector struct {
	Config  *config.Config
	DB      *gorm.DB
	Metrics *metrics.Metrics
	Router  *router.Router

	SeedDefaultCategories *category.SeedDefaultCategoriesUseCase
	GenerateReport        *report.GenerateReportUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case rate limiting stays in process memory.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	appMetrics := metrics.New()

	// Create repositories
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	unitOfWork := persistence.NewUnitOfWork(db)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	getCategoryUseCase := category.NewGetCategoryUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, transactionRepo, unitOfWork)
	seedDefaultCategoriesUseCase := category.NewSeedDefaultCategoriesUseCase(categoryRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, unitOfWork)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, unitOfWork)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
	aggregateTransactionsUseCase := transaction.NewAggregateTransactionsUseCase(transactionRepo)

	// Create report use case
	generateReportUseCase := report.NewGenerateReportUseCase(
		aggregateTransactionsUseCase,
		reportrender.NewCSVRenderer(),
		reportrender.NewPDFRenderer(),
		reportrender.NewPlainPDFRenderer(),
		appMetrics,
	)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		return infradb.Ping(db)
	}, cfg.API.Title, cfg.API.Version)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		getCategoryUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		getTransactionUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)

	reportController := controller.NewReportController(
		aggregateTransactionsUseCase,
		generateReportUseCase,
	)

	// Create middleware
	var store middleware.RateLimitStore
	if redisClient != nil {
		store = middleware.NewRedisStore(redisClient, cfg.Report.RateLimit, cfg.Report.RateWindow)
	} else {
		store = middleware.NewMemoryStore(cfg.Report.RateLimit, cfg.Report.RateWindow)
	}
	reportRateLimiter := middleware.NewRateLimiter(store, appMetrics)
	if cfg.IsTest() {
		reportRateLimiter.Disable()
	}

	// Create router
	r := router.NewRouter(
		healthController,
		categoryController,
		transactionController,
		reportController,
		reportRateLimiter,
		appMetrics,
		appMetrics.Handler(),
	)

	return &Injector{
		Config:                cfg,
		DB:                    db,
		Metrics:               appMetrics,
		Router:                r,
		SeedDefaultCategories: seedDefaultCategoriesUseCase,
		GenerateReport:        generateReportUseCase,
	}
}

// Handler builds the HTTP handler serving the API with CORS applied.
func (i *Injector) Handler() http.Handler {
	engine := i.Router.Setup(i.Config.Server.Environment)
	return router.WithCORS(engine, i.Config.CORS.AllowedOrigins)
}
