// Package testutil provides test helpers backed by an in-memory SQLite database.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"github.com/finance-ledger/api/config"
	"github.com/finance-ledger/api/internal/application/adapter"
	"github.com/finance-ledger/api/internal/domain/entity"
	"github.com/finance-ledger/api/internal/infra/db"
	"github.com/finance-ledger/api/internal/integration/persistence"
	"github.com/finance-ledger/api/internal/integration/persistence/model"
)

var dbCounter atomic.Int64

// TestDB bundles a migrated database with its repositories.
type TestDB struct {
	DB           *gorm.DB
	Categories   adapter.CategoryRepository
	Transactions adapter.TransactionRepository
	UnitOfWork   adapter.UnitOfWork
	t            *testing.T
}

// SetupTestDB creates an isolated in-memory database with all tables migrated.
// It is closed automatically when the test ends.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	// One connection keeps the in-memory database alive and serializes access.
	return setup(t, &config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		URL:          fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", dbCounter.Add(1)),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
}

// SetupFileTestDB creates a database file in a temporary directory with a
// production sized pool, for tests that exercise concurrent connections.
func SetupFileTestDB(t *testing.T) *TestDB {
	t.Helper()

	return setup(t, &config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		URL:          filepath.Join(t.TempDir(), "ledger.db"),
		MaxOpenConns: 25,
		MaxIdleConns: 5,
	})
}

func setup(t *testing.T, cfg *config.DatabaseConfig) *TestDB {
	t.Helper()

	database, err := db.NewConnection(cfg)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close()
	})

	gormDB := database.DB()
	return &TestDB{
		DB:           gormDB,
		Categories:   persistence.NewCategoryRepository(gormDB),
		Transactions: persistence.NewTransactionRepository(gormDB),
		UnitOfWork:   persistence.NewUnitOfWork(gormDB),
		t:            t,
	}
}

// CreateCategory inserts a category directly through the repository.
func (d *TestDB) CreateCategory(name string, isIncome, isDefault bool) *entity.Category {
	d.t.Helper()

	category := entity.NewCategory(name, nil, isIncome)
	category.IsDefault = isDefault
	if err := d.Categories.Create(context.Background(), category); err != nil {
		d.t.Fatalf("failed to create category %q: %v", name, err)
	}
	return category
}

// CreateTransaction inserts a transaction directly through the repository.
func (d *TestDB) CreateTransaction(amount float64, categoryID uint, isIncome bool, date string) *entity.Transaction {
	d.t.Helper()

	transaction := entity.NewTransaction(amount, categoryID, nil, isIncome, date)
	if err := d.Transactions.Create(context.Background(), transaction); err != nil {
		d.t.Fatalf("failed to create transaction: %v", err)
	}
	return transaction
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
