package adapter

import (
	"context"

	"github.com/finance-ledger/api/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
// Date bounds are inclusive YYYY-MM-DD strings.
type TransactionFilter struct {
	IsIncome   *bool
	CategoryID *uint
	StartDate  *string
	EndDate    *string
}

// TransactionRepository defines the interface for transaction persistence operations.
// Every method joins the unit of work carried by ctx, if any.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uint) (*entity.Transaction, error)

	// FindByIDWithCategory retrieves a transaction with its category name by ID.
	FindByIDWithCategory(ctx context.Context, id uint) (*entity.TransactionWithCategory, error)

	// List retrieves a page of transactions, newest first.
	List(ctx context.Context, filter TransactionFilter, pagination Pagination) ([]*entity.TransactionWithCategory, error)

	// FindAll retrieves every transaction matching the filter, newest first.
	FindAll(ctx context.Context, filter TransactionFilter) ([]*entity.TransactionWithCategory, error)

	// CountByCategory returns the number of transactions referencing the category.
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction from the database.
	Delete(ctx context.Context, id uint) error
}
