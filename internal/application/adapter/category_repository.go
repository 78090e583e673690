// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-ledger/api/internal/domain/entity"
)

// Pagination defines offset pagination options.
type Pagination struct {
	Skip  int
	Limit int
}

// CategoryFilter defines filter options for listing categories.
// Nil fields do not filter.
type CategoryFilter struct {
	IsIncome  *bool
	IsDefault *bool
}

// CategoryRepository defines the interface for category persistence operations.
// Every method joins the unit of work carried by ctx, if any.
type CategoryRepository interface {
	// Create creates a new category in the database.
	// Returns domainerror.ErrCategoryNameExists when the name is taken.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uint) (*entity.Category, error)

	// FindByName retrieves a category by its exact name.
	FindByName(ctx context.Context, name string) (*entity.Category, error)

	// ExistsByName checks if a category other than excludeID uses the name.
	// A zero excludeID checks all categories.
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)

	// List retrieves categories ordered by name.
	List(ctx context.Context, filter CategoryFilter, pagination Pagination) ([]*entity.Category, error)

	// Update updates an existing category in the database.
	// Returns domainerror.ErrCategoryNameExists when the new name is taken.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category from the database.
	// Returns domainerror.ErrCategoryHasTransactions when transactions still reference it.
	Delete(ctx context.Context, id uint) error
}

// Pagination bounds.
const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

// NewPagination clamps skip and limit into their allowed ranges.
// A limit below one selects the default page size.
func NewPagination(skip, limit int) Pagination {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Pagination{Skip: skip, Limit: limit}
}
