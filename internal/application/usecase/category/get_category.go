package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/finance-ledger/api/internal/application/adapter"
	"github.com/finance-ledger/api/internal/domain/entity"
	domainerror "github.com/finance-ledger/api/internal/domain/error"
)

// GetCategoryInput represents the input for fetching a category.
type GetCategoryInput struct {
	Ref entity.CategoryRef
}

// GetCategoryOutput represents the output of fetching a category.
type GetCategoryOutput struct {
	Category *entity.Category
}

// GetCategoryUseCase fetches a single category by ID or by name.
type GetCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewGetCategoryUseCase creates a new GetCategoryUseCase instance.
func NewGetCategoryUseCase(categoryRepo adapter.CategoryRepository) *GetCategoryUseCase {
	return &GetCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute looks the category up.
func (uc *GetCategoryUseCase) Execute(ctx context.Context, input GetCategoryInput) (*GetCategoryOutput, error) {
	var (
		category *entity.Category
		err      error
	)

	switch ref := input.Ref.(type) {
	case entity.CategoryByID:
		category, err = uc.categoryRepo.FindByID(ctx, uint(ref))
	case entity.CategoryByName:
		category, err = uc.categoryRepo.FindByName(ctx, string(ref))
	default:
		return nil, notFoundError()
	}

	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, notFoundError()
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	return &GetCategoryOutput{
		Category: category,
	}, nil
}
