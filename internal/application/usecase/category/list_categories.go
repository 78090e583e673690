package category

import (
	"context"
	"fmt"

	"github.com/finance-ledger/api/internal/application/adapter"
	"github.com/finance-ledger/api/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	IsIncome  *bool
	IsDefault *bool
	Skip      int
	Limit     int
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*entity.Category
}

// ListCategoriesUseCase handles category listing logic.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute lists categories ordered by name.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	filter := adapter.CategoryFilter{
		IsIncome:  input.IsIncome,
		IsDefault: input.IsDefault,
	}

	categories, err := uc.categoryRepo.List(ctx, filter, adapter.NewPagination(input.Skip, input.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return &ListCategoriesOutput{
		Categories: categories,
	}, nil
}
