package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/finance-ledger/api/internal/application/adapter"
	"github.com/finance-ledger/api/internal/domain/entity"
	domainerror "github.com/finance-ledger/api/internal/domain/error"
)

// UpdateCategoryInput represents the input for category update.
type UpdateCategoryInput struct {
	CategoryID uint
	Patch      entity.CategoryPatch
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category update logic.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category update. Only fields present in the patch change.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	patch := input.Patch

	if patch.Name != nil {
		if err := ValidateName(*patch.Name); err != nil {
			return nil, err
		}
	}
	if err := validateDescription(patch.Description.Value); err != nil {
		return nil, err
	}

	// Find the existing category
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, notFoundError()
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	// Re-check uniqueness only when the name actually changes
	if patch.Name != nil && *patch.Name != category.Name {
		exists, err := uc.categoryRepo.ExistsByName(ctx, *patch.Name, category.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check category name existence: %w", err)
		}
		if exists {
			return nil, nameExistsError(*patch.Name)
		}
	}

	patch.Apply(category)

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, domainerror.ErrCategoryNameExists) {
			return nil, nameExistsError(category.Name)
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &UpdateCategoryOutput{
		Category: category,
	}, nil
}
