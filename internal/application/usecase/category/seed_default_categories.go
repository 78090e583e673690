package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finance-ledger/api/internal/application/adapter"
	"github.com/finance-ledger/api/internal/domain/entity"
	domainerror "github.com/finance-ledger/api/internal/domain/error"
)

// SeedDefaultCategoriesOutput represents the output of seeding.
type SeedDefaultCategoriesOutput struct {
	Created int
	Skipped int
}

// SeedDefaultCategoriesUseCase inserts the default categories that do not exist yet.
// Running it again is a no-op.
type SeedDefaultCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewSeedDefaultCategoriesUseCase creates a new SeedDefaultCategoriesUseCase instance.
func NewSeedDefaultCategoriesUseCase(categoryRepo adapter.CategoryRepository) *SeedDefaultCategoriesUseCase {
	return &SeedDefaultCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute seeds the default categories.
func (uc *SeedDefaultCategoriesUseCase) Execute(ctx context.Context) (*SeedDefaultCategoriesOutput, error) {
	output := &SeedDefaultCategoriesOutput{}

	for _, category := range entity.DefaultCategories() {
		_, err := uc.categoryRepo.FindByName(ctx, category.Name)
		if err == nil {
			output.Skipped++
			continue
		}
		if !errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, fmt.Errorf("failed to look up category %q: %w", category.Name, err)
		}

		if err := uc.categoryRepo.Create(ctx, category); err != nil {
			// Another process seeded it first
			if errors.Is(err, domainerror.ErrCategoryNameExists) {
				output.Skipped++
				continue
			}
			return nil, fmt.Errorf("failed to seed category %q: %w", category.Name, err)
		}
		output.Created++
	}

	slog.Info("Default categories seeded", "created", output.Created, "skipped", output.Skipped)

	return output, nil
}
