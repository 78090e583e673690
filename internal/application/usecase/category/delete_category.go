package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/finance-ledger/api/internal/application/adapter"
	domainerror "github.com/finance-ledger/api/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID uint
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct {
	Success bool
}

// DeleteCategoryUseCase handles category deletion logic.
type DeleteCategoryUseCase struct {
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
	unitOfWork      adapter.UnitOfWork
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
	unitOfWork adapter.UnitOfWork,
) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		unitOfWork:      unitOfWork,
	}
}

// Execute performs the category deletion.
// Categories referenced by transactions and default categories are never deleted.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	err := uc.unitOfWork.Do(ctx, func(ctx context.Context) error {
		category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
		if err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return notFoundError()
			}
			return fmt.Errorf("failed to find category: %w", err)
		}

		count, err := uc.transactionRepo.CountByCategory(ctx, category.ID)
		if err != nil {
			return fmt.Errorf("failed to count category transactions: %w", err)
		}
		if count > 0 {
			return hasTransactionsError()
		}

		if category.IsDefault {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryIsDefault,
				"Cannot delete default category",
				domainerror.ErrCategoryIsDefault,
			)
		}

		if err := uc.categoryRepo.Delete(ctx, category.ID); err != nil {
			switch {
			case errors.Is(err, domainerror.ErrCategoryHasTransactions):
				return hasTransactionsError()
			case errors.Is(err, domainerror.ErrCategoryNotFound):
				return notFoundError()
			}
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &DeleteCategoryOutput{
		Success: true,
	}, nil
}

func hasTransactionsError() error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryHasTransactions,
		"Cannot delete category with existing transactions",
		domainerror.ErrCategoryHasTransactions,
	)
}
