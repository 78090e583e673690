package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/finance-ledger/api/internal/application/adapter"
	"github.com/finance-ledger/api/internal/domain/entity"
	domainerror "github.com/finance-ledger/api/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction update.
type UpdateTransactionInput struct {
	TransactionID uint
	Patch         entity.TransactionPatch
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.TransactionWithCategory
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	unitOfWork      adapter.UnitOfWork
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	unitOfWork adapter.UnitOfWork,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		unitOfWork:      unitOfWork,
	}
}

// Execute performs the transaction update. Only fields present in the patch change.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	patch := input.Patch

	if patch.Amount != nil {
		if err := validateAmount(*patch.Amount); err != nil {
			return nil, err
		}
	}
	if patch.Date != nil {
		if err := ValidateDate(*patch.Date); err != nil {
			return nil, err
		}
	}
	if err := validateDescription(patch.Description.Value); err != nil {
		return nil, err
	}

	output := &UpdateTransactionOutput{}

	err := uc.unitOfWork.Do(ctx, func(ctx context.Context) error {
		transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
		if err != nil {
			if errors.Is(err, domainerror.ErrTransactionNotFound) {
				return notFoundError()
			}
			return fmt.Errorf("failed to find transaction: %w", err)
		}

		if patch.CategoryID != nil {
			if _, err := uc.categoryRepo.FindByID(ctx, *patch.CategoryID); err != nil {
				if errors.Is(err, domainerror.ErrCategoryNotFound) {
					return categoryNotFoundError()
				}
				return fmt.Errorf("failed to find category: %w", err)
			}
		}

		patch.Apply(transaction)

		if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFoundForTransaction) {
				return categoryNotFoundError()
			}
			return fmt.Errorf("failed to update transaction: %w", err)
		}

		// Reload for the category name
		updated, err := uc.transactionRepo.FindByIDWithCategory(ctx, transaction.ID)
		if err != nil {
			return fmt.Errorf("failed to reload transaction: %w", err)
		}
		output.Transaction = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}
