package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/finance-ledger/api/internal/application/adapter"
	"github.com/finance-ledger/api/internal/application/usecase/category"
	"github.com/finance-ledger/api/internal/domain/entity"
	domainerror "github.com/finance-ledger/api/internal/domain/error"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	Amount      float64
	Category    entity.CategoryRef // Nil fails with a category-not-found error
	Description *string
	IsIncome    bool
	Date        string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction         *entity.TransactionWithCategory
	CategoryAutoCreated bool
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	unitOfWork      adapter.UnitOfWork
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	unitOfWork adapter.UnitOfWork,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		unitOfWork:      unitOfWork,
	}
}

// Execute performs the transaction creation.
// Resolving the category, creating it when referenced by an unknown name,
// and inserting the transaction happen atomically.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := ValidateDate(input.Date); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}

	output := &CreateTransactionOutput{}

	err := uc.unitOfWork.Do(ctx, func(ctx context.Context) error {
		resolved, created, err := uc.resolveCategory(ctx, input.Category, input.IsIncome)
		if err != nil {
			return err
		}

		transaction := entity.NewTransaction(input.Amount, resolved.ID, input.Description, input.IsIncome, input.Date)
		if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFoundForTransaction) {
				return categoryNotFoundError()
			}
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		output.Transaction = &entity.TransactionWithCategory{
			Transaction:  transaction,
			CategoryName: resolved.Name,
		}
		output.CategoryAutoCreated = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	if output.CategoryAutoCreated {
		slog.Info("Category auto-created for transaction",
			"category_id", output.Transaction.Transaction.CategoryID,
			"category_name", output.Transaction.CategoryName,
		)
	}

	return output, nil
}

// resolveCategory finds the referenced category. A name that matches no
// category creates one with the transaction's income flag.
func (uc *CreateTransactionUseCase) resolveCategory(ctx context.Context, ref entity.CategoryRef, isIncome bool) (*entity.Category, bool, error) {
	switch ref := ref.(type) {
	case entity.CategoryByID:
		found, err := uc.categoryRepo.FindByID(ctx, uint(ref))
		if err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return nil, false, categoryNotFoundError()
			}
			return nil, false, fmt.Errorf("failed to find category: %w", err)
		}
		return found, false, nil

	case entity.CategoryByName:
		name := string(ref)
		if strings.TrimSpace(name) == "" {
			return nil, false, categoryNotFoundError()
		}
		return uc.findOrCreateByName(ctx, name, isIncome)
	}

	return nil, false, categoryNotFoundError()
}

func (uc *CreateTransactionUseCase) findOrCreateByName(ctx context.Context, name string, isIncome bool) (*entity.Category, bool, error) {
	found, err := uc.categoryRepo.FindByName(ctx, name)
	if err == nil {
		return found, false, nil
	}
	if !errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, false, fmt.Errorf("failed to find category by name: %w", err)
	}

	if err := category.ValidateName(name); err != nil {
		return nil, false, err
	}

	created := entity.NewCategory(name, nil, isIncome)
	if err := uc.categoryRepo.Create(ctx, created); err != nil {
		if !errors.Is(err, domainerror.ErrCategoryNameExists) {
			return nil, false, fmt.Errorf("failed to create category: %w", err)
		}

		// A concurrent request created it between lookup and insert
		found, err := uc.categoryRepo.FindByName(ctx, name)
		if err != nil {
			return nil, false, fmt.Errorf("failed to find category by name: %w", err)
		}
		return found, false, nil
	}

	return created, true, nil
}
