package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/finance-ledger/api/internal/application/adapter"
	"github.com/finance-ledger/api/internal/domain/entity"
	domainerror "github.com/finance-ledger/api/internal/domain/error"
)

// GetTransactionInput represents the input for fetching a transaction.
type GetTransactionInput struct {
	TransactionID uint
}

// GetTransactionOutput represents the output of fetching a transaction.
type GetTransactionOutput struct {
	Transaction *entity.TransactionWithCategory
}

// GetTransactionUseCase fetches a single transaction.
type GetTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(transactionRepo adapter.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute looks the transaction up by ID.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, input GetTransactionInput) (*GetTransactionOutput, error) {
	transaction, err := uc.transactionRepo.FindByIDWithCategory(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, notFoundError()
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	return &GetTransactionOutput{
		Transaction: transaction,
	}, nil
}
