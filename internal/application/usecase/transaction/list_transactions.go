package transaction

import (
	"context"
	"fmt"

	"github.com/finance-ledger/api/internal/application/adapter"
	"github.com/finance-ledger/api/internal/domain/entity"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	IsIncome   *bool
	CategoryID *uint
	StartDate  *string // Inclusive, YYYY-MM-DD
	EndDate    *string // Inclusive, YYYY-MM-DD
	Skip       int
	Limit      int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*entity.TransactionWithCategory
}

// ListTransactionsUseCase handles transaction listing logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute lists transactions, most recently created first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if err := validateDateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	filter := adapter.TransactionFilter{
		IsIncome:   input.IsIncome,
		CategoryID: input.CategoryID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	}

	transactions, err := uc.transactionRepo.List(ctx, filter, adapter.NewPagination(input.Skip, input.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &ListTransactionsOutput{
		Transactions: transactions,
	}, nil
}
