package transaction

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finance-ledger/api/internal/application/adapter"
	"github.com/finance-ledger/api/internal/domain/entity"
)

// AggregateTransactionsInput represents the optional inclusive date range to aggregate.
type AggregateTransactionsInput struct {
	StartDate *string
	EndDate   *string
}

// AggregateTransactionsUseCase computes income, expense and balance totals.
type AggregateTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewAggregateTransactionsUseCase creates a new AggregateTransactionsUseCase instance.
func NewAggregateTransactionsUseCase(transactionRepo adapter.TransactionRepository) *AggregateTransactionsUseCase {
	return &AggregateTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute returns the totals and the matching transactions, newest first.
func (uc *AggregateTransactionsUseCase) Execute(ctx context.Context, input AggregateTransactionsInput) (*entity.TransactionSummary, error) {
	if err := validateDateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindAll(ctx, adapter.TransactionFilter{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}

	// Summing in decimal keeps 0.1 + 0.2 at 0.3
	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range transactions {
		amount := decimal.NewFromFloat(t.Transaction.Amount)
		if t.Transaction.IsIncome {
			income = income.Add(amount)
		} else {
			expense = expense.Add(amount)
		}
	}

	return &entity.TransactionSummary{
		TotalIncome:  income.InexactFloat64(),
		TotalExpense: expense.InexactFloat64(),
		Balance:      income.Sub(expense).InexactFloat64(),
		Transactions: transactions,
	}, nil
}
