package dto

import (
	"github.com/finance-ledger/api/internal/application/usecase/transaction"
	"github.com/finance-ledger/api/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
// The category is referenced by category_id or, when absent, by name.
type CreateTransactionRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	CategoryID  *uint   `json:"category_id,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=500"`
	IsIncome    bool    `json:"is_income"`
	Date        string  `json:"date" binding:"required"`
}

// UpdateTransactionRequest represents the request body for transaction update.
// Absent fields are left unchanged; a null description clears it.
type UpdateTransactionRequest struct {
	Amount      *float64       `json:"amount,omitempty" binding:"omitempty,gt=0"`
	CategoryID  *uint          `json:"category_id,omitempty"`
	Description NullableString `json:"description"`
	IsIncome    *bool          `json:"is_income,omitempty"`
	Date        *string        `json:"date,omitempty"`
}

// ListTransactionsQuery represents the query parameters for listing transactions.
type ListTransactionsQuery struct {
	IsIncome   *bool   `form:"is_income"`
	CategoryID *uint   `form:"category_id"`
	StartDate  *string `form:"start_date"`
	EndDate    *string `form:"end_date"`
	Skip       int     `form:"skip" binding:"min=0"`
	Limit      *int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID           uint    `json:"id"`
	Amount       float64 `json:"amount"`
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Category     string  `json:"category"`
	Description  *string `json:"description"`
	IsIncome     bool    `json:"is_income"`
	Date         string  `json:"date"`
}

// CategoryRef returns the category reference carried by the request.
// category_id wins when both are present.
func (r CreateTransactionRequest) CategoryRef() entity.CategoryRef {
	switch {
	case r.CategoryID != nil:
		return entity.CategoryByID(*r.CategoryID)
	case r.Category != nil:
		return entity.CategoryByName(*r.Category)
	default:
		return nil
	}
}

// ToCreateTransactionInput converts the request to use case input.
func (r CreateTransactionRequest) ToCreateTransactionInput() transaction.CreateTransactionInput {
	return transaction.CreateTransactionInput{
		Amount:      r.Amount,
		Category:    r.CategoryRef(),
		Description: r.Description,
		IsIncome:    r.IsIncome,
		Date:        r.Date,
	}
}

// ToPatch converts the request to a transaction patch.
func (r UpdateTransactionRequest) ToPatch() entity.TransactionPatch {
	return entity.TransactionPatch{
		Amount:      r.Amount,
		CategoryID:  r.CategoryID,
		Description: r.Description.ToOptional(),
		IsIncome:    r.IsIncome,
		Date:        r.Date,
	}
}

// ToListTransactionsInput converts the query to use case input.
func (q ListTransactionsQuery) ToListTransactionsInput() transaction.ListTransactionsInput {
	return transaction.ListTransactionsInput{
		IsIncome:   q.IsIncome,
		CategoryID: q.CategoryID,
		StartDate:  q.StartDate,
		EndDate:    q.EndDate,
		Skip:       q.Skip,
		Limit:      limitOrDefault(q.Limit),
	}
}

// ToTransactionResponse converts a transaction and its category name to a response DTO.
func ToTransactionResponse(t *entity.TransactionWithCategory) TransactionResponse {
	return TransactionResponse{
		ID:           t.Transaction.ID,
		Amount:       t.Transaction.Amount,
		CategoryID:   t.Transaction.CategoryID,
		CategoryName: t.CategoryName,
		Category:     t.CategoryName,
		Description:  t.Transaction.Description,
		IsIncome:     t.Transaction.IsIncome,
		Date:         t.Transaction.Date,
	}
}

// ToTransactionListResponse converts transactions to their response list.
func ToTransactionListResponse(transactions []*entity.TransactionWithCategory) []TransactionResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		responses[i] = ToTransactionResponse(t)
	}
	return responses
}
