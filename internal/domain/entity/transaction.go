// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// DateLayout is the calendar date format used for transaction dates.
const DateLayout = "2006-01-02"

// Transaction represents a single dated income or expense record.
type Transaction struct {
	ID          uint
	Amount      float64 // Always positive; direction comes from IsIncome
	CategoryID  uint
	Description *string
	IsIncome    bool
	Date        string // YYYY-MM-DD
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(amount float64, categoryID uint, description *string, isIncome bool, date string) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		Amount:      amount,
		CategoryID:  categoryID,
		Description: description,
		IsIncome:    isIncome,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TransactionWithCategory represents a transaction with the name of its category.
type TransactionWithCategory struct {
	Transaction  *Transaction
	CategoryName string
}

// TransactionPatch holds the fields of a partial transaction update.
// Nil fields are left untouched. Description can also be cleared.
type TransactionPatch struct {
	Amount      *float64
	CategoryID  *uint
	Description OptionalString
	IsIncome    *bool
	Date        *string
}

// Apply copies the present fields of the patch onto the transaction.
func (p TransactionPatch) Apply(t *Transaction) {
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.Description.Set {
		t.Description = p.Description.Value
	}
	if p.IsIncome != nil {
		t.IsIncome = *p.IsIncome
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	t.UpdatedAt = time.Now().UTC()
}

// CategoryRef identifies the category of a new transaction, either by ID or by name.
// It is implemented by CategoryByID and CategoryByName only.
type CategoryRef interface {
	isCategoryRef()
}

// CategoryByID references an existing category by its ID.
type CategoryByID uint

// CategoryByName references a category by name, creating it when absent.
type CategoryByName string

func (CategoryByID) isCategoryRef()   {}
func (CategoryByName) isCategoryRef() {}

// TransactionSummary holds the totals over a set of transactions.
type TransactionSummary struct {
	TotalIncome  float64
	TotalExpense float64
	Balance      float64
	Transactions []*TransactionWithCategory
}

// Count returns the number of transactions the summary was computed over.
func (s *TransactionSummary) Count() int {
	return len(s.Transactions)
}
