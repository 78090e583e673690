package model

import (
	"time"

	"github.com/finance-ledger/api/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Amount      float64   `gorm:"not null"`
	CategoryID  uint      `gorm:"not null;index"`
	Description *string   `gorm:"type:varchar(500)"`
	IsIncome    bool      `gorm:"not null;index"`
	Date        string    `gorm:"type:varchar(10);not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`

	// Deleting a referenced category is refused by the database as well.
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:          m.ID,
		Amount:      m.Amount,
		CategoryID:  m.CategoryID,
		Description: m.Description,
		IsIncome:    m.IsIncome,
		Date:        m.Date,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToEntityWithCategory converts a TransactionModel with its preloaded category.
func (m *TransactionModel) ToEntityWithCategory() *entity.TransactionWithCategory {
	result := &entity.TransactionWithCategory{
		Transaction: m.ToEntity(),
	}
	if m.Category != nil {
		result.CategoryName = m.Category.Name
	}
	return result
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:          transaction.ID,
		Amount:      transaction.Amount,
		CategoryID:  transaction.CategoryID,
		Description: transaction.Description,
		IsIncome:    transaction.IsIncome,
		Date:        transaction.Date,
		CreatedAt:   transaction.CreatedAt,
		UpdatedAt:   transaction.UpdatedAt,
	}
}

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{
		&CategoryModel{},
		&TransactionModel{},
	}
}
