// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/finance-ledger/api/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_name"`
	Description *string   `gorm:"type:varchar(500)"`
	IsIncome    bool      `gorm:"not null;index"`
	IsDefault   bool      `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		IsIncome:    m.IsIncome,
		IsDefault:   m.IsDefault,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		IsIncome:    category.IsIncome,
		IsDefault:   category.IsDefault,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}
