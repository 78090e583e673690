// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// Category groups transactions and classifies them as income or expense.
type Category struct {
	ID          uint
	Name        string
	Description *string
	IsIncome    bool
	IsDefault   bool // Seeded categories only; never changes after creation
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory creates a new user-defined Category entity.
func NewCategory(name string, description *string, isIncome bool) *Category {
	now := time.Now().UTC()

	return &Category{
		Name:        name,
		Description: description,
		IsIncome:    isIncome,
		IsDefault:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewDefaultCategory creates a system-seeded Category entity.
func NewDefaultCategory(name, description string, isIncome bool) *Category {
	category := NewCategory(name, &description, isIncome)
	category.IsDefault = true
	return category
}

// DefaultCategories returns the categories seeded on first start.
func DefaultCategories() []*Category {
	return []*Category{
		// Expense
		NewDefaultCategory("Food", "Groceries and dining out", false),
		NewDefaultCategory("Transport", "Transportation costs", false),
		NewDefaultCategory("Shopping", "Shopping and retail", false),
		NewDefaultCategory("Bills", "Utility bills and subscriptions", false),
		NewDefaultCategory("Entertainment", "Movies, games, and leisure", false),
		NewDefaultCategory("Healthcare", "Medical expenses", false),
		NewDefaultCategory("Education", "Educational expenses", false),
		NewDefaultCategory("Other", "Miscellaneous expenses", false),
		// Income
		NewDefaultCategory("Salary", "Monthly salary", true),
		NewDefaultCategory("Freelance", "Freelance work income", true),
		NewDefaultCategory("Investment", "Investment returns", true),
		NewDefaultCategory("Gift", "Gifts received", true),
		NewDefaultCategory("Other Income", "Other income sources", true),
	}
}

// CategoryPatch holds the fields of a partial category update.
// Nil fields are left untouched. Description can also be cleared.
type CategoryPatch struct {
	Name        *string
	Description OptionalString
	IsIncome    *bool
}

// Apply copies the present fields of the patch onto the category.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description.Set {
		c.Description = p.Description.Value
	}
	if p.IsIncome != nil {
		c.IsIncome = *p.IsIncome
	}
	c.UpdatedAt = time.Now().UTC()
}
