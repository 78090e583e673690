// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/finance-ledger/api/internal/application/usecase/category"
	"github.com/finance-ledger/api/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=500"`
	IsIncome    bool    `json:"is_income"`
}

// UpdateCategoryRequest represents the request body for category update.
// Absent fields are left unchanged; a null description clears it.
type UpdateCategoryRequest struct {
	Name        *string        `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Description NullableString `json:"description"`
	IsIncome    *bool          `json:"is_income,omitempty"`
}

// ListCategoriesQuery represents the query parameters for listing categories.
type ListCategoriesQuery struct {
	IsIncome  *bool `form:"is_income"`
	IsDefault *bool `form:"is_default"`
	Skip      int   `form:"skip" binding:"min=0"`
	Limit     *int  `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsIncome    bool    `json:"is_income"`
	IsDefault   bool    `json:"is_default"`
}

// ToCreateCategoryInput converts the request to use case input.
func (r CreateCategoryRequest) ToCreateCategoryInput() category.CreateCategoryInput {
	return category.CreateCategoryInput{
		Name:        r.Name,
		Description: r.Description,
		IsIncome:    r.IsIncome,
	}
}

// ToPatch converts the request to a category patch.
func (r UpdateCategoryRequest) ToPatch() entity.CategoryPatch {
	return entity.CategoryPatch{
		Name:        r.Name,
		Description: r.Description.ToOptional(),
		IsIncome:    r.IsIncome,
	}
}

// ToListCategoriesInput converts the query to use case input.
func (q ListCategoriesQuery) ToListCategoriesInput() category.ListCategoriesInput {
	return category.ListCategoriesInput{
		IsIncome:  q.IsIncome,
		IsDefault: q.IsDefault,
		Skip:      q.Skip,
		Limit:     limitOrDefault(q.Limit),
	}
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		IsIncome:    cat.IsIncome,
		IsDefault:   cat.IsDefault,
	}
}

// ToCategoryListResponse converts categories to their response list.
func ToCategoryListResponse(categories []*entity.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		responses[i] = ToCategoryResponse(cat)
	}
	return responses
}
