// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/finance-ledger/api/internal/application/adapter"
	"github.com/finance-ledger/api/internal/domain/entity"
	domainerror "github.com/finance-ledger/api/internal/domain/error"
)

const (
	// MaxCategoryNameLength is the maximum allowed length for category names.
	MaxCategoryNameLength = 100
	// MaxDescriptionLength is the maximum allowed length for category descriptions.
	MaxDescriptionLength = 500
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name        string
	Description *string
	IsIncome    bool
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	if err := ValidateName(input.Name); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}

	// Names are unique across income and expense categories
	exists, err := uc.categoryRepo.ExistsByName(ctx, input.Name, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name existence: %w", err)
	}
	if exists {
		return nil, nameExistsError(input.Name)
	}

	category := entity.NewCategory(input.Name, input.Description, input.IsIncome)

	// The unique index catches a concurrent insert of the same name
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, domainerror.ErrCategoryNameExists) {
			return nil, nameExistsError(input.Name)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}

// ValidateName checks that a category name is non-blank and within the length limit.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryName,
			"category name must not be empty",
			domainerror.ErrInvalidCategoryName,
		)
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryName,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrInvalidCategoryName,
		)
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > MaxDescriptionLength {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrCategoryDescriptionTooLong,
		)
	}
	return nil
}

func nameExistsError(name string) error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNameExists,
		fmt.Sprintf("Category with name '%s' already exists", name),
		domainerror.ErrCategoryNameExists,
	)
}

func notFoundError() error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNotFound,
		"category not found",
		domainerror.ErrCategoryNotFound,
	)
}
