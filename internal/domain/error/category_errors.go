// Package error defines domain-specific errors for the finance ledger.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the system.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameExists is returned when another category already uses the name.
	ErrCategoryNameExists = errors.New("category name already exists")

	// ErrInvalidCategoryName is returned when the name is empty or too long.
	ErrInvalidCategoryName = errors.New("invalid category name")

	// ErrCategoryDescriptionTooLong is returned when the description exceeds the maximum length.
	ErrCategoryDescriptionTooLong = errors.New("category description too long")

	// ErrCategoryHasTransactions is returned when deleting a category still referenced by transactions.
	ErrCategoryHasTransactions = errors.New("category has transactions")

	// ErrCategoryIsDefault is returned when deleting a seeded category.
	ErrCategoryIsDefault = errors.New("category is a default category")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryNotFound           CategoryErrorCode = "CAT-010001"
	ErrCodeCategoryNameExists         CategoryErrorCode = "CAT-010002"
	ErrCodeInvalidCategoryName        CategoryErrorCode = "CAT-010003"
	ErrCodeCategoryDescriptionTooLong CategoryErrorCode = "CAT-010004"

	// Deletion guards (02XXXX)
	ErrCodeCategoryHasTransactions CategoryErrorCode = "CAT-020001"
	ErrCodeCategoryIsDefault       CategoryErrorCode = "CAT-020002"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
