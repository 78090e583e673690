// Package transaction contains transaction-related use cases.
package transaction

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/finance-ledger/api/internal/domain/entity"
	domainerror "github.com/finance-ledger/api/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 500

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be greater than 0",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}

// ValidateDate checks that date is a calendar date in YYYY-MM-DD form.
func ValidateDate(date string) error {
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDate,
			fmt.Sprintf("invalid date %q, expected format YYYY-MM-DD", date),
			domainerror.ErrInvalidTransactionDate,
		)
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	return nil
}

// validateDateRange checks the optional bounds of a date filter.
func validateDateRange(startDate, endDate *string) error {
	for _, bound := range []*string{startDate, endDate} {
		if bound == nil {
			continue
		}
		if err := ValidateDate(*bound); err != nil {
			return err
		}
	}
	return nil
}

func notFoundError() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}

func categoryNotFoundError() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeCategoryNotFoundForTxn,
		"category not found",
		domainerror.ErrCategoryNotFoundForTransaction,
	)
}
