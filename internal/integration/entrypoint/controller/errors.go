package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-ledger/api/internal/domain/error"
	"github.com/finance-ledger/api/internal/integration/entrypoint/dto"
)

// handleError maps domain errors to HTTP responses. Anything unrecognised is a 500.
func handleError(ctx *gin.Context, err error) {
	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		ctx.JSON(getStatusCodeForCategoryError(catErr.Code), dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		})
		return
	}

	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(getStatusCodeForTransactionError(txnErr.Code), dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: reportErr.Message,
			Code:  string(reportErr.Code),
		})
		return
	}

	slog.Error("Request failed",
		"error", err,
		"method", ctx.Request.Method,
		"path", ctx.Request.URL.Path,
	)
	_ = ctx.Error(err)

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForCategoryError maps category error codes to HTTP status codes.
func getStatusCodeForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameExists,
		domainerror.ErrCodeCategoryHasTransactions,
		domainerror.ErrCodeCategoryIsDefault:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCategoryName,
		domainerror.ErrCodeCategoryDescriptionTooLong:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeCategoryNotFoundForTxn:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeInvalidDate,
		domainerror.ErrCodeDescriptionTooLong:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// handleBindingError responds to a request that failed binding or validation.
func handleBindingError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
		Error:   "Invalid request",
		Code:    domainerror.ErrCodeInvalidRequest,
		Details: err.Error(),
	})
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: "Invalid " + name + " format",
			Code:  domainerror.ErrCodeInvalidRequest,
		})
		return 0, false
	}
	return uint(id), true
}
