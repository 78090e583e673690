package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-ledger/api/internal/application/usecase/report"
	"github.com/finance-ledger/api/internal/application/usecase/transaction"
	"github.com/finance-ledger/api/internal/integration/entrypoint/dto"
)

// ReportController handles the transaction report endpoints.
type ReportController struct {
	aggregateUseCase *transaction.AggregateTransactionsUseCase
	generateUseCase  *report.GenerateReportUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	aggregateUseCase *transaction.AggregateTransactionsUseCase,
	generateUseCase *report.GenerateReportUseCase,
) *ReportController {
	return &ReportController{
		aggregateUseCase: aggregateUseCase,
		generateUseCase:  generateUseCase,
	}
}

// Aggregate handles GET /transactions/reports/aggregate requests.
func (c *ReportController) Aggregate(ctx *gin.Context) {
	var query dto.ReportRangeQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		handleBindingError(ctx, err)
		return
	}

	summary, err := c.aggregateUseCase.Execute(ctx.Request.Context(), query.ToAggregateInput())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAggregateResponse(summary))
}

// Download handles GET /transactions/reports/download requests.
func (c *ReportController) Download(ctx *gin.Context) {
	var query dto.DownloadReportQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		handleBindingError(ctx, err)
		return
	}

	output, err := c.generateUseCase.Execute(ctx.Request.Context(), query.ToGenerateReportInput())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, output.FileName))
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}
