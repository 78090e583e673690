// Package report contains the transaction report use case.
package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finance-ledger/api/internal/application/adapter"
	"github.com/finance-ledger/api/internal/application/usecase/transaction"
	"github.com/finance-ledger/api/internal/domain/entity"
	domainerror "github.com/finance-ledger/api/internal/domain/error"
)

// TransactionAggregator provides the summary a report is built from.
type TransactionAggregator interface {
	Execute(ctx context.Context, input transaction.AggregateTransactionsInput) (*entity.TransactionSummary, error)
}

// GenerateReportInput represents the input for report generation.
type GenerateReportInput struct {
	FileType  entity.ReportFileType
	StartDate *string
	EndDate   *string
}

// GenerateReportOutput represents a rendered report ready for download.
type GenerateReportOutput struct {
	Content     []byte
	FileName    string
	ContentType string
	Degraded    bool
}

// GenerateReportUseCase builds and renders transaction reports.
type GenerateReportUseCase struct {
	aggregator  TransactionAggregator
	csvRenderer adapter.PlainRenderer
	pdfRenderer adapter.ReportRenderer
	pdfFallback adapter.PlainRenderer
	metrics     adapter.ReportMetrics
}

// NewGenerateReportUseCase creates a new GenerateReportUseCase instance.
// metrics may be nil.
func NewGenerateReportUseCase(
	aggregator TransactionAggregator,
	csvRenderer adapter.PlainRenderer,
	pdfRenderer adapter.ReportRenderer,
	pdfFallback adapter.PlainRenderer,
	metrics adapter.ReportMetrics,
) *GenerateReportUseCase {
	return &GenerateReportUseCase{
		aggregator:  aggregator,
		csvRenderer: csvRenderer,
		pdfRenderer: pdfRenderer,
		pdfFallback: pdfFallback,
		metrics:     metrics,
	}
}

// Execute renders the transactions in the optional date range.
// Rendering never fails: CSV has no failure path and a PDF the rich renderer
// cannot produce is rendered in plain form instead.
func (uc *GenerateReportUseCase) Execute(ctx context.Context, input GenerateReportInput) (*GenerateReportOutput, error) {
	if !input.FileType.IsValid() {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportFileType,
			fmt.Sprintf("invalid file_type %q, expected csv or pdf", input.FileType),
			domainerror.ErrInvalidReportFileType,
		)
	}

	summary, err := uc.aggregator.Execute(ctx, transaction.AggregateTransactionsInput{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
	if err != nil {
		return nil, err
	}

	report := &entity.Report{
		Title:     entity.ReportTitle,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Summary:   summary,
	}

	output := &GenerateReportOutput{
		FileName:    report.FileName(input.FileType),
		ContentType: input.FileType.ContentType(),
	}

	switch input.FileType {
	case entity.ReportFileTypeCSV:
		output.Content = uc.csvRenderer.Render(report)

	case entity.ReportFileTypePDF:
		content, err := uc.pdfRenderer.Render(report)
		if err != nil {
			slog.Warn("PDF rendering failed, using plain layout",
				"error", err,
				"rows", summary.Count(),
			)
			content = uc.pdfFallback.Render(report)
			output.Degraded = true
		}
		output.Content = content
	}

	if uc.metrics != nil {
		uc.metrics.ObserveReport(input.FileType, output.Degraded)
	}

	slog.Info("Report generated",
		"file_type", input.FileType,
		"file_name", output.FileName,
		"rows", summary.Count(),
		"degraded", output.Degraded,
	)

	return output, nil
}
