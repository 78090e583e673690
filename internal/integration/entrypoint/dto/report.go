package dto

import (
	"github.com/finance-ledger/api/internal/application/usecase/report"
	"github.com/finance-ledger/api/internal/application/usecase/transaction"
	"github.com/finance-ledger/api/internal/domain/entity"
)

// ReportRangeQuery represents the optional inclusive date range of a report.
type ReportRangeQuery struct {
	StartDate *string `form:"start_date"`
	EndDate   *string `form:"end_date"`
}

// DownloadReportQuery represents the query parameters for report download.
type DownloadReportQuery struct {
	ReportRangeQuery
	FileType string `form:"file_type"`
}

// AggregateResponse represents the totals of the selected transactions.
type AggregateResponse struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
	Count        int     `json:"count"`
}

// ToAggregateInput converts the query to use case input.
func (q ReportRangeQuery) ToAggregateInput() transaction.AggregateTransactionsInput {
	return transaction.AggregateTransactionsInput{
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
	}
}

// ToGenerateReportInput converts the query to use case input. csv is the default format.
func (q DownloadReportQuery) ToGenerateReportInput() report.GenerateReportInput {
	fileType := entity.ReportFileType(q.FileType)
	if q.FileType == "" {
		fileType = entity.ReportFileTypeCSV
	}
	return report.GenerateReportInput{
		FileType:  fileType,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
	}
}

// ToAggregateResponse converts a transaction summary to its response DTO.
func ToAggregateResponse(summary *entity.TransactionSummary) AggregateResponse {
	return AggregateResponse{
		TotalIncome:  summary.TotalIncome,
		TotalExpense: summary.TotalExpense,
		Balance:      summary.Balance,
		Count:        summary.Count(),
	}
}
