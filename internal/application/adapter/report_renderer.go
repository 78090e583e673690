package adapter

import "github.com/finance-ledger/api/internal/domain/entity"

// ReportRenderer turns report content into a downloadable document.
type ReportRenderer interface {
	Render(report *entity.Report) ([]byte, error)
}

// PlainRenderer renders a report without any failure path.
type PlainRenderer interface {
	Render(report *entity.Report) []byte
}

// ReportMetrics records report generation outcomes.
type ReportMetrics interface {
	ObserveReport(fileType entity.ReportFileType, degraded bool)
}
