package entity

import "fmt"

// ReportFileType is the output format of a transaction report.
type ReportFileType string

const (
	ReportFileTypeCSV ReportFileType = "csv"
	ReportFileTypePDF ReportFileType = "pdf"
)

// IsValid reports whether the file type is supported.
func (t ReportFileType) IsValid() bool {
	return t == ReportFileTypeCSV || t == ReportFileTypePDF
}

// ContentType returns the MIME type served for the file type.
func (t ReportFileType) ContentType() string {
	if t == ReportFileTypePDF {
		return "application/pdf"
	}
	return "text/csv"
}

// ReportTitle is the heading printed on rendered reports.
const ReportTitle = "Transactions Report"

// ReportColumns lists the report columns in output order.
var ReportColumns = []string{"id", "amount", "category_id", "category_name", "description", "is_income", "date"}

// Report is the renderer-independent content of a transaction report.
type Report struct {
	Title     string
	StartDate *string
	EndDate   *string
	Summary   *TransactionSummary
}

// RangeLabel returns the effective date range, using "all" for an unbounded side.
func (r *Report) RangeLabel() string {
	return fmt.Sprintf("%s to %s", boundOrAll(r.StartDate), boundOrAll(r.EndDate))
}

// FileName returns the attachment name encoding the date range.
func (r *Report) FileName(fileType ReportFileType) string {
	return fmt.Sprintf("transactions_%s_%s.%s", boundOrAll(r.StartDate), boundOrAll(r.EndDate), fileType)
}

func boundOrAll(bound *string) string {
	if bound == nil || *bound == "" {
		return "all"
	}
	return *bound
}
