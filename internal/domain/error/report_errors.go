package error

import "errors"

// ErrInvalidReportFileType is returned when a report is requested in an unsupported format.
var ErrInvalidReportFileType = errors.New("invalid report file type")

// ReportErrorCode defines error codes for report errors.
type ReportErrorCode string

const (
	ErrCodeInvalidReportFileType ReportErrorCode = "RPT-010001"
)

// Request-level codes shared by all controllers.
const (
	ErrCodeInvalidRequest = "REQ-010001"
	ErrCodeRateLimited    = "REQ-020001"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
