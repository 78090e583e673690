package report

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-ledger/api/internal/application/adapter"
	"github.com/finance-ledger/api/internal/application/usecase/transaction"
	"github.com/finance-ledger/api/internal/domain/entity"
	domainerror "github.com/finance-ledger/api/internal/domain/error"
	reportrender "github.com/finance-ledger/api/internal/integration/report"
	"github.com/finance-ledger/api/internal/testutil"
)

type failingRenderer struct{}

func (failingRenderer) Render(*entity.Report) ([]byte, error) {
	return nil, errors.New("font table unavailable")
}

type recordingMetrics struct {
	fileType entity.ReportFileType
	degraded bool
	calls    int
}

func (m *recordingMetrics) ObserveReport(fileType entity.ReportFileType, degraded bool) {
	m.fileType = fileType
	m.degraded = degraded
	m.calls++
}

func setup(t *testing.T) *testutil.TestDB {
	tdb := testutil.SetupTestDB(t)
	food := tdb.CreateCategory("Food", false, true)
	salary := tdb.CreateCategory("Salary", true, true)
	tdb.CreateTransaction(100.50, food.ID, false, "2024-01-15")
	tdb.CreateTransaction(5000, salary.ID, true, "2024-01-01")
	return tdb
}

func newUseCase(tdb *testutil.TestDB, pdf adapter.ReportRenderer, metrics adapter.ReportMetrics) *GenerateReportUseCase {
	return NewGenerateReportUseCase(
		transaction.NewAggregateTransactionsUseCase(tdb.Transactions),
		reportrender.NewCSVRenderer(),
		pdf,
		reportrender.NewPlainPDFRenderer(),
		metrics,
	)
}

func TestGenerateReport_CSV(t *testing.T) {
	tdb := setup(t)
	metrics := &recordingMetrics{}
	uc := newUseCase(tdb, reportrender.NewPDFRenderer(), metrics)

	output, err := uc.Execute(context.Background(), GenerateReportInput{FileType: entity.ReportFileTypeCSV})
	require.NoError(t, err)

	assert.Equal(t, "transactions_all_all.csv", output.FileName)
	assert.Equal(t, "text/csv", output.ContentType)
	assert.False(t, output.Degraded)
	assert.Equal(t, 3, bytes.Count(output.Content, []byte("\n")))
	assert.Contains(t, string(output.Content), ",100.5,")
	assert.Equal(t, 1, metrics.calls)
	assert.Equal(t, entity.ReportFileTypeCSV, metrics.fileType)
}

func TestGenerateReport_PDFWithRange(t *testing.T) {
	tdb := setup(t)
	uc := newUseCase(tdb, reportrender.NewPDFRenderer(), nil)

	output, err := uc.Execute(context.Background(), GenerateReportInput{
		FileType:  entity.ReportFileTypePDF,
		StartDate: testutil.Ptr("2024-01-10"),
	})
	require.NoError(t, err)

	assert.Equal(t, "transactions_2024-01-10_all.pdf", output.FileName)
	assert.Equal(t, "application/pdf", output.ContentType)
	assert.False(t, output.Degraded)
	assert.True(t, bytes.HasPrefix(output.Content, []byte("%PDF-")))
}

func TestGenerateReport_FallsBackWhenRichPDFFails(t *testing.T) {
	tdb := setup(t)
	metrics := &recordingMetrics{}
	uc := newUseCase(tdb, failingRenderer{}, metrics)

	output, err := uc.Execute(context.Background(), GenerateReportInput{FileType: entity.ReportFileTypePDF})
	require.NoError(t, err)

	assert.True(t, output.Degraded)
	assert.True(t, bytes.HasPrefix(output.Content, []byte("%PDF-")))
	assert.Contains(t, string(output.Content), "Salary")
	assert.True(t, metrics.degraded)
}

func TestGenerateReport_InvalidInput(t *testing.T) {
	tdb := setup(t)
	uc := newUseCase(tdb, reportrender.NewPDFRenderer(), nil)

	_, err := uc.Execute(context.Background(), GenerateReportInput{FileType: "xlsx"})
	var reportErr *domainerror.ReportError
	require.True(t, errors.As(err, &reportErr))
	assert.Equal(t, domainerror.ErrCodeInvalidReportFileType, reportErr.Code)

	_, err = uc.Execute(context.Background(), GenerateReportInput{
		FileType: entity.ReportFileTypeCSV,
		EndDate:  testutil.Ptr("2024/01/31"),
	})
	var txnErr *domainerror.TransactionError
	require.True(t, errors.As(err, &txnErr))
	assert.Equal(t, domainerror.ErrCodeInvalidDate, txnErr.Code)
}
