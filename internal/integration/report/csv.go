// Package report renders transaction reports as CSV and PDF documents.
package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/finance-ledger/api/internal/domain/entity"
)

// CSVRenderer writes one row per transaction under a header of column names.
type CSVRenderer struct{}

// NewCSVRenderer creates a new CSVRenderer instance.
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

// Render implements adapter.PlainRenderer. The writer uses the default
// delimiter and an in-memory buffer, so it has nothing to report.
func (r *CSVRenderer) Render(report *entity.Report) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write(entity.ReportColumns)
	_ = w.WriteAll(rows(report))

	return buf.Bytes()
}

// rows flattens the report transactions into column order.
func rows(report *entity.Report) [][]string {
	if report.Summary == nil {
		return nil
	}

	out := make([][]string, 0, len(report.Summary.Transactions))
	for _, t := range report.Summary.Transactions {
		txn := t.Transaction
		description := ""
		if txn.Description != nil {
			description = *txn.Description
		}
		out = append(out, []string{
			strconv.FormatUint(uint64(txn.ID), 10),
			formatAmount(txn.Amount),
			strconv.FormatUint(uint64(txn.CategoryID), 10),
			t.CategoryName,
			description,
			strconv.FormatBool(txn.IsIncome),
			txn.Date,
		})
	}
	return out
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// summaryLines returns the closing totals block shared by the PDF layouts.
func summaryLines(report *entity.Report) []string {
	s := report.Summary
	if s == nil {
		s = &entity.TransactionSummary{}
	}
	return []string{
		"Total income: " + strconv.FormatFloat(s.TotalIncome, 'f', 2, 64),
		"Total expense: " + strconv.FormatFloat(s.TotalExpense, 'f', 2, 64),
		"Balance: " + strconv.FormatFloat(s.Balance, 'f', 2, 64),
		"Transactions: " + strconv.Itoa(s.Count()),
	}
}
