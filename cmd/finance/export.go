package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finance-ledger/api/internal/application/usecase/report"
	"github.com/finance-ledger/api/internal/domain/entity"
)

func exportCmd(opts *rootOptions) *cobra.Command {
	var (
		fileType  string
		startDate string
		endDate   string
		out       string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a transactions report to a file",
		Example: `  finance export --type pdf --start-date 2024-01-01 --end-date 2024-01-31
  finance export --type csv --out -`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer a.close()

			input := report.GenerateReportInput{FileType: entity.ReportFileType(fileType)}
			if startDate != "" {
				input.StartDate = &startDate
			}
			if endDate != "" {
				input.EndDate = &endDate
			}

			output, err := a.injector.GenerateReport.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			if out == "-" {
				_, err = cmd.OutOrStdout().Write(output.Content)
				return err
			}
			if out == "" {
				out = output.FileName
			}
			if err := os.WriteFile(out, output.Content, 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", out, len(output.Content))
			if output.Degraded {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: PDF rendered in plain layout")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fileType, "type", string(entity.ReportFileTypeCSV), "report format (csv, pdf)")
	cmd.Flags().StringVar(&startDate, "start-date", "", "first day to include, YYYY-MM-DD")
	cmd.Flags().StringVar(&endDate, "end-date", "", "last day to include, YYYY-MM-DD")
	cmd.Flags().StringVar(&out, "out", "", "output path, - for stdout (default: the report file name)")

	return cmd
}
