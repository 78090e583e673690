package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func seedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default categories that are missing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer a.close()

			output, err := a.injector.SeedDefaultCategories.Execute(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to seed default categories: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %d, already present %d\n", output.Created, output.Skipped)
			return nil
		},
	}
}
