package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/JonMunkholm/novareport/internal/report"
	"github.com/spf13/cobra"
)

func exportCmd(a *app) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the report to an xlsx or csv file",
		Long: `Fetch every order matching the filters and write the rendered table to a file.

Examples:
  reportctl export
  reportctl export --format csv --out pedidos.csv
  reportctl export --from 2024-01-01 --sort id --dir asc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			state, err := a.fetch(cmd.Context())
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			err = report.Export(&buf, state.Render(), f, a.cfg.Report.SheetName)
			if errors.Is(err, report.ErrEmptyExport) {
				return fmt.Errorf("%s: %w", report.EmptyNotice().Message, err)
			}
			if err != nil {
				return err
			}

			if out == "" {
				out = report.ExportFilename(a.cfg.Report.ExportFileName, f)
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d pedidos exportados para %s\n", len(state.Current), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatXLSX), "export format (xlsx, csv)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default: configured file name)")
	return cmd
}
