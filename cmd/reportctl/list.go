package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/JonMunkholm/novareport/internal/report"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func listCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the report table",
		Long: `Fetch every order matching the filters and print the report table.

Examples:
  reportctl list
  reportctl list --status pending --from 2024-01-01 --to 2024-01-31
  reportctl list --sort customer.name --dir asc --search silva
  reportctl list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := a.fetch(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, state.Current)
			}
			return writeTable(out, state.Render())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the shown orders as JSON")
	return cmd
}

// writeTable prints t followed by its counters. An empty table prints the
// empty-state notice instead.
func writeTable(w io.Writer, t report.Table) error {
	if t.Empty() {
		n := report.EmptyNotice()
		_, err := fmt.Fprintf(w, "%s: %s\n%s\n", n.Title, n.Message, t.Counter())
		return err
	}

	table := tablewriter.NewWriter(w)

	header := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h.Header
		if h.Indicator != "" {
			header[i] = h.Header + " " + h.Indicator
		}
	}
	table.Header(header...)

	for _, row := range t.Rows {
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c.Text
		}
		if err := table.Append(cells...); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	_, err := fmt.Fprintf(w, "%s | Total: R$ %s\n", t.Counter(), t.TotalAmount)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
