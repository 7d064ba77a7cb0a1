package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/JonMunkholm/novareport/internal/config"
	"github.com/JonMunkholm/novareport/internal/core"
	"github.com/JonMunkholm/novareport/internal/logging"
	"github.com/JonMunkholm/novareport/internal/report"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type orderFetcher interface {
	FetchOrders(ctx context.Context, f core.OrderFilters) ([]core.Record, error)
}

// reportFlags are shared by every subcommand.
type reportFlags struct {
	status string
	from   string
	to     string
	sort   string
	dir    string
	search string
}

// app is the state assembled before a subcommand runs.
type app struct {
	flags      reportFlags
	cfg        *config.Config
	service    orderFetcher
	newService func(*config.Config) orderFetcher
}

func newRootCmd(newService func(*config.Config) orderFetcher) *cobra.Command {
	a := &app{newService: newService}

	root := &cobra.Command{
		Use:           "reportctl",
		Short:         "Nova orders report from the command line",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.status, "status", "paid", "order status filter")
	pf.StringVar(&a.flags.from, "from", "", "initial date (YYYY-MM-DD)")
	pf.StringVar(&a.flags.to, "to", "", "final date (YYYY-MM-DD)")
	pf.StringVar(&a.flags.sort, "sort", report.DefaultSort.Column, "sort column key")
	pf.StringVar(&a.flags.dir, "dir", string(report.DefaultSort.Dir), "sort direction (asc, desc)")
	pf.StringVar(&a.flags.search, "search", "", "keep rows containing this text")

	root.AddCommand(listCmd(a))
	root.AddCommand(exportCmd(a))

	return root
}

// setup loads configuration and logging. Logs go to stderr so stdout only
// carries the report.
func (a *app) setup(cmd *cobra.Command) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	slog.SetDefault(logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format))

	a.cfg = cfg
	a.service = a.newService(cfg)
	return nil
}

// fetch runs the pipeline and builds the report state for the flags.
func (a *app) fetch(ctx context.Context) (*report.State, error) {
	filters := core.OrderFilters{
		Status:      a.flags.status,
		InitialDate: a.flags.from,
		FinalDate:   a.flags.to,
	}

	rows, err := a.service.FetchOrders(ctx, filters)
	if err != nil {
		return nil, err
	}

	layout := report.DefaultLayout(a.cfg.Report.StudentSlots)
	state := report.NewState(rows, report.Options{
		Layout:   layout,
		Sort:     layout.ParseSort(a.flags.sort, a.flags.dir),
		LinkBase: a.cfg.Report.OrderLinkBase,
	})
	state.SetSearch(a.flags.search)
	return state, nil
}
