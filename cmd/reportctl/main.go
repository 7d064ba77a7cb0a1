// Command reportctl builds the orders report from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/novareport/internal/config"
	"github.com/JonMunkholm/novareport/internal/core"
	"github.com/JonMunkholm/novareport/internal/nova"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(func(cfg *config.Config) orderFetcher {
		return core.NewService(nova.NewClient(cfg.Nova))
	})

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if msg := core.MapError(err); msg.Code != "ERR000" {
			fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		}
		stop()
		os.Exit(1)
	}
}
