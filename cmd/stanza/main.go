package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stanza-tui/stanza/internal/app"
)

var version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	var opts app.Options

	root := &cobra.Command{
		Use:           "stanza",
		Short:         "A terminal client for sharing and ranking poems",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	root.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.config/stanza/config.toml)")
	root.Flags().StringVar(&opts.PrefsPath, "prefs", "", "preferences file path (default ~/.config/stanza/prefs.toml)")
	root.Flags().StringVar(&opts.Server, "server", "", "poems API address (overrides config)")
	root.Flags().StringVar(&opts.Token, "token", "", "API bearer token (overrides config)")
	root.Flags().StringVar(&opts.UserID, "user", "", "user id to act as (overrides config)")
	root.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "stanza: %v\n", err)
		return 1
	}
	return 0
}
