package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/aiocean/docsync/config"
	"github.com/aiocean/docsync/logger"
	"github.com/spf13/cobra"
)

// cfg is read before any init so that flag defaults can use it.
var cfg = config.LoadConfig()

var logLevel string

var rootCmd = &cobra.Command{
	Use:           "docsync",
	Short:         "docsync turns framework and tool documentation sites into local Markdown.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logLevel, false)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error.")
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	_ = logger.Log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
