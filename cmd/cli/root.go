package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/turtacn/apiecho/sdk/go/apiecho"
)

var (
	addr    string
	timeout time.Duration
)

// rootCmd is the base command when `apiecho-cli` is called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apiecho-cli",
		Short: "A CLI tool for probing and loading an apiecho service.",
		Long: `apiecho-cli talks to a running apiecho instance: it checks liveness,
scrapes /metrics, sends single /api requests and drives concurrent load.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&addr, "addr", "http://localhost:5000", "Base URL of the apiecho service")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Per-request timeout")

	cmd.AddCommand(newHealthCmd(), newMetricsCmd(), newSendCmd(), newLoadCmd())
	return cmd
}

func client() *apiecho.Client {
	return apiecho.NewClient(addr, timeout)
}

// Execute parses the command line and runs the selected command, exiting non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
