package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"platformsdk/internal/config"
	"platformsdk/internal/logger"
)

var version = "1.0.0"

// appConfig is replaced by Execute; commands run from tests see the defaults.
var appConfig = config.Default()

var rootCmd = &cobra.Command{
	Use:   "platformsdk",
	Short: "platformsdk - work with invoice records exported from the platform API",
	Long: `platformsdk decodes invoice records returned by the platform API,
checks them for consistency, resolves related records loaded from disk,
and exports them as aging reports, XLSX workbooks or Google Sheets.

Payloads may hold a single invoice, an array of invoices, or a query
result envelope ({"records": [...], "totalCount": ...}).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Debug().
			Str("version", version).
			Msg("platformsdk executed")

		fmt.Println("Welcome to platformsdk!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

// Execute runs the root command with the loaded configuration.
func Execute(cfg *config.Config) {
	log := logger.WithComponent("cmd")

	if cfg != nil {
		appConfig = cfg
	}

	if err := rootCmd.Execute(); err != nil {
		log.Debug().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
