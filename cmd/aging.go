package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"platformsdk/internal/aging"
	"platformsdk/internal/logger"
	"platformsdk/pkg/record"
)

var agingCmd = &cobra.Command{
	Use:   "aging [json-file]",
	Short: "Print an aging report of outstanding invoice balances",
	Long: `Group the outstanding balances of open invoices by currency and by how
many days they are past their payment due date.

Voided invoices, invoices excluded from aging, closed invoices and invoices
without an outstanding balance are left out. Invoices without a due date
count as current.`,
	Example: `  # Age balances as of today
  platformsdk aging invoices.json

  # Age balances as of the end of the quarter and save a workbook
  platformsdk aging invoices.json --as-of 2024-03-31 --xlsx aging.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runAging,
}

func init() {
	rootCmd.AddCommand(agingCmd)

	agingCmd.Flags().String("as-of", "", "Aging date, YYYY-MM-DD (default: today)")
	agingCmd.Flags().String("xlsx", "", "Also write the report to an XLSX workbook")
	agingCmd.Flags().Int("timeout", 60, "Processing timeout in seconds")
}

// parseAsOf parses the --as-of flag, defaulting to today
func parseAsOf(raw string) (record.Date, error) {
	if raw == "" {
		return record.DateOf(time.Now()), nil
	}
	d, err := record.ParseDate(raw)
	if err != nil {
		return record.Date{}, fmt.Errorf("invalid --as-of: %w", err)
	}
	return d, nil
}

func runAging(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("aging")

	asOfFlag, _ := cmd.Flags().GetString("as-of")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	asOf, err := parseAsOf(asOfFlag)
	if err != nil {
		return err
	}

	ctx, cancel := createContext(time.Duration(timeoutSecs)*time.Second, log)
	defer cancel()

	batch, err := newLoader().LoadFile(ctx, args[0])
	if err != nil {
		return handleLoadError(err, log)
	}

	report := aging.Build(batch.Records(), asOf)
	printAgingReport(cmd.OutOrStdout(), report)

	if xlsxPath != "" {
		if err := writeWorkbook(xlsxPath, nil, report); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Workbook: %s\n", xlsxPath)
	}

	log.Info().
		Str("as_of", asOf.String()).
		Int("currencies", len(report.Rows)).
		Int("skipped", report.Skipped).
		Msg("Aging report completed")

	return nil
}

// printAgingReport renders the report as a fixed width table
func printAgingReport(out io.Writer, report *aging.Report) {
	fmt.Fprintf(out, "Aging as of %s\n", report.AsOf)
	fmt.Fprintln(out, strings.Repeat("=", 108))

	fmt.Fprintf(out, "%-8s", "Currency")
	for _, b := range aging.Buckets {
		fmt.Fprintf(out, " %14s", b)
	}
	fmt.Fprintf(out, " %14s %9s\n", "Total", "Invoices")
	fmt.Fprintln(out, strings.Repeat("-", 108))

	if len(report.Rows) == 0 {
		fmt.Fprintln(out, "No outstanding balances.")
	}
	for _, row := range report.Rows {
		fmt.Fprintf(out, "%-8s", row.Currency)
		for _, b := range aging.Buckets {
			fmt.Fprintf(out, " %14s", row.Amount(b).StringFixed(2))
		}
		fmt.Fprintf(out, " %14s %9d\n", row.Total.StringFixed(2), row.Count)
	}

	fmt.Fprintln(out, strings.Repeat("=", 108))
	if report.Skipped > 0 {
		fmt.Fprintf(out, "Skipped: %d invoice(s) voided, excluded, closed or without balance\n", report.Skipped)
	}
}
