package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"platformsdk/internal/invoice"
	"platformsdk/internal/logger"
	"platformsdk/pkg/models"
	"platformsdk/pkg/record"
)

var validateCmd = &cobra.Command{
	Use:   "validate [json-file]",
	Short: "Report fields that do not fit the invoice schema",
	Long: `Validate invoice records against the invoice schema.

Two kinds of problems are reported as errors:
  - values whose JSON type does not fit the field (dropped while decoding)
  - uuid and currency fields whose values do not match their format

Type and status codes outside the documented values are reported as
warnings only, since the platform may introduce new codes at any time.
The command exits non-zero when any error is found.`,
	Example: `  # Validate an exported query result
  platformsdk validate invoices.json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().Int("timeout", 60, "Processing timeout in seconds")
}

// recordFindings holds the validation results of one record
type recordFindings struct {
	Index     int
	InvoiceID string
	Errors    record.FieldErrors
	Warnings  []string
}

// validateRecord collects decode issues, format issues and unknown codes
func validateRecord(d invoice.Decoded) recordFindings {
	f := recordFindings{
		Index:     d.Index,
		InvoiceID: d.Invoice.ID(),
	}
	f.Errors = append(f.Errors, d.Issues...)
	f.Errors = append(f.Errors, models.InvoiceSchema.Validate(d.Invoice)...)

	if t := d.Invoice.Type(); t != "" && !t.Known() {
		f.Warnings = append(f.Warnings, fmt.Sprintf("unknown invoice_type_code %q", t))
	}
	if s := d.Invoice.Status(); s != "" && !s.Known() {
		f.Warnings = append(f.Warnings, fmt.Sprintf("unknown invoice_status_code %q", s))
	}
	return f
}

// printFindings writes a human readable report and returns the error count
func printFindings(out io.Writer, findings []recordFindings) int {
	errorCount := 0
	for _, f := range findings {
		if len(f.Errors) == 0 && len(f.Warnings) == 0 {
			continue
		}
		id := f.InvoiceID
		if id == "" {
			id = "(no invoice_id)"
		}
		fmt.Fprintf(out, "Record %d: %s\n", f.Index, id)
		for _, e := range f.Errors {
			fmt.Fprintf(out, "  ❌ %s\n", e.Error())
		}
		for _, w := range f.Warnings {
			fmt.Fprintf(out, "  ⚠️ %s\n", w)
		}
		errorCount += len(f.Errors)
	}
	return errorCount
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("validate")

	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	path := args[0]

	ctx, cancel := createContext(time.Duration(timeoutSecs)*time.Second, log)
	defer cancel()

	batch, err := newLoader().LoadFile(ctx, path)
	if err != nil {
		return handleLoadError(err, log)
	}

	findings := make([]recordFindings, len(batch.Invoices))
	for i, d := range batch.Invoices {
		findings[i] = validateRecord(d)
	}

	out := cmd.OutOrStdout()
	errorCount := printFindings(out, findings)

	log.Info().
		Str("file", path).
		Int("records", len(batch.Invoices)).
		Int("errors", errorCount).
		Msg("Validation completed")

	if errorCount > 0 {
		return fmt.Errorf("%d problem(s) found in %d record(s)", errorCount, len(batch.Invoices))
	}
	fmt.Fprintf(out, "✅ %d record(s) valid\n", len(batch.Invoices))
	return nil
}
