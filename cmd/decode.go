package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"platformsdk/internal/invoice"
	"platformsdk/internal/logger"
	"platformsdk/pkg/models"
	"platformsdk/pkg/record"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [json-file]",
	Short: "Decode invoice records and print them as normalized JSON",
	Long: `Decode invoice records returned by the platform API and print them in
canonical field order.

Fields whose values do not fit their declared type are dropped and listed
in the per-record report. Related records can be attached from a directory
of side files (accounts.json, contacts.json, lines.json, ...) with --related;
only relations named by --include (or DEFAULT_INCLUDES) are resolved and kept.`,
	Example: `  # Decode a query result and print it
  platformsdk decode invoices.json

  # Attach customers and lines from exported side files
  platformsdk decode invoices.json --related ./related --include customer,lines

  # Run the consistency check and save the result
  platformsdk decode invoices.json --check -o decoded.json`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

// DecodeOutput represents the JSON output structure of the decode command
type DecodeOutput struct {
	// Invoices holds the decoded records in payload order
	Invoices []*models.Invoice `json:"invoices"`

	// Reports holds what was learned about each record while decoding
	Reports []RecordReport `json:"reports"`

	// Page carries the envelope metadata when the payload was a query result
	Page *invoice.Page `json:"page,omitempty"`

	// Metadata contains processing information
	Metadata DecodeMetadata `json:"metadata"`
}

// RecordReport describes one decoded record
type RecordReport struct {
	Index     int                  `json:"index"`
	InvoiceID string               `json:"invoice_id,omitempty"`
	Issues    []*record.FieldError `json:"issues,omitempty"`
	Warnings  []string             `json:"warnings,omitempty"`
	Resolved  []string             `json:"resolved,omitempty"`
}

// DecodeMetadata contains information about the decode run
type DecodeMetadata struct {
	FileName           string        `json:"file_name"`
	Records            int           `json:"records"`
	Issues             int           `json:"issues"`
	Include            string        `json:"include,omitempty"`
	ProcessedAt        time.Time     `json:"processed_at"`
	ProcessingDuration time.Duration `json:"processing_duration"`
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	decodeCmd.Flags().String("related", "", "Directory with related record files")
	decodeCmd.Flags().String("include", "", "Comma separated relations to resolve and keep (default: DEFAULT_INCLUDES)")
	decodeCmd.Flags().Bool("check", false, "Check amounts, balances and dates for consistency")
	decodeCmd.Flags().Int("timeout", 60, "Processing timeout in seconds")
}

func runDecode(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("decode")

	outputPath, _ := cmd.Flags().GetString("output")
	relatedDir, _ := cmd.Flags().GetString("related")
	includeFlag, _ := cmd.Flags().GetString("include")
	check, _ := cmd.Flags().GetBool("check")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	path := args[0]

	includes, explicit, err := parseIncludes(includeFlag)
	if err != nil {
		return err
	}

	log.Info().
		Str("file", path).
		Str("output", outputPath).
		Str("related", relatedDir).
		Str("include", includes.QueryValue()).
		Bool("check", check).
		Msg("Starting invoice decoding")

	ctx, cancel := createContext(time.Duration(timeoutSecs)*time.Second, log)
	defer cancel()

	startTime := time.Now()
	loader := newLoader()

	batch, err := loader.LoadFile(ctx, path)
	if err != nil {
		return handleLoadError(err, log)
	}

	resolver, err := loadResolver(ctx, loader, relatedDir, log)
	if err != nil {
		return err
	}

	output := DecodeOutput{
		Invoices: batch.Records(),
		Reports:  make([]RecordReport, len(batch.Invoices)),
		Page:     batch.Page,
	}

	checker := invoice.NewConsistencyCheck()
	for i, d := range batch.Invoices {
		report := RecordReport{
			Index:     d.Index,
			InvoiceID: d.Invoice.ID(),
			Issues:    d.Issues,
		}
		if resolver != nil {
			report.Resolved = resolver.Resolve(d.Invoice, includes)
		}
		if explicit {
			models.InvoiceSchema.Prune(d.Invoice, includes)
		}
		if check {
			result := checker.Check(d.Invoice)
			report.Warnings = result.Warnings
			if result.HasDiscrepancy {
				invLog := logger.WithInvoice("decode", report.InvoiceID)
				invLog.Warn().
					Str("max_discrepancy", result.MaxDiscrepancy.StringFixed(2)).
					Msg("Invoice amounts are inconsistent")
			}
		}
		output.Reports[i] = report
	}

	output.Metadata = DecodeMetadata{
		FileName:           path,
		Records:            len(batch.Invoices),
		Issues:             batch.IssueCount(),
		Include:            includes.QueryValue(),
		ProcessedAt:        startTime,
		ProcessingDuration: time.Since(startTime),
	}

	if err := writeJSON(output, outputPath, cmd.OutOrStdout(), log); err != nil {
		return err
	}

	log.Info().
		Int("records", output.Metadata.Records).
		Int("issues", output.Metadata.Issues).
		Dur("duration", output.Metadata.ProcessingDuration).
		Msg("Invoice decoding completed")

	if outputPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Decoded %d invoice(s) into %s\n", len(batch.Invoices), outputPath)
	}
	return nil
}
