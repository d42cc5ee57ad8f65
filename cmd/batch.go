package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"platformsdk/internal/aging"
	"platformsdk/internal/export"
	"platformsdk/internal/invoice"
	"platformsdk/internal/logger"
	"platformsdk/internal/sheets"
	"platformsdk/pkg/models"
	"platformsdk/pkg/record"
)

var batchCmd = &cobra.Command{
	Use:   "batch [folder]",
	Short: "Decode every invoice file in a folder and export the results",
	Long: `Decode all JSON invoice payloads in a folder in parallel, check them for
consistency and export one row per invoice.

Every file is processed independently: a file that cannot be loaded is
reported as an error row and does not stop the batch. The results can be
written to an XLSX workbook (--xlsx) holding an Invoices sheet and an Aging
sheet, and appended to a Google Sheet when GOOGLE_SHEET_URL is set.

Environment variables:
  BATCH_WORKERS                  - Number of parallel workers (default: 12)
  GOOGLE_SHEET_URL               - Target spreadsheet for the export
  GOOGLE_SHEET_WORKSHEET         - Worksheet name (default: Invoices)
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS             - Inline JSON credentials string`,
	Example: `  # Decode a folder and write a workbook
  platformsdk batch ./exports --xlsx invoices.xlsx

  # Resolve customers from side files and append to Google Sheets
  platformsdk batch ./exports --related ./related --include customer

  # Check everything without writing to Google Sheets
  platformsdk batch ./exports --dry-run --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

// fileJob represents a single file to process
type fileJob struct {
	Path  string
	Index int
}

// fileResult represents the result of processing one file
type fileResult struct {
	Filename string
	Index    int
	Rows     []export.Row
	Status   string
	Error    error
}

// batchOptions holds what every worker shares. All of it is read-only.
type batchOptions struct {
	loader   *invoice.JSONLoader
	resolver *models.Resolver
	includes record.Includes
	explicit bool
	checker  *invoice.ConsistencyCheck
	verbose  bool
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("xlsx", "", "Write the results to an XLSX workbook")
	batchCmd.Flags().String("sheet", "", "Google Sheets worksheet name (default: GOOGLE_SHEET_WORKSHEET)")
	batchCmd.Flags().String("related", "", "Directory with related record files")
	batchCmd.Flags().String("include", "", "Comma separated relations to resolve and keep (default: DEFAULT_INCLUDES)")
	batchCmd.Flags().String("as-of", "", "Aging date for the Aging sheet, YYYY-MM-DD (default: today)")
	batchCmd.Flags().Bool("skip-existing", false, "Skip invoices whose id is already in the Google Sheet")
	batchCmd.Flags().Bool("dry-run", false, "Process files but don't write to Google Sheet")
	batchCmd.Flags().Bool("verbose", false, "Show detailed processing information")
	batchCmd.Flags().Int("timeout", 1800, "Processing timeout in seconds")
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("batch")

	folderPath := args[0]
	xlsxPath, _ := cmd.Flags().GetString("xlsx")
	sheetName, _ := cmd.Flags().GetString("sheet")
	relatedDir, _ := cmd.Flags().GetString("related")
	includeFlag, _ := cmd.Flags().GetString("include")
	asOfFlag, _ := cmd.Flags().GetString("as-of")
	skipExisting, _ := cmd.Flags().GetBool("skip-existing")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	if sheetName == "" {
		sheetName = appConfig.GoogleSheetWorksheet
	}

	folderInfo, err := os.Stat(folderPath)
	if err != nil {
		return fmt.Errorf("folder not found: %s", folderPath)
	}
	if !folderInfo.IsDir() {
		return fmt.Errorf("path is not a directory: %s", folderPath)
	}

	asOf, err := parseAsOf(asOfFlag)
	if err != nil {
		return err
	}

	includes, explicit, err := parseIncludes(includeFlag)
	if err != nil {
		return err
	}

	writeSheet := !dryRun && appConfig.GoogleSheetURL != ""
	if !dryRun && xlsxPath == "" && appConfig.GoogleSheetURL == "" {
		return fmt.Errorf("nothing to export: set GOOGLE_SHEET_URL, pass --xlsx, or use --dry-run")
	}

	log.Info().
		Str("folder", folderPath).
		Str("xlsx", xlsxPath).
		Str("sheet", sheetName).
		Str("include", includes.QueryValue()).
		Bool("dry_run", dryRun).
		Bool("verbose", verbose).
		Msg("Starting batch processing")

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, strings.Repeat("=", 80))
	fmt.Fprintln(out, "                         INVOICE BATCH PROCESSING")
	fmt.Fprintln(out, strings.Repeat("=", 80))
	fmt.Fprintf(out, "Folder: %s\n", folderPath)
	if includes != nil {
		fmt.Fprintf(out, "Include: %s\n", includes.QueryValue())
	}
	if dryRun {
		fmt.Fprintln(out, "Mode: Dry Run (no Google Sheets update)")
	}
	fmt.Fprintln(out)

	ctx, cancel := createContext(time.Duration(timeoutSecs)*time.Second, log)
	defer cancel()

	loader := newLoader()
	resolver, err := loadResolver(ctx, loader, relatedDir, log)
	if err != nil {
		return err
	}

	files, err := findJSONFiles(folderPath)
	if err != nil {
		return fmt.Errorf("failed to find JSON files: %w", err)
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No JSON files found in folder.")
		return nil
	}

	numWorkers := appConfig.BatchWorkers
	fmt.Fprintf(out, "Processing %d files with %d parallel workers...\n\n", len(files), numWorkers)

	opts := batchOptions{
		loader:   loader,
		resolver: resolver,
		includes: includes,
		explicit: explicit,
		checker:  invoice.NewConsistencyCheck(),
		verbose:  verbose,
	}
	results := processFilesInParallel(ctx, files, numWorkers, opts, out, log)

	counts := countStatuses(results)
	rows := collectRows(results)

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintln(out, "                 RESULT")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintf(out, "Successful: %d\n", counts["success"])
	if counts["warning"] > 0 {
		fmt.Fprintf(out, "With warnings: %d\n", counts["warning"])
	}
	if counts["error"] > 0 {
		fmt.Fprintf(out, "Errors: %d\n", counts["error"])
	}
	fmt.Fprintf(out, "Invoices: %d\n", countInvoices(rows))
	fmt.Fprintln(out)

	if xlsxPath != "" {
		report := aging.Build(invoicesOf(rows), asOf)
		if err := writeWorkbook(xlsxPath, rows, report); err != nil {
			return err
		}
		fmt.Fprintf(out, "Workbook: %s\n", xlsxPath)
	}

	if writeSheet {
		written, err := exportToSheet(ctx, rows, sheetName, skipExisting, log)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Sheet: %s\n", sheetName)
		fmt.Fprintf(out, "Rows added: %d\n", written)
		fmt.Fprintf(out, "URL: %s\n", appConfig.GoogleSheetURL)
	}

	fmt.Fprintln(out, strings.Repeat("=", 80))

	log.Info().
		Int("total", len(files)).
		Int("success", counts["success"]).
		Int("warnings", counts["warning"]).
		Int("errors", counts["error"]).
		Msg("Batch processing completed")

	return nil
}

// findJSONFiles finds all JSON files in the specified folder, sorted by path
func findJSONFiles(folderPath string) ([]string, error) {
	var files []string

	err := filepath.Walk(folderPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && strings.HasSuffix(strings.ToLower(info.Name()), ".json") {
			files = append(files, path)
		}

		return nil
	})

	sort.Strings(files)
	return files, err
}

// processFile decodes one file and turns every invoice in it into an export row
func processFile(ctx context.Context, path string, opts batchOptions, log zerolog.Logger) fileResult {
	name := filepath.Base(path)
	result := fileResult{
		Filename: name,
		Status:   "error",
	}

	batch, err := opts.loader.LoadFile(ctx, path)
	if err != nil {
		result.Error = err
		result.Rows = []export.Row{{Source: name, Status: "error", Err: err}}
		return result
	}

	result.Status = "success"
	for _, d := range batch.Invoices {
		if opts.resolver != nil {
			opts.resolver.Resolve(d.Invoice, opts.includes)
		}
		if opts.explicit {
			models.InvoiceSchema.Prune(d.Invoice, opts.includes)
		}

		check := opts.checker.Check(d.Invoice)
		row := export.Row{
			Source:   name,
			Invoice:  d.Invoice,
			Status:   "success",
			Issues:   len(d.Issues),
			Warnings: len(check.Warnings),
		}
		if row.Issues > 0 || row.Warnings > 0 {
			row.Status = "warning"
			result.Status = "warning"
		}
		result.Rows = append(result.Rows, row)

		if opts.verbose {
			log.Info().
				Str("file", name).
				Str("invoice_id", d.Invoice.ID()).
				Str("status", string(d.Invoice.Status())).
				Strs("issues", d.Issues.Fields()).
				Strs("warnings", check.Warnings).
				Msg("Invoice processed")
		}
	}

	return result
}

// processFilesInParallel processes files using a worker pool pattern
func processFilesInParallel(ctx context.Context, files []string, numWorkers int, opts batchOptions, out io.Writer, log zerolog.Logger) []fileResult {
	if numWorkers < 1 {
		numWorkers = 1
	}

	jobs := make(chan fileJob, len(files))
	results := make([]fileResult, len(files))

	var processedCount int
	var mu sync.Mutex

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for job := range jobs {
				log.Debug().
					Int("worker", workerID).
					Str("file", job.Path).
					Int("index", job.Index+1).
					Msg("Worker processing file")

				result := processFile(ctx, job.Path, opts, log)
				result.Index = job.Index

				// Each job owns its slot
				results[job.Index] = result

				mu.Lock()
				processedCount++
				fmt.Fprintf(out, "[%d/%d] %s - %s", processedCount, len(files), result.Filename, getStatusEmoji(result.Status))
				if result.Error != nil {
					fmt.Fprintf(out, " (%s)", result.Error.Error())
				} else {
					fmt.Fprintf(out, " (%d invoice(s))", len(result.Rows))
				}
				fmt.Fprintln(out)
				mu.Unlock()
			}
		}(w)
	}

	for i, path := range files {
		jobs <- fileJob{Path: path, Index: i}
	}
	close(jobs)

	wg.Wait()

	return results
}

// getStatusEmoji returns an emoji for the processing status
func getStatusEmoji(status string) string {
	switch status {
	case "success":
		return "✅"
	case "warning":
		return "⚠️"
	case "error":
		return "❌"
	default:
		return "❓"
	}
}

func countStatuses(results []fileResult) map[string]int {
	counts := make(map[string]int)
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}

func collectRows(results []fileResult) []export.Row {
	var rows []export.Row
	for _, r := range results {
		rows = append(rows, r.Rows...)
	}
	return rows
}

func countInvoices(rows []export.Row) int {
	n := 0
	for _, r := range rows {
		if r.Invoice != nil {
			n++
		}
	}
	return n
}

func invoicesOf(rows []export.Row) []*models.Invoice {
	var invoices []*models.Invoice
	for _, r := range rows {
		if r.Invoice != nil {
			invoices = append(invoices, r.Invoice)
		}
	}
	return invoices
}

// skipExistingRows drops invoice rows whose id is in ids. Error rows are kept.
func skipExistingRows(rows []export.Row, ids map[string]bool) []export.Row {
	kept := make([]export.Row, 0, len(rows))
	for _, r := range rows {
		if r.Invoice != nil && ids[r.Invoice.ID()] {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

func writeWorkbook(path string, rows []export.Row, report *aging.Report) error {
	wb, err := export.NewWorkbook()
	if err != nil {
		return fmt.Errorf("failed to create workbook: %w", err)
	}
	defer wb.Close()

	if rows != nil {
		if err := wb.AddInvoices("Invoices", rows); err != nil {
			return fmt.Errorf("failed to write invoices sheet: %w", err)
		}
	}
	if err := wb.AddAging("Aging", report); err != nil {
		return fmt.Errorf("failed to write aging sheet: %w", err)
	}
	if err := wb.Save(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func exportToSheet(ctx context.Context, rows []export.Row, sheetName string, skipExisting bool, log zerolog.Logger) (int, error) {
	sheetsService, err := sheets.NewSheetsService(ctx, appConfig.GoogleSheetURL)
	if err != nil {
		return 0, fmt.Errorf("failed to create Google Sheets service: %w", err)
	}

	if skipExisting {
		ids, err := sheetsService.ExistingInvoiceIDs(ctx, sheetName)
		if err != nil {
			log.Warn().Err(err).Msg("Could not read existing invoice ids, writing all rows")
		} else {
			before := len(rows)
			rows = skipExistingRows(rows, ids)
			log.Info().
				Int("skipped", before-len(rows)).
				Msg("Skipped invoices already in the sheet")
		}
	}

	if err := sheetsService.WriteRows(ctx, rows, sheetName); err != nil {
		return 0, fmt.Errorf("failed to write to Google Sheet: %w", err)
	}
	return len(rows), nil
}
