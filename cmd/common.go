package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"platformsdk/internal/invoice"
	"platformsdk/pkg/models"
	"platformsdk/pkg/record"
)

// createContext creates a context with timeout and signal handling
func createContext(timeout time.Duration, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// newLoader creates the invoice loader from the configuration
func newLoader() *invoice.JSONLoader {
	return invoice.NewJSONLoader(appConfig.MaxPayloadBytes)
}

// parseIncludes reads the --include flag, falling back to DEFAULT_INCLUDES.
// It reports whether any include list was given at all.
func parseIncludes(raw string) (record.Includes, bool, error) {
	if raw == "" {
		raw = appConfig.DefaultIncludes
	}
	if raw == "" {
		return nil, false, nil
	}
	includes, err := models.InvoiceSchema.ParseIncludes(raw)
	if err != nil {
		return nil, false, fmt.Errorf("invalid --include: %w. Valid names: %s",
			err, models.InvoiceSchema.IncludeNames().QueryValue())
	}
	return includes, true, nil
}

// loadResolver reads related records from dir. An empty dir yields nil.
func loadResolver(ctx context.Context, loader *invoice.JSONLoader, dir string, log zerolog.Logger) (*models.Resolver, error) {
	if dir == "" {
		return nil, nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("related records directory not found: %s", dir)
	}
	related, err := loader.LoadRelated(ctx, dir)
	if err != nil {
		return nil, handleLoadError(err, log)
	}
	return models.NewResolver(related), nil
}

// handleLoadError provides user-friendly error messages for loading failures
func handleLoadError(err error, log zerolog.Logger) error {
	log.Debug().Err(err).Msg("Invoice loading failed")

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("loading timed out. Try increasing --timeout")
	case errors.Is(err, invoice.ErrContextCanceled), errors.Is(err, context.Canceled):
		return fmt.Errorf("loading was canceled")
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("file not found: %w", err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("permission denied: %w", err)
	case errors.Is(err, invoice.ErrEmptyPayload):
		return fmt.Errorf("the file is empty: %w", err)
	case errors.Is(err, invoice.ErrPayloadTooLarge):
		return fmt.Errorf("the payload is larger than MAX_PAYLOAD_BYTES (%d bytes): %w", appConfig.MaxPayloadBytes, err)
	case errors.Is(err, invoice.ErrUnsupportedFormat):
		return fmt.Errorf("expected an invoice object, an array of invoices or a query result envelope: %w", err)
	case errors.Is(err, invoice.ErrInvalidPayload):
		return fmt.Errorf("the file is not valid invoice JSON: %w", err)
	default:
		return fmt.Errorf("invoice loading failed: %w", err)
	}
}

// writeJSON formats and outputs v as indented JSON to outputPath or stdout
func writeJSON(v interface{}, outputPath string, stdout io.Writer, log zerolog.Logger) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal output to JSON")
		return fmt.Errorf("failed to create JSON output: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			log.Error().
				Err(err).
				Str("output_file", outputPath).
				Msg("Failed to write output file")
			return fmt.Errorf("failed to write output file: %w", err)
		}

		log.Info().
			Str("output_file", outputPath).
			Int("bytes", len(jsonData)).
			Msg("Output written to file")
		return nil
	}

	if _, err := stdout.Write(append(jsonData, '\n')); err != nil {
		log.Error().Err(err).Msg("Failed to write to stdout")
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
