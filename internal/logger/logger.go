package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string // trace, debug, info, warn, error, fatal, panic, disabled
	Format     string // json, console
	TimeFormat string // RFC3339, Unix, or custom format
	Output     string // stdout, stderr, or file path
}

// DefaultConfig returns a sensible default logging configuration.
// Logs go to stderr so stdout stays free for command output.
func DefaultConfig() LogConfig {
	return LogConfig{
		Level:      "info",
		Format:     "console",
		TimeFormat: time.RFC3339,
		Output:     "stderr",
	}
}

// Setup initializes the global logger with the provided configuration
func Setup(config LogConfig) error {
	level, err := zerolog.ParseLevel(strings.ToLower(config.Level))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	output, isFile, err := openOutput(config.Output)
	if err != nil {
		return err
	}

	log.Logger = New(output, config.Format, config.TimeFormat, isFile).With().
		Timestamp().
		Caller().
		Logger()

	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	return nil
}

// New builds an unconfigured logger writing to w in the given format.
// Unknown formats fall back to console output.
func New(w io.Writer, format, timeFormat string, noColor bool) zerolog.Logger {
	if strings.ToLower(format) == "json" {
		return zerolog.New(w)
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: timeFormat,
		NoColor:    noColor,
	})
}

func openOutput(name string) (io.Writer, bool, error) {
	switch name {
	case "", "stderr":
		return os.Stderr, false, nil
	case "stdout":
		return os.Stdout, false, nil
	}
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, false, err
	}
	return file, true, nil
}

// GetLogger returns a logger instance
func GetLogger() zerolog.Logger {
	return log.Logger
}

// WithComponent returns a logger with a component field
func WithComponent(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}

// WithInvoice returns a component logger tagged with the invoice it is working on
func WithInvoice(component, invoiceID string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Str("invoice_id", invoiceID).Logger()
}

// Warn logs a warning message
func Warn(msg string) {
	log.Warn().Msg(msg)
}

// Error logs an error message
func Error(err error, msg string) {
	log.Error().Err(err).Msg(msg)
}
