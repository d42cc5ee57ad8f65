package invoice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"platformsdk/internal/logger"
	"platformsdk/pkg/models"
)

// JSONLoader reads invoice payloads from JSON files or streams.
type JSONLoader struct {
	maxBytes int64
	log      zerolog.Logger
}

// NewJSONLoader creates a loader enforcing the given payload size limit.
// A limit of zero or less selects DefaultMaxPayloadBytes.
func NewJSONLoader(maxBytes int64) *JSONLoader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxPayloadBytes
	}
	return &JSONLoader{
		maxBytes: maxBytes,
		log:      logger.WithComponent("invoice-loader"),
	}
}

var _ Loader = (*JSONLoader)(nil)

// Load decodes every invoice in the payload read from r.
func (l *JSONLoader) Load(ctx context.Context, r io.Reader) (*Batch, error) {
	const op = "Load"

	if err := ctx.Err(); err != nil {
		return nil, NewLoadError(op, ErrContextCanceled, err.Error())
	}

	data, err := l.read(r)
	if err != nil {
		return nil, WrapLoadError(op, err, "")
	}

	raws, page, err := splitRecords(data)
	if err != nil {
		le := NewLoadError(op, err, "")
		le.Size = int64(len(data))
		return nil, le
	}

	batch := &Batch{Invoices: make([]Decoded, 0, len(raws)), Page: page}
	for i, raw := range raws {
		if err := ctx.Err(); err != nil {
			return nil, NewLoadError(op, ErrContextCanceled, fmt.Sprintf("after %d of %d records", i, len(raws)))
		}

		inv, issues, err := models.DecodeInvoice(raw)
		if err != nil {
			return nil, NewLoadError(op, fmt.Errorf("%w: %v", ErrInvalidPayload, err), fmt.Sprintf("record %d", i))
		}
		if len(issues) > 0 {
			l.log.Warn().
				Str("invoice_id", inv.ID()).
				Int("index", i).
				Strs("fields", issues.Fields()).
				Msg("Dropped fields with unexpected values")
		}
		batch.Invoices = append(batch.Invoices, Decoded{Invoice: inv, Issues: issues, Index: i})
	}

	l.log.Debug().
		Int("records", len(batch.Invoices)).
		Int("issues", batch.IssueCount()).
		Bool("envelope", page != nil).
		Int("size_bytes", len(data)).
		Msg("Payload decoded")

	return batch, nil
}

// LoadFile decodes every invoice in the named file.
func (l *JSONLoader) LoadFile(ctx context.Context, path string) (*Batch, error) {
	const op = "LoadFile"

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Op: op, Err: err, Path: path}
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > l.maxBytes {
		return nil, &LoadError{Op: op, Err: ErrPayloadTooLarge, Path: path, Size: info.Size()}
	}

	batch, err := l.Load(ctx, f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Op: op, Err: err, Path: path}
	}

	for i := range batch.Invoices {
		batch.Invoices[i].Source = path
	}
	return batch, nil
}

// LoadRelated reads the side-loaded related records found in dir. Missing
// files are skipped; a present file that cannot be read or decoded fails
// the load.
func (l *JSONLoader) LoadRelated(ctx context.Context, dir string) (models.Related, error) {
	var rel models.Related
	files := []struct {
		name string
		load func([]json.RawMessage) error
	}{
		{"accounts.json", into(&rel.Accounts)},
		{"connections.json", into(&rel.Connections)},
		{"contacts.json", into(&rel.Contacts)},
		{"users.json", into(&rel.Users)},
		{"addresses.json", into(&rel.Addresses)},
		{"lines.json", into(&rel.Lines)},
		{"payments.json", into(&rel.Payments)},
		{"notes.json", into(&rel.Notes)},
		{"attachments.json", into(&rel.Attachments)},
		{"credit_memos.json", into(&rel.CreditMemos)},
		{"custom_field_values.json", into(&rel.CustomFieldValues)},
		{"custom_field_definitions.json", into(&rel.CustomFieldDefinitions)},
	}

	loaded := 0
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return models.Related{}, NewLoadError("LoadRelated", ErrContextCanceled, err.Error())
		}

		path := filepath.Join(dir, file.name)
		raws, err := l.readRecords(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return models.Related{}, err
		}
		if err := file.load(raws); err != nil {
			return models.Related{}, &LoadError{
				Op:   "LoadRelated",
				Err:  fmt.Errorf("%w: %v", ErrInvalidPayload, err),
				Path: path,
			}
		}
		loaded++
		l.log.Debug().Str("file", file.name).Int("records", len(raws)).Msg("Related records loaded")
	}

	l.log.Info().Str("dir", dir).Int("files", loaded).Msg("Related records ready")
	return rel, nil
}

func (l *JSONLoader) readRecords(path string) ([]json.RawMessage, error) {
	const op = "LoadRelated"

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, &LoadError{Op: op, Err: err, Path: path}
	}
	defer f.Close()

	data, err := l.read(f)
	if err != nil {
		return nil, &LoadError{Op: op, Err: err, Path: path}
	}
	raws, _, err := splitRecords(data)
	if err != nil {
		return nil, &LoadError{Op: op, Err: err, Path: path, Size: int64(len(data))}
	}
	return raws, nil
}

// read consumes r up to the size limit.
func (l *JSONLoader) read(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, ErrPayloadTooLarge
	}
	return data, nil
}

// splitRecords separates a payload into its records. A top-level object is
// a query result envelope when it carries a "records" array, otherwise a
// single record.
func splitRecords(data []byte) ([]json.RawMessage, *Page, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil, ErrEmptyPayload
	}

	switch trimmed[0] {
	case '[':
		var raws []json.RawMessage
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		return raws, nil, nil

	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		records, ok := envelopeRecords(obj)
		if !ok {
			return []json.RawMessage{trimmed}, nil, nil
		}
		var raws []json.RawMessage
		if err := json.Unmarshal(records, &raws); err != nil {
			return nil, nil, fmt.Errorf("%w: records: %v", ErrInvalidPayload, err)
		}
		var page Page
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return nil, nil, fmt.Errorf("%w: paging: %v", ErrInvalidPayload, err)
		}
		return raws, &page, nil

	default:
		if !json.Valid(trimmed) {
			return nil, nil, ErrInvalidPayload
		}
		return nil, nil, ErrUnsupportedFormat
	}
}

func envelopeRecords(obj map[string]json.RawMessage) (json.RawMessage, bool) {
	for k, v := range obj {
		if !strings.EqualFold(k, "records") {
			continue
		}
		v = bytes.TrimSpace(v)
		if len(v) > 0 && v[0] == '[' {
			return v, true
		}
	}
	return nil, false
}

// into decodes raw records into the slice at dst.
func into[R any](dst *[]R) func([]json.RawMessage) error {
	return func(raws []json.RawMessage) error {
		out := make([]R, 0, len(raws))
		for i, raw := range raws {
			var v R
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			out = append(out, v)
		}
		*dst = out
		return nil
	}
}
