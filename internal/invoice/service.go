// Package invoice loads invoice records exported from the platform API and
// checks them for internal consistency.
//
// Accepted payload shapes:
//   - a single invoice object
//   - an array of invoice objects
//   - a query result envelope: {"records": [...], "totalCount": n, "pageSize": n, "pageNumber": n}
//
// Records are decoded leniently through models.InvoiceSchema: fields whose
// values do not fit their declared type are dropped and reported as issues,
// never as errors. Only input that is not JSON, or a record that is not a
// JSON object, fails the load.
//
// Related records can be side-loaded from a directory holding any of
// accounts.json, connections.json, contacts.json, users.json, addresses.json,
// lines.json, payments.json, notes.json, attachments.json, credit_memos.json,
// custom_field_values.json and custom_field_definitions.json, each a JSON
// array or a query result envelope.
package invoice

import (
	"context"
	"io"

	"platformsdk/pkg/models"
	"platformsdk/pkg/record"
)

// DefaultMaxPayloadBytes is the size limit used when none is configured.
const DefaultMaxPayloadBytes = 20 * 1024 * 1024

// Loader defines the interface for invoice loading services.
type Loader interface {
	// Load decodes every invoice in the payload.
	Load(ctx context.Context, r io.Reader) (*Batch, error)

	// LoadFile decodes every invoice in the named file.
	LoadFile(ctx context.Context, path string) (*Batch, error)
}

// Decoded is one invoice together with what was learned while decoding it.
type Decoded struct {
	// Invoice is the decoded record.
	Invoice *models.Invoice

	// Issues lists the fields dropped because their values did not fit.
	Issues record.FieldErrors

	// Source is the file the invoice came from (if available).
	Source string

	// Index is the position of the invoice in its payload.
	Index int
}

// Batch is the result of loading one payload.
type Batch struct {
	Invoices []Decoded

	// Page carries the envelope metadata when the payload was a query result.
	Page *Page
}

// Page is the paging metadata of a query result envelope.
type Page struct {
	TotalCount int `json:"totalCount"`
	PageSize   int `json:"pageSize"`
	PageNumber int `json:"pageNumber"`
}

// IssueCount returns the number of dropped fields across the batch.
func (b *Batch) IssueCount() int {
	n := 0
	for _, d := range b.Invoices {
		n += len(d.Issues)
	}
	return n
}

// Records returns the decoded invoices without their metadata.
func (b *Batch) Records() []*models.Invoice {
	out := make([]*models.Invoice, len(b.Invoices))
	for i, d := range b.Invoices {
		out[i] = d.Invoice
	}
	return out
}
