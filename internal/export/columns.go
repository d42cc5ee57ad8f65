// Package export renders decoded invoices as spreadsheet rows. The same
// column table feeds the XLSX writer and the Google Sheets writer.
package export

import (
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"platformsdk/pkg/models"
	"platformsdk/pkg/record"
)

// Row is one exported line: an invoice, or the file that failed to produce one.
type Row struct {
	Source   string
	Invoice  *models.Invoice
	Status   string
	Issues   int
	Warnings int
	Err      error
}

// Column maps a row to one spreadsheet cell.
type Column struct {
	Header string
	Value  func(r Row) any
}

// Columns is the exported column table, in sheet order.
var Columns = []Column{
	{Header: "File", Value: func(r Row) any { return r.Source }},
	{Header: "Invoice ID", Value: str(func(inv *models.Invoice) *string { return inv.InvoiceID })},
	{Header: "ERP Key", Value: str(func(inv *models.Invoice) *string { return inv.ErpKey })},
	{Header: "Reference", Value: str(func(inv *models.Invoice) *string { return inv.ReferenceCode })},
	{Header: "Type", Value: func(r Row) any {
		if r.Invoice == nil {
			return ""
		}
		return string(r.Invoice.Type())
	}},
	{Header: "Status", Value: func(r Row) any {
		if r.Invoice == nil {
			return ""
		}
		return string(r.Invoice.Status())
	}},
	{Header: "Customer", Value: func(r Row) any {
		if r.Invoice == nil {
			return ""
		}
		if c := r.Invoice.Connection(); c != nil && c.CompanyName != "" {
			return c.CompanyName
		}
		return record.Value(r.Invoice.CustomerID)
	}},
	{Header: "Currency", Value: str(func(inv *models.Invoice) *string { return inv.CurrencyCode })},
	{Header: "Total", Value: amount(func(a models.InvoiceAmounts) decimal.NullDecimal { return a.Total })},
	{Header: "Sales Tax", Value: amount(func(a models.InvoiceAmounts) decimal.NullDecimal { return a.SalesTax })},
	{Header: "Discount", Value: amount(func(a models.InvoiceAmounts) decimal.NullDecimal { return a.Discount })},
	{Header: "Outstanding", Value: amount(func(a models.InvoiceAmounts) decimal.NullDecimal { return a.OutstandingBalance })},
	{Header: "Invoice Date", Value: date(func(inv *models.Invoice) *record.Date { return inv.InvoiceDate })},
	{Header: "Due Date", Value: date(func(inv *models.Invoice) *record.Date { return inv.PaymentDueDate })},
	{Header: "Closed Date", Value: date(func(inv *models.Invoice) *record.Date { return inv.InvoiceClosedDate })},
	{Header: "Voided", Value: flag(func(inv *models.Invoice) *bool { return inv.IsVoided })},
	{Header: "In Dispute", Value: flag(func(inv *models.Invoice) *bool { return inv.InDispute })},
	{Header: "Issues", Value: func(r Row) any { return r.Issues }},
	{Header: "Warnings", Value: func(r Row) any { return r.Warnings }},
	{Header: "Result", Value: func(r Row) any {
		if r.Err != nil {
			return "Error: " + r.Err.Error()
		}
		return r.Status
	}},
}

// Headers returns the column headers in sheet order.
func Headers() []any {
	out := make([]any, len(Columns))
	for i, c := range Columns {
		out[i] = c.Header
	}
	return out
}

// Values returns the cells of r in sheet order.
func Values(r Row) []any {
	out := make([]any, len(Columns))
	for i, c := range Columns {
		out[i] = c.Value(r)
	}
	return out
}

// LastColumn returns the letter of the last exported column, e.g. "T".
func LastColumn() string {
	name, err := excelize.ColumnNumberToName(len(Columns))
	if err != nil {
		panic(err)
	}
	return name
}

// ColumnLetter returns the letter of the column with the given header.
func ColumnLetter(header string) (string, bool) {
	for i, c := range Columns {
		if c.Header == header {
			name, err := excelize.ColumnNumberToName(i + 1)
			return name, err == nil
		}
	}
	return "", false
}

func str(field func(*models.Invoice) *string) func(Row) any {
	return func(r Row) any {
		if r.Invoice == nil {
			return ""
		}
		return record.Value(field(r.Invoice))
	}
}

func amount(field func(models.InvoiceAmounts) decimal.NullDecimal) func(Row) any {
	return func(r Row) any {
		if r.Invoice == nil {
			return ""
		}
		d := field(r.Invoice.Amounts())
		if !d.Valid {
			return ""
		}
		return d.Decimal.InexactFloat64()
	}
}

func date(field func(*models.Invoice) *record.Date) func(Row) any {
	return func(r Row) any {
		if r.Invoice == nil {
			return ""
		}
		d := field(r.Invoice)
		if d == nil {
			return ""
		}
		return d.String()
	}
}

func flag(field func(*models.Invoice) *bool) func(Row) any {
	return func(r Row) any {
		if r.Invoice == nil {
			return ""
		}
		b := field(r.Invoice)
		if b == nil {
			return ""
		}
		return *b
	}
}
