// Package aging groups outstanding invoice balances by how long they are overdue.
package aging

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"platformsdk/pkg/models"
	"platformsdk/pkg/record"
)

// Bucket is an overdue range.
type Bucket int

const (
	Current Bucket = iota // not yet due, or no due date
	Days1To30
	Days31To60
	Days61To90
	Days91Plus
)

// Buckets lists every bucket in report order.
var Buckets = []Bucket{Current, Days1To30, Days31To60, Days61To90, Days91Plus}

var bucketNames = [...]string{"Current", "1-30", "31-60", "61-90", "91+"}

func (b Bucket) String() string {
	if b < Current || b > Days91Plus {
		return "unknown"
	}
	return bucketNames[b]
}

// UnknownCurrency groups invoices without a currency code.
const UnknownCurrency = "N/A"

// BucketFor returns the bucket of an invoice due on due, as of asOf.
func BucketFor(due *record.Date, asOf record.Date) Bucket {
	if due == nil || due.IsZero() {
		return Current
	}
	days := due.DaysUntil(asOf)
	switch {
	case days <= 0:
		return Current
	case days <= 30:
		return Days1To30
	case days <= 60:
		return Days31To60
	case days <= 90:
		return Days61To90
	default:
		return Days91Plus
	}
}

// Row holds the balances of one currency.
type Row struct {
	Currency string
	Amounts  [len(bucketNames)]decimal.Decimal
	Total    decimal.Decimal
	Count    int
}

// Amount returns the balance in bucket b.
func (r *Row) Amount(b Bucket) decimal.Decimal {
	return r.Amounts[b]
}

// Report is an aging report as of one date.
type Report struct {
	AsOf record.Date
	Rows []Row // sorted by currency

	// Skipped counts invoices left out: voided, excluded from aging,
	// closed, or without an outstanding balance.
	Skipped int
}

// Row returns the row of the given currency.
func (r *Report) Row(currency string) (Row, bool) {
	for _, row := range r.Rows {
		if row.Currency == currency {
			return row, true
		}
	}
	return Row{}, false
}

// Include reports whether an invoice takes part in aging.
func Include(inv *models.Invoice) bool {
	if inv.Voided() || inv.ExcludedFromAging() || inv.Status() == models.InvoiceStatusClosed {
		return false
	}
	balance := inv.Amounts().OutstandingBalance
	return balance.Valid && !balance.Decimal.IsZero()
}

// Build ages the outstanding balances of invoices as of asOf.
func Build(invoices []*models.Invoice, asOf record.Date) *Report {
	report := &Report{AsOf: asOf}
	rows := make(map[string]*Row)

	for _, inv := range invoices {
		if inv == nil || !Include(inv) {
			report.Skipped++
			continue
		}

		currency := strings.ToUpper(strings.TrimSpace(record.Value(inv.CurrencyCode)))
		if currency == "" {
			currency = UnknownCurrency
		}
		row, ok := rows[currency]
		if !ok {
			row = &Row{Currency: currency}
			rows[currency] = row
		}

		balance := inv.Amounts().OutstandingBalance.Decimal
		b := BucketFor(inv.PaymentDueDate, asOf)
		row.Amounts[b] = row.Amounts[b].Add(balance)
		row.Total = row.Total.Add(balance)
		row.Count++
	}

	for _, row := range rows {
		report.Rows = append(report.Rows, *row)
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].Currency < report.Rows[j].Currency
	})
	return report
}
