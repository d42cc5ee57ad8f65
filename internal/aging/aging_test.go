package aging

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platformsdk/pkg/models"
	"platformsdk/pkg/record"
)

func invoice(t *testing.T, payload string) *models.Invoice {
	t.Helper()
	inv, issues, err := models.DecodeInvoice([]byte(payload))
	require.NoError(t, err)
	require.Empty(t, issues)
	return inv
}

func TestBucketFor(t *testing.T) {
	asOf := record.NewDate(2022, 6, 30)
	due := func(y int, m, d int) *record.Date {
		date := record.NewDate(y, time.Month(m), d)
		return &date
	}

	cases := []struct {
		name string
		due  *record.Date
		want Bucket
	}{
		{"no due date", nil, Current},
		{"due later", due(2022, 7, 15), Current},
		{"due today", due(2022, 6, 30), Current},
		{"one day late", due(2022, 6, 29), Days1To30},
		{"thirty days late", due(2022, 5, 31), Days1To30},
		{"thirty one days late", due(2022, 5, 30), Days31To60},
		{"sixty days late", due(2022, 5, 1), Days31To60},
		{"ninety days late", due(2022, 4, 1), Days61To90},
		{"ninety one days late", due(2022, 3, 31), Days91Plus},
		{"a year late", due(2021, 6, 30), Days91Plus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BucketFor(tc.due, asOf))
		})
	}
}

func TestBuildReport(t *testing.T) {
	invoices := []*models.Invoice{
		invoice(t, `{"currency_code":"USD","outstanding_balance_amount":100,"payment_due_date":"2022-07-01"}`),
		invoice(t, `{"currency_code":"usd","outstanding_balance_amount":50.25,"payment_due_date":"2022-06-15"}`),
		invoice(t, `{"currency_code":"USD","outstanding_balance_amount":10,"payment_due_date":"2022-01-01"}`),
		invoice(t, `{"currency_code":"EUR","outstanding_balance_amount":-20,"payment_due_date":"2022-05-01"}`),
		invoice(t, `{"outstanding_balance_amount":5}`),

		invoice(t, `{"currency_code":"USD","outstanding_balance_amount":999,"is_voided":true}`),
		invoice(t, `{"currency_code":"USD","outstanding_balance_amount":999,"exclude_from_aging":true}`),
		invoice(t, `{"currency_code":"USD","outstanding_balance_amount":999,"invoice_status_code":"Closed"}`),
		invoice(t, `{"currency_code":"USD","outstanding_balance_amount":0}`),
		invoice(t, `{"currency_code":"USD"}`),
		nil,
	}

	report := Build(invoices, record.NewDate(2022, 6, 30))
	assert.Equal(t, 6, report.Skipped)
	require.Len(t, report.Rows, 3)
	assert.Equal(t, []string{"EUR", UnknownCurrency, "USD"},
		[]string{report.Rows[0].Currency, report.Rows[1].Currency, report.Rows[2].Currency})

	usd, ok := report.Row("USD")
	require.True(t, ok)
	assert.Equal(t, 3, usd.Count)
	assert.True(t, usd.Amount(Current).Equal(decimal.NewFromInt(100)))
	assert.True(t, usd.Amount(Days1To30).Equal(decimal.RequireFromString("50.25")))
	assert.True(t, usd.Amount(Days91Plus).Equal(decimal.NewFromInt(10)))
	assert.True(t, usd.Total.Equal(decimal.RequireFromString("160.25")))

	eur, _ := report.Row("EUR")
	assert.True(t, eur.Amount(Days31To60).Equal(decimal.NewFromInt(-20)))

	_, ok = report.Row("GBP")
	assert.False(t, ok)
}

func TestBucketNames(t *testing.T) {
	names := make([]string, len(Buckets))
	for i, b := range Buckets {
		names[i] = b.String()
	}
	assert.Equal(t, []string{"Current", "1-30", "31-60", "61-90", "91+"}, names)
	assert.Equal(t, "unknown", Bucket(9).String())
}
