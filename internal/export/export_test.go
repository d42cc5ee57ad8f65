package export

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"platformsdk/internal/aging"
	"platformsdk/pkg/models"
	"platformsdk/pkg/record"
)

func sampleRows(t *testing.T) []Row {
	t.Helper()
	inv, _, err := models.DecodeInvoice([]byte(`{
		"invoice_id": "inv-1",
		"invoice_type_code": "Invoice",
		"invoice_status_code": "Open",
		"customer_id": "cust-1",
		"customer": {"company_id": "cust-1", "company_name": "Globex"},
		"currency_code": "USD",
		"total_amount": 120.5,
		"outstanding_balance_amount": 20.5,
		"invoice_date": "2022-01-01",
		"payment_due_date": "2022-01-31",
		"is_voided": false
	}`))
	require.NoError(t, err)

	return []Row{
		{Source: "a.json", Invoice: inv, Status: "ok", Warnings: 1},
		{Source: "b.json", Err: errors.New("invalid invoice payload")},
	}
}

func TestValues(t *testing.T) {
	rows := sampleRows(t)
	require.Len(t, Headers(), len(Columns))
	assert.Equal(t, "T", LastColumn())

	col, ok := ColumnLetter("Outstanding")
	assert.True(t, ok)
	assert.Equal(t, "L", col)
	_, ok = ColumnLetter("Nope")
	assert.False(t, ok)

	v := Values(rows[0])
	assert.Equal(t, "a.json", v[0])
	assert.Equal(t, "inv-1", v[1])
	assert.Equal(t, "", v[2])
	assert.Equal(t, "Invoice", v[4])
	assert.Equal(t, "Globex", v[6])
	assert.Equal(t, 120.5, v[8])
	assert.Equal(t, "", v[10])
	assert.Equal(t, 20.5, v[11])
	assert.Equal(t, "2022-01-31", v[13])
	assert.Equal(t, "", v[14])
	assert.Equal(t, false, v[15])
	assert.Equal(t, "", v[16])
	assert.Equal(t, 1, v[18])
	assert.Equal(t, "ok", v[19])

	failed := Values(rows[1])
	assert.Equal(t, "b.json", failed[0])
	assert.Equal(t, "", failed[1])
	assert.Equal(t, "Error: invalid invoice payload", failed[19])
}

func TestCustomerFallsBackToID(t *testing.T) {
	id := "cust-9"
	v := Values(Row{Invoice: &models.Invoice{CustomerID: &id}})
	assert.Equal(t, "cust-9", v[6])
}

func TestWorkbook(t *testing.T) {
	rows := sampleRows(t)
	report := aging.Build(
		[]*models.Invoice{rows[0].Invoice},
		record.NewDate(2022, 3, 1),
	)

	wb, err := NewWorkbook()
	require.NoError(t, err)
	defer wb.Close()

	require.NoError(t, wb.AddInvoices("Invoices", rows))
	require.NoError(t, wb.AddAging("Aging", report))

	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Invoices", "Aging"}, f.GetSheetList())

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "platformsdk", props.Creator)
	assert.Equal(t, "Invoices", props.Title)

	got, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "File", got[0][0])
	assert.Equal(t, "Result", got[0][19])
	assert.Equal(t, "inv-1", got[1][1])
	assert.Equal(t, "120.5", got[1][8])
	assert.Equal(t, "b.json", got[2][0])

	agingRows, err := f.GetRows("Aging")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(agingRows), 2)
	assert.Equal(t, []string{"Currency", "Current", "1-30", "31-60", "61-90", "91+", "Total", "Invoices"}, agingRows[0])
	assert.Equal(t, "USD", agingRows[1][0])
	assert.Equal(t, "20.5", agingRows[1][2])
	assert.Equal(t, "1", agingRows[1][7])
}
