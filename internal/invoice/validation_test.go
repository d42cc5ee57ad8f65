package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platformsdk/pkg/models"
)

func decode(t *testing.T, payload string) *models.Invoice {
	t.Helper()
	inv, issues, err := models.DecodeInvoice([]byte(payload))
	require.NoError(t, err)
	require.Empty(t, issues)
	return inv
}

func TestConsistentInvoice(t *testing.T) {
	inv := decode(t, `{
		"invoice_id": "inv-1",
		"invoice_status_code": "Open",
		"total_amount": 110.10,
		"sales_tax_amount": 10.10,
		"discount_amount": 5,
		"outstanding_balance_amount": 60.10,
		"invoice_date": "2022-01-01",
		"payment_due_date": "2022-01-31",
		"lines": [
			{"invoice_line_id": "l-1", "total_amount": 70},
			{"invoice_line_id": "l-2", "unit_price": 17.5, "quantity": 2}
		],
		"payments": [{"payment_applied_id": "p-1", "applied_amount": 30}],
		"credit_memos": [{"credit_memo_applied_id": "c-1", "credit_memo_applied_amount": 20}]
	}`)

	result := NewConsistencyCheck().Check(inv)
	assert.True(t, result.OK(), "warnings: %v", result.Warnings)
	assert.False(t, result.HasDiscrepancy)
	assert.Equal(t, "inv-1", result.InvoiceID)
}

func TestLineTotalMismatch(t *testing.T) {
	inv := decode(t, `{"total_amount": 100, "sales_tax_amount": 10, "lines": [{"total_amount": 80}]}`)

	result := NewConsistencyCheck().Check(inv)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Lines(80.00) + Tax(10.00) - Discount(0.00) = 90.00, but Total=100.00")
	assert.True(t, result.HasDiscrepancy)
	assert.True(t, result.MaxDiscrepancy.Equal(decimal.NewFromInt(10)))
}

func TestRoundingWithinTolerance(t *testing.T) {
	inv := decode(t, `{"total_amount": 100.01, "lines": [{"total_amount": 33.33}, {"total_amount": 33.33}, {"total_amount": 33.33}]}`)
	assert.True(t, NewConsistencyCheck().Check(inv).OK())
}

func TestBalanceChecks(t *testing.T) {
	t.Run("payments do not explain balance", func(t *testing.T) {
		inv := decode(t, `{"total_amount": 100, "outstanding_balance_amount": 50, "payments": [{"applied_amount": 20}]}`)
		result := NewConsistencyCheck().Check(inv)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "Total(100.00) - Applied(20.00) = 80.00, but OutstandingBalance=50.00")
	})

	t.Run("no payments embedded", func(t *testing.T) {
		inv := decode(t, `{"total_amount": 100, "outstanding_balance_amount": 50}`)
		assert.True(t, NewConsistencyCheck().Check(inv).OK())
	})

	t.Run("balance above total", func(t *testing.T) {
		inv := decode(t, `{"total_amount": 100, "outstanding_balance_amount": 150}`)
		result := NewConsistencyCheck().Check(inv)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "exceeds total")
	})
}

func TestStatusChecks(t *testing.T) {
	inv := decode(t, `{"invoice_status_code": "Closed", "is_voided": true, "outstanding_balance_amount": 12}`)
	result := NewConsistencyCheck().Check(inv)
	assert.Len(t, result.Warnings, 2)
	assert.True(t, result.MaxDiscrepancy.Equal(decimal.NewFromInt(12)))

	inv = decode(t, `{"invoice_status_code": "Open", "invoice_date": "2022-01-10", "invoice_closed_date": "2022-01-05"}`)
	result = NewConsistencyCheck().Check(inv)
	assert.Equal(t, []string{
		"Invoice is Open but has closed date 2022-01-05",
		"Closed date 2022-01-05 is before invoice date 2022-01-10",
	}, result.Warnings)
	assert.False(t, result.HasDiscrepancy)
}

func TestDueDateBeforeInvoiceDate(t *testing.T) {
	inv := decode(t, `{"invoice_date": "2022-03-01", "payment_due_date": "2022-02-01"}`)
	result := NewConsistencyCheck().Check(inv)
	assert.Equal(t, []string{"Payment due date 2022-02-01 is before invoice date 2022-03-01"}, result.Warnings)
}

func TestEmptyInvoiceIsConsistent(t *testing.T) {
	assert.True(t, NewConsistencyCheck().Check(&models.Invoice{}).OK())
}
