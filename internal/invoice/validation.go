package invoice

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"platformsdk/internal/logger"
	"platformsdk/pkg/models"
)

// DefaultTolerance is the largest amount difference treated as rounding.
var DefaultTolerance = decimal.New(2, -2)

// ConsistencyCheck compares the amounts, dates and status of an invoice
// against each other and against its embedded lines, payments and credit
// memos. It only produces warnings: platform data is reported, never fixed.
type ConsistencyCheck struct {
	log       zerolog.Logger
	tolerance decimal.Decimal
}

// NewConsistencyCheck creates a consistency check using DefaultTolerance.
func NewConsistencyCheck() *ConsistencyCheck {
	return &ConsistencyCheck{
		log:       logger.WithComponent("consistency-check"),
		tolerance: DefaultTolerance,
	}
}

// ConsistencyResult contains the warnings found on one invoice.
type ConsistencyResult struct {
	InvoiceID      string          `json:"invoice_id"`
	Warnings       []string        `json:"warnings"`
	HasDiscrepancy bool            `json:"has_discrepancy"`
	MaxDiscrepancy decimal.Decimal `json:"max_discrepancy"` // Largest amount difference found
}

// OK reports whether no warnings were raised.
func (r *ConsistencyResult) OK() bool {
	return len(r.Warnings) == 0
}

// Check runs every rule against inv.
func (c *ConsistencyCheck) Check(inv *models.Invoice) *ConsistencyResult {
	result := &ConsistencyResult{
		InvoiceID: inv.ID(),
		Warnings:  []string{},
	}
	amounts := inv.Amounts()

	c.checkLines(inv, amounts, result)
	c.checkBalance(inv, amounts, result)
	c.checkStatus(inv, amounts, result)
	c.checkDates(inv, result)

	if result.OK() {
		c.log.Debug().Str("invoice_id", result.InvoiceID).Msg("Invoice is consistent")
	} else {
		c.log.Warn().
			Str("invoice_id", result.InvoiceID).
			Bool("has_discrepancy", result.HasDiscrepancy).
			Str("max_discrepancy", result.MaxDiscrepancy.StringFixed(2)).
			Strs("warnings", result.Warnings).
			Msg("Invoice consistency check raised warnings")
	}
	return result
}

// checkLines verifies that lines + sales tax - discount add up to the total.
func (c *ConsistencyCheck) checkLines(inv *models.Invoice, a models.InvoiceAmounts, result *ConsistencyResult) {
	if len(inv.Lines) == 0 || !a.Total.Valid {
		return
	}

	sum := decimal.Zero
	for _, line := range inv.Lines {
		switch {
		case line.TotalAmount != nil:
			sum = sum.Add(decimal.NewFromFloat(*line.TotalAmount))
		case line.UnitPrice != nil && line.Quantity != nil:
			sum = sum.Add(decimal.NewFromFloat(*line.UnitPrice).Mul(decimal.NewFromFloat(*line.Quantity)))
		}
	}

	calculated := sum
	if a.SalesTax.Valid {
		calculated = calculated.Add(a.SalesTax.Decimal)
	}
	if a.Discount.Valid {
		calculated = calculated.Sub(a.Discount.Decimal)
	}

	c.compare(result, "line total", calculated, a.Total.Decimal,
		fmt.Sprintf("Lines(%s) + Tax(%s) - Discount(%s) = %s, but Total=%s",
			sum.StringFixed(2),
			valueOrZero(a.SalesTax).StringFixed(2),
			valueOrZero(a.Discount).StringFixed(2),
			calculated.StringFixed(2),
			a.Total.Decimal.StringFixed(2)))
}

// checkBalance verifies the outstanding balance against the total less the
// embedded payments and credit memos.
func (c *ConsistencyCheck) checkBalance(inv *models.Invoice, a models.InvoiceAmounts, result *ConsistencyResult) {
	if !a.Total.Valid || !a.OutstandingBalance.Valid {
		return
	}

	if a.Total.Decimal.Sign() >= 0 && a.OutstandingBalance.Decimal.Sub(a.Total.Decimal).GreaterThan(c.tolerance) {
		c.warn(result, a.OutstandingBalance.Decimal.Sub(a.Total.Decimal),
			fmt.Sprintf("Outstanding balance %s exceeds total %s",
				a.OutstandingBalance.Decimal.StringFixed(2), a.Total.Decimal.StringFixed(2)))
	}

	if inv.Payments == nil && inv.CreditMemos == nil {
		return
	}

	applied := decimal.Zero
	for _, p := range inv.Payments {
		if p.AppliedAmount != nil {
			applied = applied.Add(decimal.NewFromFloat(*p.AppliedAmount))
		}
	}
	for _, cm := range inv.CreditMemos {
		if cm.CreditMemoAppliedAmount != nil {
			applied = applied.Add(decimal.NewFromFloat(*cm.CreditMemoAppliedAmount))
		}
	}

	expected := a.Total.Decimal.Sub(applied)
	c.compare(result, "outstanding balance", expected, a.OutstandingBalance.Decimal,
		fmt.Sprintf("Total(%s) - Applied(%s) = %s, but OutstandingBalance=%s",
			a.Total.Decimal.StringFixed(2),
			applied.StringFixed(2),
			expected.StringFixed(2),
			a.OutstandingBalance.Decimal.StringFixed(2)))
}

// checkStatus verifies that the status, void flag and balance agree.
func (c *ConsistencyCheck) checkStatus(inv *models.Invoice, a models.InvoiceAmounts, result *ConsistencyResult) {
	balance := valueOrZero(a.OutstandingBalance)
	open := !balance.Abs().LessThanOrEqual(c.tolerance)

	if inv.Status() == models.InvoiceStatusClosed && open {
		c.warn(result, balance.Abs(),
			fmt.Sprintf("Invoice is Closed but has outstanding balance %s", balance.StringFixed(2)))
	}
	if inv.Voided() && open {
		c.warn(result, balance.Abs(),
			fmt.Sprintf("Invoice is voided but has outstanding balance %s", balance.StringFixed(2)))
	}
	if inv.Status() == models.InvoiceStatusOpen && inv.InvoiceClosedDate != nil {
		c.warn(result, decimal.Zero,
			fmt.Sprintf("Invoice is Open but has closed date %s", inv.InvoiceClosedDate))
	}
}

// checkDates verifies that closing and due dates do not precede the invoice date.
func (c *ConsistencyCheck) checkDates(inv *models.Invoice, result *ConsistencyResult) {
	if inv.InvoiceDate == nil {
		return
	}
	if inv.InvoiceClosedDate != nil && inv.InvoiceClosedDate.Before(*inv.InvoiceDate) {
		c.warn(result, decimal.Zero,
			fmt.Sprintf("Closed date %s is before invoice date %s", inv.InvoiceClosedDate, inv.InvoiceDate))
	}
	if inv.PaymentDueDate != nil && inv.PaymentDueDate.Before(*inv.InvoiceDate) {
		c.warn(result, decimal.Zero,
			fmt.Sprintf("Payment due date %s is before invoice date %s", inv.PaymentDueDate, inv.InvoiceDate))
	}
}

// compare warns when calculated and reported differ by more than the tolerance.
func (c *ConsistencyCheck) compare(result *ConsistencyResult, what string, calculated, reported decimal.Decimal, msg string) {
	difference := calculated.Sub(reported).Abs()
	if difference.LessThanOrEqual(c.tolerance) {
		return
	}

	c.log.Debug().
		Str("invoice_id", result.InvoiceID).
		Str("check", what).
		Str("calculated", calculated.StringFixed(2)).
		Str("reported", reported.StringFixed(2)).
		Msg("Amount discrepancy detected")

	c.warn(result, difference, fmt.Sprintf("%s (difference: %s)", msg, difference.StringFixed(2)))
}

func (c *ConsistencyCheck) warn(result *ConsistencyResult, difference decimal.Decimal, msg string) {
	result.Warnings = append(result.Warnings, msg)
	if difference.IsPositive() {
		result.HasDiscrepancy = true
		if difference.GreaterThan(result.MaxDiscrepancy) {
			result.MaxDiscrepancy = difference
		}
	}
}

func valueOrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
