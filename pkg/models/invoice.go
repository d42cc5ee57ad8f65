package models

import (
	"bytes"

	"github.com/shopspring/decimal"

	"platformsdk/pkg/record"
)

// ObjectTypeInvoice is the object type notes, attachments and custom field
// definitions use to point at an invoice.
const ObjectTypeInvoice = "Invoice"

// InvoiceTypeCode identifies the kind of invoice. The platform may send
// codes beyond the known ones; they are kept as-is.
type InvoiceTypeCode string

const (
	// InvoiceTypeInvoice is an invoice sent by the company to the customer.
	InvoiceTypeInvoice InvoiceTypeCode = "Invoice"
	// InvoiceTypeAPInvoice is an invoice sent by the customer to the company.
	InvoiceTypeAPInvoice InvoiceTypeCode = "AP Invoice"
	// InvoiceTypeCreditMemo is a credit memo generated by the customer and given to the company.
	InvoiceTypeCreditMemo InvoiceTypeCode = "Credit Memo"
)

// InvoiceTypeCodes lists the documented invoice type codes.
var InvoiceTypeCodes = []InvoiceTypeCode{InvoiceTypeInvoice, InvoiceTypeAPInvoice, InvoiceTypeCreditMemo}

// Known reports whether c is one of the documented codes.
func (c InvoiceTypeCode) Known() bool {
	for _, k := range InvoiceTypeCodes {
		if c == k {
			return true
		}
	}
	return false
}

// InvoiceStatusCode identifies the workflow status of an invoice.
type InvoiceStatusCode string

const (
	// InvoiceStatusOpen marks an invoice that still needs work to complete.
	InvoiceStatusOpen InvoiceStatusCode = "Open"
	// InvoiceStatusClosed marks an invoice that is closed and resolved.
	InvoiceStatusClosed InvoiceStatusCode = "Closed"
)

// InvoiceStatusCodes lists the documented invoice status codes.
var InvoiceStatusCodes = []InvoiceStatusCode{InvoiceStatusOpen, InvoiceStatusClosed}

// Known reports whether c is one of the documented codes.
func (c InvoiceStatusCode) Known() bool {
	for _, k := range InvoiceStatusCodes {
		if c == k {
			return true
		}
	}
	return false
}

// Invoice is a financial document tying a company (the seller) to a
// customer (the counterparty). Every field is optional: nil means the
// payload did not carry it.
//
// Relations are only set when the originating request asked the API to
// embed them, or when a Resolver attached records the caller supplied.
type Invoice struct {
	// Identity
	GroupKey   *string `json:"group_key,omitempty"`   // Account scope; never changes once assigned
	InvoiceID  *string `json:"invoice_id,omitempty"`  // Assigned by the platform
	CompanyID  *string `json:"company_id,omitempty"`  // Company that created the invoice
	CustomerID *string `json:"customer_id,omitempty"` // Counterparty, customer or vendor
	ErpKey     *string `json:"erp_key,omitempty"`     // Primary key in the originating financial system

	// Codes
	PurchaseOrderCode *string            `json:"purchase_order_code,omitempty"`
	ReferenceCode     *string            `json:"reference_code,omitempty"`
	SalespersonCode   *string            `json:"salesperson_code,omitempty"`
	SalespersonName   *string            `json:"salesperson_name,omitempty"`
	InvoiceTypeCode   *InvoiceTypeCode   `json:"invoice_type_code,omitempty"`
	InvoiceStatusCode *InvoiceStatusCode `json:"invoice_status_code,omitempty"`
	TermsCode         *string            `json:"terms_code,omitempty"`
	SpecialTerms      *string            `json:"special_terms,omitempty"`
	CurrencyCode      *string            `json:"currency_code,omitempty"` // ISO 4217

	// Amounts
	TotalAmount              *float64 `json:"total_amount,omitempty"` // Inclusive of all taxes and lines
	SalesTaxAmount           *float64 `json:"sales_tax_amount,omitempty"`
	DiscountAmount           *float64 `json:"discount_amount,omitempty"`
	OutstandingBalanceAmount *float64 `json:"outstanding_balance_amount,omitempty"`

	// Dates
	InvoiceDate       *record.Date `json:"invoice_date,omitempty"`  // Reporting date
	DiscountDate      *record.Date `json:"discount_date,omitempty"` // When discounts were adjusted
	PostedDate        *record.Date `json:"posted_date,omitempty"`   // Posted to the general ledger
	InvoiceClosedDate *record.Date `json:"invoice_closed_date,omitempty"`
	PaymentDueDate    *record.Date `json:"payment_due_date,omitempty"`

	ImportedDate *record.DateTime `json:"imported_date,omitempty"` // Imported from the ERP

	// Addresses
	PrimaryOriginAddressID *string `json:"primary_origin_address_id,omitempty"`
	PrimaryBillToAddressID *string `json:"primary_bill_to_address_id,omitempty"`
	PrimaryShipToAddressID *string `json:"primary_ship_to_address_id,omitempty"`

	// Audit
	Created         *record.DateTime `json:"created,omitempty"`
	CreatedUserID   *string          `json:"created_user_id,omitempty"`
	Modified        *record.DateTime `json:"modified,omitempty"`
	ModifiedUserID  *string          `json:"modified_user_id,omitempty"`
	AppEnrollmentID *string          `json:"app_enrollment_id,omitempty"` // Connector that imported the record

	// Flags
	IsVoided         *bool `json:"is_voided,omitempty"`
	InDispute        *bool `json:"in_dispute,omitempty"`
	ExcludeFromAging *bool `json:"exclude_from_aging,omitempty"`

	// Relations embedded by the API on request
	Company                *Account                `json:"company,omitempty"`
	Customer               *Connection             `json:"customer,omitempty"`
	CustomerPrimaryContact *Contact                `json:"customer_primary_contact,omitempty"`
	Addresses              []InvoiceAddress        `json:"addresses,omitempty"`
	Lines                  []InvoiceLine           `json:"lines,omitempty"`
	Payments               []InvoicePaymentDetail  `json:"payments,omitempty"`
	Notes                  []Note                  `json:"notes,omitempty"`
	Attachments            []Attachment            `json:"attachments,omitempty"`
	CreditMemos            []CreditMemoInvoice     `json:"credit_memos,omitempty"`
	CustomFieldValues      []CustomFieldValue      `json:"custom_field_values,omitempty"`
	CustomFieldDefinitions []CustomFieldDefinition `json:"custom_field_definitions,omitempty"`

	// Reference-only relations, set by a Resolver
	CreatedUser  *User `json:"-"`
	ModifiedUser *User `json:"-"`
}

// Account returns the company relation under its alternate name.
func (i *Invoice) Account() *Account {
	return i.Company
}

// Connection returns the customer relation under its alternate name.
func (i *Invoice) Connection() *Connection {
	return i.Customer
}

// ID returns the invoice id, or "" when absent.
func (i *Invoice) ID() string {
	return record.Value(i.InvoiceID)
}

// Type returns the invoice type code, or "" when absent.
func (i *Invoice) Type() InvoiceTypeCode {
	return record.Value(i.InvoiceTypeCode)
}

// Status returns the invoice status code, or "" when absent.
func (i *Invoice) Status() InvoiceStatusCode {
	return record.Value(i.InvoiceStatusCode)
}

// Voided reports whether the invoice is flagged as voided.
func (i *Invoice) Voided() bool {
	return record.Value(i.IsVoided)
}

// ExcludedFromAging reports whether the invoice is flagged to be left out of aging.
func (i *Invoice) ExcludedFromAging() bool {
	return record.Value(i.ExcludeFromAging)
}

// UnmarshalJSON decodes leniently through InvoiceSchema. Field problems are
// dropped; use DecodeInvoice to see them. A JSON null leaves i unchanged.
func (i *Invoice) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	_, err := InvoiceSchema.Decode(data, i)
	return err
}

// MarshalJSON encodes through InvoiceSchema.
func (i Invoice) MarshalJSON() ([]byte, error) {
	return InvoiceSchema.Encode(&i)
}

// DecodeInvoice decodes one invoice payload and reports the fields that were
// dropped because their values did not fit the declared type.
func DecodeInvoice(data []byte) (*Invoice, record.FieldErrors, error) {
	var inv Invoice
	errs, err := InvoiceSchema.Decode(data, &inv)
	if err != nil {
		return nil, nil, err
	}
	return &inv, errs, nil
}

// InvoiceAmounts holds the monetary fields of an invoice as decimals.
// Invalid entries mark amounts the payload did not carry.
type InvoiceAmounts struct {
	Total              decimal.NullDecimal
	SalesTax           decimal.NullDecimal
	Discount           decimal.NullDecimal
	OutstandingBalance decimal.NullDecimal
}

// Amounts converts the monetary fields for exact arithmetic.
func (i *Invoice) Amounts() InvoiceAmounts {
	return InvoiceAmounts{
		Total:              nullDecimal(i.TotalAmount),
		SalesTax:           nullDecimal(i.SalesTaxAmount),
		Discount:           nullDecimal(i.DiscountAmount),
		OutstandingBalance: nullDecimal(i.OutstandingBalanceAmount),
	}
}

func nullDecimal(f *float64) decimal.NullDecimal {
	if f == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*f))
}
