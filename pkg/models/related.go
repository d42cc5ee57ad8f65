package models

import "platformsdk/pkg/record"

// Company is a business known to the platform account, either the account's
// own company or one of its connections.
type Company struct {
	CompanyID        string           `json:"company_id,omitempty"`
	GroupKey         string           `json:"group_key,omitempty"`
	ErpKey           string           `json:"erp_key,omitempty"`
	CompanyName      string           `json:"company_name,omitempty"`
	CompanyType      string           `json:"company_type,omitempty"`
	CompanyStatus    string           `json:"company_status,omitempty"`
	ParentCompanyID  string           `json:"parent_company_id,omitempty"`
	EnterpriseID     string           `json:"enterprise_id,omitempty"`
	PrimaryContactID string           `json:"primary_contact_id,omitempty"`
	DefaultCurrency  string           `json:"default_currency_code,omitempty"`
	PhoneNumber      string           `json:"phone_number,omitempty"`
	Website          string           `json:"website,omitempty"`
	IsActive         *bool            `json:"is_active,omitempty"`
	Created          *record.DateTime `json:"created,omitempty"`
	CreatedUserID    string           `json:"created_user_id,omitempty"`
	Modified         *record.DateTime `json:"modified,omitempty"`
	ModifiedUserID   string           `json:"modified_user_id,omitempty"`
	AppEnrollmentID  string           `json:"app_enrollment_id,omitempty"`
}

// Account is the company that issued the invoice.
type Account = Company

// Connection is the counterparty company of the invoice.
type Connection = Company

// Contact is a person at a company.
type Contact struct {
	ContactID       string           `json:"contact_id,omitempty"`
	CompanyID       string           `json:"company_id,omitempty"`
	GroupKey        string           `json:"group_key,omitempty"`
	ErpKey          string           `json:"erp_key,omitempty"`
	ContactName     string           `json:"contact_name,omitempty"`
	ContactCode     string           `json:"contact_code,omitempty"`
	Title           string           `json:"title,omitempty"`
	RoleCode        string           `json:"role_code,omitempty"`
	EmailAddress    string           `json:"email_address,omitempty"`
	Phone           string           `json:"phone,omitempty"`
	IsPrimary       *bool            `json:"is_primary,omitempty"`
	IsActive        *bool            `json:"is_active,omitempty"`
	Created         *record.DateTime `json:"created,omitempty"`
	Modified        *record.DateTime `json:"modified,omitempty"`
	AppEnrollmentID string           `json:"app_enrollment_id,omitempty"`
}

// User is a platform user referenced by audit fields.
type User struct {
	UserID     string           `json:"user_id,omitempty"`
	GroupKey   string           `json:"group_key,omitempty"`
	UserName   string           `json:"user_name,omitempty"`
	Email      string           `json:"email,omitempty"`
	UserStatus string           `json:"user_status,omitempty"`
	Created    *record.DateTime `json:"created,omitempty"`
	Modified   *record.DateTime `json:"modified,omitempty"`
}

// InvoiceAddress is an address attached to an invoice.
type InvoiceAddress struct {
	InvoiceAddressID string           `json:"invoice_address_id,omitempty"`
	InvoiceID        string           `json:"invoice_id,omitempty"`
	GroupKey         string           `json:"group_key,omitempty"`
	Line1            string           `json:"line1,omitempty"`
	Line2            string           `json:"line2,omitempty"`
	Line3            string           `json:"line3,omitempty"`
	City             string           `json:"city,omitempty"`
	Region           string           `json:"region,omitempty"`
	PostalCode       string           `json:"postal_code,omitempty"`
	Country          string           `json:"country,omitempty"`
	Latitude         *float64         `json:"latitude,omitempty"`
	Longitude        *float64         `json:"longitude,omitempty"`
	Created          *record.DateTime `json:"created,omitempty"`
	Modified         *record.DateTime `json:"modified,omitempty"`
	AppEnrollmentID  string           `json:"app_enrollment_id,omitempty"`
}

// InvoiceLine is one line item of an invoice.
type InvoiceLine struct {
	InvoiceLineID    string           `json:"invoice_line_id,omitempty"`
	InvoiceID        string           `json:"invoice_id,omitempty"`
	GroupKey         string           `json:"group_key,omitempty"`
	ErpKey           string           `json:"erp_key,omitempty"`
	LineNumber       string           `json:"line_number,omitempty"`
	ProductCode      string           `json:"product_code,omitempty"`
	Description      string           `json:"description,omitempty"`
	UnitMeasureCode  string           `json:"unit_measure_code,omitempty"`
	UnitPrice        *float64         `json:"unit_price,omitempty"`
	Quantity         *float64         `json:"quantity,omitempty"`
	QuantityShipped  *float64         `json:"quantity_shipped,omitempty"`
	QuantityReceived *float64         `json:"quantity_received,omitempty"`
	TotalAmount      *float64         `json:"total_amount,omitempty"`
	ExemptionCode    string           `json:"exemption_code,omitempty"`
	ReportingDate    *record.Date     `json:"reporting_date,omitempty"`
	Created          *record.DateTime `json:"created,omitempty"`
	Modified         *record.DateTime `json:"modified,omitempty"`
	AppEnrollmentID  string           `json:"app_enrollment_id,omitempty"`
}

// InvoicePaymentDetail is a payment applied to an invoice.
type InvoicePaymentDetail struct {
	PaymentAppliedID string       `json:"payment_applied_id,omitempty"`
	InvoiceID        string       `json:"invoice_id,omitempty"`
	PaymentID        string       `json:"payment_id,omitempty"`
	GroupKey         string       `json:"group_key,omitempty"`
	PaymentType      string       `json:"payment_type,omitempty"`
	ReferenceCode    string       `json:"reference_code,omitempty"`
	PaymentDate      *record.Date `json:"payment_date,omitempty"`
	PostDate         *record.Date `json:"post_date,omitempty"`
	ApplicationDate  *record.Date `json:"application_date,omitempty"`
	PaymentAmount    *float64     `json:"payment_amount,omitempty"`
	AppliedAmount    *float64     `json:"applied_amount,omitempty"`
	UnappliedAmount  *float64     `json:"unapplied_amount,omitempty"`
}

// Note is a free text note attached to any record. TableKey and ObjectKey
// name the record it belongs to.
type Note struct {
	NoteID          string           `json:"note_id,omitempty"`
	GroupKey        string           `json:"group_key,omitempty"`
	TableKey        string           `json:"table_key,omitempty"`
	ObjectKey       string           `json:"object_key,omitempty"`
	Title           string           `json:"title,omitempty"`
	NoteText        string           `json:"note_text,omitempty"`
	NoteType        string           `json:"note_type,omitempty"`
	IsArchived      *bool            `json:"is_archived,omitempty"`
	Created         *record.DateTime `json:"created,omitempty"`
	CreatedUserID   string           `json:"created_user_id,omitempty"`
	CreatedUserName string           `json:"created_user_name,omitempty"`
}

// Attachment is a file attached to any record, addressed like a Note.
type Attachment struct {
	AttachmentID       string           `json:"attachment_id,omitempty"`
	GroupKey           string           `json:"group_key,omitempty"`
	TableKey           string           `json:"table_key,omitempty"`
	ObjectKey          string           `json:"object_key,omitempty"`
	FileName           string           `json:"file_name,omitempty"`
	FileExt            string           `json:"file_ext,omitempty"`
	AttachmentTypeID   string           `json:"attachment_type_id,omitempty"`
	OriginAttachmentID string           `json:"origin_attachment_id,omitempty"`
	ErpKey             string           `json:"erp_key,omitempty"`
	IsArchived         *bool            `json:"is_archived,omitempty"`
	ViewInternal       *bool            `json:"view_internal,omitempty"`
	ViewExternal       *bool            `json:"view_external,omitempty"`
	Created            *record.DateTime `json:"created,omitempty"`
	CreatedUserID      string           `json:"created_user_id,omitempty"`
}

// CreditMemoInvoice is a credit memo applied against an invoice.
type CreditMemoInvoice struct {
	CreditMemoAppliedID     string       `json:"credit_memo_applied_id,omitempty"`
	GroupKey                string       `json:"group_key,omitempty"`
	InvoiceID               string       `json:"invoice_id,omitempty"`
	CreditMemoInvoiceID     string       `json:"credit_memo_invoice_id,omitempty"`
	ReferenceCode           string       `json:"reference_code,omitempty"`
	ApplicationDate         *record.Date `json:"application_date,omitempty"`
	CreditMemoAppliedAmount *float64     `json:"credit_memo_applied_amount,omitempty"`
	ErpKey                  string       `json:"erp_key,omitempty"`
}

// CustomFieldValue is the value of a custom field on one record.
type CustomFieldValue struct {
	GroupKey                string           `json:"group_key,omitempty"`
	CustomFieldDefinitionID string           `json:"custom_field_definition_id,omitempty"`
	RecordKey               string           `json:"record_key,omitempty"`
	StringValue             *string          `json:"string_value,omitempty"`
	NumericValue            *float64         `json:"numeric_value,omitempty"`
	Created                 *record.DateTime `json:"created,omitempty"`
	Modified                *record.DateTime `json:"modified,omitempty"`
	AppEnrollmentID         string           `json:"app_enrollment_id,omitempty"`
}

// CustomFieldDefinition describes a custom field of one object type.
type CustomFieldDefinition struct {
	GroupKey                string           `json:"group_key,omitempty"`
	CustomFieldDefinitionID string           `json:"custom_field_definition_id,omitempty"`
	TableKey                string           `json:"table_key,omitempty"`
	AppID                   string           `json:"app_id,omitempty"`
	CustomFieldLabel        string           `json:"custom_field_label,omitempty"`
	DataType                string           `json:"data_type,omitempty"`
	SortOrder               *int             `json:"sort_order,omitempty"`
	Created                 *record.DateTime `json:"created,omitempty"`
	Modified                *record.DateTime `json:"modified,omitempty"`
}
