package models

import "platformsdk/pkg/record"

// InvoiceSchema declares the wire fields and relations of Invoice.
var InvoiceSchema = record.NewSchema(ObjectTypeInvoice,
	[]record.Field[Invoice]{
		record.String("group_key", record.FormatUUID, func(i *Invoice) **string { return &i.GroupKey }),
		record.String("invoice_id", record.FormatUUID, func(i *Invoice) **string { return &i.InvoiceID }),
		record.String("company_id", record.FormatUUID, func(i *Invoice) **string { return &i.CompanyID }),
		record.String("customer_id", record.FormatUUID, func(i *Invoice) **string { return &i.CustomerID }),
		record.String("erp_key", record.FormatNone, func(i *Invoice) **string { return &i.ErpKey }),
		record.String("purchase_order_code", record.FormatNone, func(i *Invoice) **string { return &i.PurchaseOrderCode }),
		record.String("reference_code", record.FormatNone, func(i *Invoice) **string { return &i.ReferenceCode }),
		record.String("salesperson_code", record.FormatNone, func(i *Invoice) **string { return &i.SalespersonCode }),
		record.String("salesperson_name", record.FormatNone, func(i *Invoice) **string { return &i.SalespersonName }),
		record.Enum("invoice_type_code", InvoiceTypeCodes, func(i *Invoice) **InvoiceTypeCode { return &i.InvoiceTypeCode }),
		record.Enum("invoice_status_code", InvoiceStatusCodes, func(i *Invoice) **InvoiceStatusCode { return &i.InvoiceStatusCode }),
		record.String("terms_code", record.FormatNone, func(i *Invoice) **string { return &i.TermsCode }),
		record.String("special_terms", record.FormatNone, func(i *Invoice) **string { return &i.SpecialTerms }),
		record.String("currency_code", record.FormatCurrency, func(i *Invoice) **string { return &i.CurrencyCode }),
		record.Number("total_amount", func(i *Invoice) **float64 { return &i.TotalAmount }),
		record.Number("sales_tax_amount", func(i *Invoice) **float64 { return &i.SalesTaxAmount }),
		record.Number("discount_amount", func(i *Invoice) **float64 { return &i.DiscountAmount }),
		record.Number("outstanding_balance_amount", func(i *Invoice) **float64 { return &i.OutstandingBalanceAmount }),
		record.DateField("invoice_date", func(i *Invoice) **record.Date { return &i.InvoiceDate }),
		record.DateField("discount_date", func(i *Invoice) **record.Date { return &i.DiscountDate }),
		record.DateField("posted_date", func(i *Invoice) **record.Date { return &i.PostedDate }),
		record.DateField("invoice_closed_date", func(i *Invoice) **record.Date { return &i.InvoiceClosedDate }),
		record.DateField("payment_due_date", func(i *Invoice) **record.Date { return &i.PaymentDueDate }),
		record.DateTimeField("imported_date", func(i *Invoice) **record.DateTime { return &i.ImportedDate }),
		record.String("primary_origin_address_id", record.FormatUUID, func(i *Invoice) **string { return &i.PrimaryOriginAddressID }),
		record.String("primary_bill_to_address_id", record.FormatUUID, func(i *Invoice) **string { return &i.PrimaryBillToAddressID }),
		record.String("primary_ship_to_address_id", record.FormatUUID, func(i *Invoice) **string { return &i.PrimaryShipToAddressID }),
		record.DateTimeField("created", func(i *Invoice) **record.DateTime { return &i.Created }),
		record.String("created_user_id", record.FormatUUID, func(i *Invoice) **string { return &i.CreatedUserID }),
		record.DateTimeField("modified", func(i *Invoice) **record.DateTime { return &i.Modified }),
		record.String("modified_user_id", record.FormatUUID, func(i *Invoice) **string { return &i.ModifiedUserID }),
		record.String("app_enrollment_id", record.FormatUUID, func(i *Invoice) **string { return &i.AppEnrollmentID }),
		record.Bool("is_voided", func(i *Invoice) **bool { return &i.IsVoided }),
		record.Bool("in_dispute", func(i *Invoice) **bool { return &i.InDispute }),
		record.Bool("exclude_from_aging", func(i *Invoice) **bool { return &i.ExcludeFromAging }),
	},
	[]record.Relation[Invoice]{
		record.One("company", func(i *Invoice) **Account { return &i.Company },
			record.Alias("account"), record.Target("Account"), record.Keys("company_id", "company_id")),
		record.One("customer", func(i *Invoice) **Connection { return &i.Customer },
			record.Alias("connection"), record.Target("Connection"), record.Keys("company_id", "customer_id")),
		record.One("customer_primary_contact", func(i *Invoice) **Contact { return &i.CustomerPrimaryContact },
			record.Target("Contact"), record.Keys("contact_id", "primary_contact_id"), record.IncludedBy("customer")),
		record.Many("addresses", func(i *Invoice) *[]InvoiceAddress { return &i.Addresses },
			record.Target("InvoiceAddress"), record.Keys("invoice_id", "invoice_id")),
		record.Many("lines", func(i *Invoice) *[]InvoiceLine { return &i.Lines },
			record.Target("InvoiceLine"), record.Keys("invoice_id", "invoice_id")),
		record.Many("payments", func(i *Invoice) *[]InvoicePaymentDetail { return &i.Payments },
			record.Target("InvoicePaymentDetail"), record.Keys("invoice_id", "invoice_id")),
		record.Many("notes", func(i *Invoice) *[]Note { return &i.Notes },
			record.Target("Note"), record.Keys("invoice_id", "object_key"), record.Polymorphic(ObjectTypeInvoice)),
		record.Many("attachments", func(i *Invoice) *[]Attachment { return &i.Attachments },
			record.Target("Attachment"), record.Keys("invoice_id", "object_key"), record.Polymorphic(ObjectTypeInvoice)),
		record.Many("credit_memos", func(i *Invoice) *[]CreditMemoInvoice { return &i.CreditMemos },
			record.Target("CreditMemoInvoice"), record.Keys("invoice_id", "invoice_id")),
		record.Many("custom_field_values", func(i *Invoice) *[]CustomFieldValue { return &i.CustomFieldValues },
			record.Target("CustomFieldValue"), record.Keys("invoice_id", "record_key")),
		record.Many("custom_field_definitions", func(i *Invoice) *[]CustomFieldDefinition { return &i.CustomFieldDefinitions },
			record.Target("CustomFieldDefinition"), record.Keys("custom_field_definition_id", "custom_field_definition_id"),
			record.Polymorphic(ObjectTypeInvoice)),
		record.Reference[Invoice]("created_user",
			record.Target("User"), record.Keys("user_id", "created_user_id")),
		record.Reference[Invoice]("modified_user",
			record.Target("User"), record.Keys("user_id", "modified_user_id")),
	},
)
