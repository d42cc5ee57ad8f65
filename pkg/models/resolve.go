package models

import "platformsdk/pkg/record"

// Related holds records loaded separately from the invoices they belong to.
type Related struct {
	Accounts               []Account               `json:"accounts,omitempty"`
	Connections            []Connection            `json:"connections,omitempty"`
	Contacts               []Contact               `json:"contacts,omitempty"`
	Users                  []User                  `json:"users,omitempty"`
	Addresses              []InvoiceAddress        `json:"addresses,omitempty"`
	Lines                  []InvoiceLine           `json:"lines,omitempty"`
	Payments               []InvoicePaymentDetail  `json:"payments,omitempty"`
	Notes                  []Note                  `json:"notes,omitempty"`
	Attachments            []Attachment            `json:"attachments,omitempty"`
	CreditMemos            []CreditMemoInvoice     `json:"credit_memos,omitempty"`
	CustomFieldValues      []CustomFieldValue      `json:"custom_field_values,omitempty"`
	CustomFieldDefinitions []CustomFieldDefinition `json:"custom_field_definitions,omitempty"`
}

// Resolver attaches related records to invoices by key. Nothing is fetched:
// only records handed to NewResolver can be attached. A Resolver is safe
// for concurrent use once built.
type Resolver struct {
	accounts    *record.Index[Account]
	connections *record.Index[Connection]
	contacts    *record.Index[Contact]
	users       *record.Index[User]
	addresses   *record.Index[InvoiceAddress]
	lines       *record.Index[InvoiceLine]
	payments    *record.Index[InvoicePaymentDetail]
	notes       *record.Index[Note]
	attachments *record.Index[Attachment]
	creditMemos *record.Index[CreditMemoInvoice]
	fieldValues *record.Index[CustomFieldValue]
	fieldDefs   *record.Index[CustomFieldDefinition]
}

// byInvoice files records under the invoice they belong to.
func byInvoice(id string) (record.Key, bool) {
	return record.NewKey(ObjectTypeInvoice, id), id != ""
}

// NewResolver indexes the related records.
func NewResolver(rel Related) *Resolver {
	return &Resolver{
		accounts: record.NewIndex(rel.Accounts, func(c Account) (record.Key, bool) {
			return record.NewKey("Account", c.CompanyID), true
		}),
		connections: record.NewIndex(rel.Connections, func(c Connection) (record.Key, bool) {
			return record.NewKey("Connection", c.CompanyID), true
		}),
		contacts: record.NewIndex(rel.Contacts, func(c Contact) (record.Key, bool) {
			return record.NewKey("Contact", c.ContactID), true
		}),
		users: record.NewIndex(rel.Users, func(u User) (record.Key, bool) {
			return record.NewKey("User", u.UserID), true
		}),
		addresses: record.NewIndex(rel.Addresses, func(a InvoiceAddress) (record.Key, bool) {
			return byInvoice(a.InvoiceID)
		}),
		lines: record.NewIndex(rel.Lines, func(l InvoiceLine) (record.Key, bool) {
			return byInvoice(l.InvoiceID)
		}),
		payments: record.NewIndex(rel.Payments, func(p InvoicePaymentDetail) (record.Key, bool) {
			return byInvoice(p.InvoiceID)
		}),
		notes: record.NewIndex(rel.Notes, func(n Note) (record.Key, bool) {
			return record.NewKey(n.TableKey, n.ObjectKey), true
		}),
		attachments: record.NewIndex(rel.Attachments, func(a Attachment) (record.Key, bool) {
			return record.NewKey(a.TableKey, a.ObjectKey), true
		}),
		creditMemos: record.NewIndex(rel.CreditMemos, func(c CreditMemoInvoice) (record.Key, bool) {
			return byInvoice(c.InvoiceID)
		}),
		fieldValues: record.NewIndex(rel.CustomFieldValues, func(v CustomFieldValue) (record.Key, bool) {
			return byInvoice(v.RecordKey)
		}),
		fieldDefs: record.NewIndex(rel.CustomFieldDefinitions, func(d CustomFieldDefinition) (record.Key, bool) {
			return record.NewKey(d.TableKey, d.CustomFieldDefinitionID), true
		}),
	}
}

// Resolve attaches related records to inv. Embedded relations are filled
// only when includes asks for them and the payload did not already carry
// them; payload data is never replaced. The created and modified users are
// attached whenever matching users were supplied. Resolve returns the names
// of the relations it filled.
func (r *Resolver) Resolve(inv *Invoice, includes record.Includes) []string {
	var filled []string
	want := func(relation string) bool {
		return InvoiceSchema.Wants(includes, relation)
	}
	mark := func(relation string, ok bool) {
		if ok {
			filled = append(filled, relation)
		}
	}

	id := inv.ID()
	key := record.NewKey(ObjectTypeInvoice, id)

	if want("company") && inv.Company == nil && inv.CompanyID != nil {
		if c, ok := r.accounts.First(record.NewKey("Account", *inv.CompanyID)); ok {
			inv.Company = &c
			mark("company", true)
		}
	}
	if want("customer") && inv.Customer == nil && inv.CustomerID != nil {
		if c, ok := r.connections.First(record.NewKey("Connection", *inv.CustomerID)); ok {
			inv.Customer = &c
			mark("customer", true)
		}
	}
	if want("customer_primary_contact") && inv.CustomerPrimaryContact == nil && inv.Customer != nil {
		if c, ok := r.contacts.First(record.NewKey("Contact", inv.Customer.PrimaryContactID)); ok {
			inv.CustomerPrimaryContact = &c
			mark("customer_primary_contact", true)
		}
	}

	if id != "" {
		mark("addresses", fillMany(want("addresses"), &inv.Addresses, r.addresses.Lookup(key)))
		mark("lines", fillMany(want("lines"), &inv.Lines, r.lines.Lookup(key)))
		mark("payments", fillMany(want("payments"), &inv.Payments, r.payments.Lookup(key)))
		mark("notes", fillMany(want("notes"), &inv.Notes, r.notes.Lookup(key)))
		mark("attachments", fillMany(want("attachments"), &inv.Attachments, r.attachments.Lookup(key)))
		mark("credit_memos", fillMany(want("credit_memos"), &inv.CreditMemos, r.creditMemos.Lookup(key)))
		mark("custom_field_values", fillMany(want("custom_field_values"), &inv.CustomFieldValues, r.fieldValues.Lookup(key)))
	}
	mark("custom_field_definitions", fillMany(want("custom_field_definitions"), &inv.CustomFieldDefinitions, r.definitionsFor(inv)))

	if inv.CreatedUser == nil && inv.CreatedUserID != nil {
		if u, ok := r.users.First(record.NewKey("User", *inv.CreatedUserID)); ok {
			inv.CreatedUser = &u
			mark("created_user", true)
		}
	}
	if inv.ModifiedUser == nil && inv.ModifiedUserID != nil {
		if u, ok := r.users.First(record.NewKey("User", *inv.ModifiedUserID)); ok {
			inv.ModifiedUser = &u
			mark("modified_user", true)
		}
	}
	return filled
}

// definitionsFor returns the invoice custom field definitions referenced by
// the invoice's custom field values, once each.
func (r *Resolver) definitionsFor(inv *Invoice) []CustomFieldDefinition {
	var defs []CustomFieldDefinition
	seen := make(map[string]bool)
	for _, v := range inv.CustomFieldValues {
		k := record.NewKey(ObjectTypeInvoice, v.CustomFieldDefinitionID)
		if seen[k.ID] {
			continue
		}
		seen[k.ID] = true
		if d, ok := r.fieldDefs.First(k); ok {
			defs = append(defs, d)
		}
	}
	return defs
}

func fillMany[R any](wanted bool, dst *[]R, found []R) bool {
	if !wanted || *dst != nil || len(found) == 0 {
		return false
	}
	*dst = append([]R(nil), found...)
	return true
}
