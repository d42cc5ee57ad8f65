package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platformsdk/pkg/record"
)

const (
	invID      = "8a2b4c6d-1e3f-4a5b-8c7d-9e0f1a2b3c4d"
	companyID  = "b1c2d3e4-f5a6-4b7c-8d9e-0f1a2b3c4d5e"
	customerID = "c2d3e4f5-a6b7-4c8d-9e0f-1a2b3c4d5e6f"
	userID     = "e4f5a6b7-c8d9-4e0f-9a2b-3c4d5e6f7081"
)

func testRelated() Related {
	return Related{
		Accounts:    []Account{{CompanyID: companyID, CompanyName: "Acme Supply"}},
		Connections: []Connection{{CompanyID: customerID, CompanyName: "Globex", PrimaryContactID: "ct-1"}},
		Contacts:    []Contact{{ContactID: "CT-1", ContactName: "Hank Scorpio"}},
		Users:       []User{{UserID: userID, UserName: "dana"}},
		Lines: []InvoiceLine{
			{InvoiceLineID: "l-1", InvoiceID: invID},
			{InvoiceLineID: "l-2", InvoiceID: "other"},
			{InvoiceLineID: "l-3", InvoiceID: invID},
		},
		Notes: []Note{
			{NoteID: "n-1", TableKey: "Invoice", ObjectKey: invID},
			{NoteID: "n-2", TableKey: "Payment", ObjectKey: invID},
		},
		Attachments: []Attachment{{AttachmentID: "a-1", TableKey: "invoice", ObjectKey: invID}},
		CustomFieldValues: []CustomFieldValue{
			{CustomFieldDefinitionID: "cf-1", RecordKey: invID},
			{CustomFieldDefinitionID: "cf-1", RecordKey: invID},
		},
		CustomFieldDefinitions: []CustomFieldDefinition{
			{CustomFieldDefinitionID: "cf-1", TableKey: "Invoice", CustomFieldLabel: "Region"},
			{CustomFieldDefinitionID: "cf-1", TableKey: "Contact", CustomFieldLabel: "Wrong table"},
		},
	}
}

func testInvoice() *Invoice {
	id, company, customer, user := invID, companyID, customerID, userID
	return &Invoice{
		InvoiceID:     &id,
		CompanyID:     &company,
		CustomerID:    &customer,
		CreatedUserID: &user,
	}
}

func TestResolveRequestedRelations(t *testing.T) {
	r := NewResolver(testRelated())
	inc, err := InvoiceSchema.ParseIncludes("company,customer,lines,notes,attachments,customfieldvalues,customfielddefinitions")
	require.NoError(t, err)

	inv := testInvoice()
	filled := r.Resolve(inv, inc)

	assert.Equal(t, []string{
		"company", "customer", "customer_primary_contact", "lines", "notes",
		"attachments", "custom_field_values", "custom_field_definitions", "created_user",
	}, filled)

	assert.Equal(t, "Acme Supply", inv.Company.CompanyName)
	assert.Equal(t, "Globex", inv.Customer.CompanyName)
	assert.Equal(t, "Hank Scorpio", inv.CustomerPrimaryContact.ContactName)

	require.Len(t, inv.Lines, 2)
	assert.Equal(t, "l-1", inv.Lines[0].InvoiceLineID)
	assert.Equal(t, "l-3", inv.Lines[1].InvoiceLineID)

	require.Len(t, inv.Notes, 1)
	assert.Equal(t, "n-1", inv.Notes[0].NoteID)
	assert.Len(t, inv.Attachments, 1)

	assert.Len(t, inv.CustomFieldValues, 2)
	require.Len(t, inv.CustomFieldDefinitions, 1)
	assert.Equal(t, "Region", inv.CustomFieldDefinitions[0].CustomFieldLabel)

	require.NotNil(t, inv.CreatedUser)
	assert.Equal(t, "dana", inv.CreatedUser.UserName)
	assert.Nil(t, inv.ModifiedUser)
}

func TestResolveLeavesUnrequestedRelationsAbsent(t *testing.T) {
	r := NewResolver(testRelated())
	inv := testInvoice()

	filled := r.Resolve(inv, nil)
	assert.Equal(t, []string{"created_user"}, filled)
	assert.Nil(t, inv.Company)
	assert.Nil(t, inv.Lines)
	assert.Nil(t, inv.Notes)
}

func TestResolveKeepsEmbeddedData(t *testing.T) {
	r := NewResolver(testRelated())
	inv := testInvoice()
	inv.Company = &Account{CompanyName: "From payload"}
	inv.Lines = []InvoiceLine{}

	filled := r.Resolve(inv, record.Includes{"company", "lines"})
	assert.NotContains(t, filled, "company")
	assert.NotContains(t, filled, "lines")
	assert.Equal(t, "From payload", inv.Company.CompanyName)
	assert.NotNil(t, inv.Lines)
	assert.Empty(t, inv.Lines)
}

func TestResolveWithoutMatches(t *testing.T) {
	r := NewResolver(Related{})
	inv := &Invoice{}

	assert.Empty(t, r.Resolve(inv, InvoiceSchema.IncludeNames()))
	assert.Nil(t, inv.Lines)
	assert.Nil(t, inv.CustomFieldDefinitions)
}

func TestResolvedLinesDoNotShareBacking(t *testing.T) {
	rel := testRelated()
	r := NewResolver(rel)

	a, b := testInvoice(), testInvoice()
	r.Resolve(a, record.Includes{"lines"})
	r.Resolve(b, record.Includes{"lines"})

	a.Lines[0].Description = "changed"
	assert.Empty(t, b.Lines[0].Description)
}
