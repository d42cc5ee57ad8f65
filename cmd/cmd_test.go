package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platformsdk/internal/export"
	"platformsdk/internal/invoice"
	"platformsdk/pkg/models"
	"platformsdk/pkg/record"
)

const openInvoice = `{
	"invoice_id": "5b2e1c7a-8d1f-4f2e-9c3a-1a2b3c4d5e6f",
	"company_id": "0f1e2d3c-4b5a-4697-8877-665544332211",
	"customer_id": "a1b2c3d4-e5f6-4789-9abc-def012345678",
	"invoice_type_code": "Invoice",
	"invoice_status_code": "Open",
	"currency_code": "USD",
	"total_amount": 100,
	"outstanding_balance_amount": 40,
	"invoice_date": "2024-01-01",
	"payment_due_date": "2024-01-31"
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseIncludes(t *testing.T) {
	includes, explicit, err := parseIncludes("customer, lines")
	require.NoError(t, err)
	assert.True(t, explicit)
	assert.Equal(t, "Customer,Lines", includes.QueryValue())

	includes, explicit, err = parseIncludes("")
	require.NoError(t, err)
	assert.False(t, explicit)
	assert.Nil(t, includes)

	_, _, err = parseIncludes("customer,shipments")
	require.Error(t, err)
	assert.ErrorIs(t, err, record.ErrUnknownInclude)
	assert.Contains(t, err.Error(), "Valid names:")
}

func TestParseIncludesUsesDefault(t *testing.T) {
	saved := appConfig.DefaultIncludes
	appConfig.DefaultIncludes = "company"
	t.Cleanup(func() { appConfig.DefaultIncludes = saved })

	includes, explicit, err := parseIncludes("")
	require.NoError(t, err)
	assert.True(t, explicit)
	assert.True(t, includes.Has("company"))
}

func TestParseAsOf(t *testing.T) {
	d, err := parseAsOf("2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, record.NewDate(2024, 3, 31), d)

	_, err = parseAsOf("31.03.2024")
	assert.Error(t, err)

	today, err := parseAsOf("")
	require.NoError(t, err)
	assert.False(t, today.IsZero())
}

func TestHandleLoadError(t *testing.T) {
	log := zerolog.Nop()
	tests := []struct {
		err  error
		want string
	}{
		{context.DeadlineExceeded, "timed out"},
		{invoice.NewLoadError("Load", invoice.ErrEmptyPayload, ""), "empty"},
		{invoice.NewLoadError("Load", invoice.ErrPayloadTooLarge, ""), "MAX_PAYLOAD_BYTES"},
		{invoice.NewLoadError("Load", invoice.ErrUnsupportedFormat, ""), "expected an invoice object"},
		{invoice.NewLoadError("Load", invoice.ErrInvalidPayload, ""), "not valid invoice JSON"},
		{os.ErrNotExist, "file not found"},
		{errors.New("boom"), "invoice loading failed"},
	}
	for _, tt := range tests {
		assert.Contains(t, handleLoadError(tt.err, log).Error(), tt.want)
	}
}

func TestFindJSONFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", "{}")
	writeFile(t, dir, "a.JSON", "{}")
	writeFile(t, dir, "notes.txt", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	writeFile(t, filepath.Join(dir, "sub"), "c.json", "{}")

	files, err := findJSONFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "a.JSON", filepath.Base(files[0]))
	assert.Equal(t, "b.json", filepath.Base(files[1]))
	assert.Equal(t, "c.json", filepath.Base(files[2]))
}

func TestProcessFilesInParallel(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "ok.json", openInvoice),
		writeFile(t, dir, "broken.json", "not json"),
		writeFile(t, dir, "warn.json", `[{"invoice_id": "x", "total_amount": "ten"}, {"invoice_id": "y"}]`),
	}

	opts := batchOptions{
		loader:  invoice.NewJSONLoader(0),
		checker: invoice.NewConsistencyCheck(),
	}
	var out bytes.Buffer
	results := processFilesInParallel(context.Background(), files, 2, opts, &out, zerolog.Nop())

	require.Len(t, results, 3)
	assert.Equal(t, "ok.json", results[0].Filename)
	assert.Equal(t, "success", results[0].Status)
	assert.Len(t, results[0].Rows, 1)

	assert.Equal(t, "error", results[1].Status)
	require.Error(t, results[1].Error)
	require.Len(t, results[1].Rows, 1)
	assert.Nil(t, results[1].Rows[0].Invoice)

	assert.Equal(t, "warning", results[2].Status)
	require.Len(t, results[2].Rows, 2)
	assert.Equal(t, 1, results[2].Rows[0].Issues)
	assert.Equal(t, "warning", results[2].Rows[0].Status)

	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}
	assert.Equal(t, 3, strings.Count(out.String(), "\n"))

	counts := countStatuses(results)
	assert.Equal(t, 1, counts["success"])
	assert.Equal(t, 1, counts["warning"])
	assert.Equal(t, 1, counts["error"])

	rows := collectRows(results)
	assert.Len(t, rows, 4)
	assert.Equal(t, 3, countInvoices(rows))
	assert.Len(t, invoicesOf(rows), 3)
}

func TestSkipExistingRows(t *testing.T) {
	a, b := "inv-a", "inv-b"
	rows := []export.Row{
		{Invoice: &models.Invoice{InvoiceID: &a}},
		{Invoice: &models.Invoice{InvoiceID: &b}},
		{Source: "broken.json", Err: errors.New("bad")},
	}
	kept := skipExistingRows(rows, map[string]bool{"inv-a": true})
	require.Len(t, kept, 2)
	assert.Equal(t, "inv-b", kept[0].Invoice.ID())
	assert.Equal(t, "broken.json", kept[1].Source)
}

func TestValidateRecord(t *testing.T) {
	inv, issues, err := models.DecodeInvoice([]byte(`{
		"invoice_id": "not-a-uuid",
		"invoice_type_code": "Debit Memo",
		"invoice_status_code": "Open",
		"currency_code": "USD",
		"total_amount": "12"
	}`))
	require.NoError(t, err)

	f := validateRecord(invoice.Decoded{Invoice: inv, Issues: issues, Index: 3})
	assert.Equal(t, 3, f.Index)
	assert.Equal(t, []string{"total_amount", "invoice_id"}, f.Errors.Fields())
	assert.Equal(t, []string{`unknown invoice_type_code "Debit Memo"`}, f.Warnings)

	var out bytes.Buffer
	n := printFindings(&out, []recordFindings{f, {Index: 4, InvoiceID: "clean"}})
	assert.Equal(t, 2, n)
	assert.Contains(t, out.String(), "Record 3: not-a-uuid")
	assert.NotContains(t, out.String(), "Record 4")
}

func TestDescribeInvoiceSchema(t *testing.T) {
	desc := describeInvoiceSchema()
	assert.Equal(t, "Invoice", desc.Name)
	assert.Len(t, desc.Fields, len(models.InvoiceSchema.Fields()))
	assert.Equal(t, "group_key", desc.Fields[0].Name)
	assert.Equal(t, "uuid", desc.Fields[0].Format)
	assert.Contains(t, desc.Include, "CustomerPrimaryContact")

	var created RelationInfo
	for _, r := range desc.Relations {
		if r.Name == "created_user" {
			created = r
		}
	}
	assert.Equal(t, "User", created.Target)
	assert.False(t, created.Embedded)

	var out bytes.Buffer
	require.NoError(t, printSchema(&out, desc))
	assert.Contains(t, out.String(), "invoice_type_code")
	assert.Contains(t, out.String(), "enum: Invoice, AP Invoice, Credit Memo")
	assert.Contains(t, out.String(), "include="+desc.Include)
}

func TestDecodeCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "invoices.json", `{"records": [`+openInvoice+`], "totalCount": 1, "pageSize": 200, "pageNumber": 0}`)
	related := filepath.Join(dir, "related")
	require.NoError(t, os.Mkdir(related, 0755))
	writeFile(t, related, "connections.json",
		`[{"company_id": "a1b2c3d4-e5f6-4789-9abc-def012345678", "company_name": "Globex"}]`)

	out, err := execute(t, "decode", path, "--related", related, "--include", "customer", "--check")
	require.NoError(t, err)

	var got struct {
		Invoices []map[string]interface{} `json:"invoices"`
		Reports  []RecordReport           `json:"reports"`
		Page     *invoice.Page            `json:"page"`
		Metadata DecodeMetadata           `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Invoices, 1)
	customer, ok := got.Invoices[0]["customer"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Globex", customer["company_name"])
	assert.Equal(t, []string{"customer"}, got.Reports[0].Resolved)
	assert.Equal(t, 1, got.Page.TotalCount)
	assert.Equal(t, "Customer", got.Metadata.Include)
}

func TestValidateCommandFails(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.json", `{"invoice_id": "nope"}`)
	out, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, out, "invoice_id")
}

func TestAgingCommand(t *testing.T) {
	path := writeFile(t, t.TempDir(), "invoices.json", "["+openInvoice+"]")
	out, err := execute(t, "aging", path, "--as-of", "2024-02-15")
	require.NoError(t, err)
	assert.Contains(t, out, "Aging as of 2024-02-15")
	assert.Contains(t, out, "USD")
	assert.Contains(t, out, "40.00")
}

func TestLoadingCommandsAcceptTimeout(t *testing.T) {
	for _, c := range []*cobra.Command{decodeCmd, validateCmd, batchCmd, agingCmd} {
		assert.NotNil(t, c.Flags().Lookup("timeout"), c.Name())
	}
}

func TestBatchCommandDryRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", openInvoice)
	writeFile(t, dir, "broken.json", "{")

	out, err := execute(t, "batch", dir, "--dry-run", "--timeout", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Mode: Dry Run")
	assert.Contains(t, out, "Successful: 1")
	assert.Contains(t, out, "Errors: 1")
	assert.Contains(t, out, "Invoices: 1")
}
