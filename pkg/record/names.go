package record

import (
	"strings"
	"unicode"
)

// foldKey reduces a key to lower case without underscores, so that
// "invoice_id", "invoiceId" and "InvoiceId" compare equal.
func foldKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// pascalCase turns a snake_case name into PascalCase: credit_memos -> CreditMemos.
func pascalCase(s string) string {
	parts := strings.Split(s, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}
