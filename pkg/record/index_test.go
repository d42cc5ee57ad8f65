package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type memo struct {
	Table  string
	Object string
	Text   string
}

func TestIndexLookup(t *testing.T) {
	memos := []memo{
		{Table: "Invoice", Object: "ABC", Text: "first"},
		{Table: "invoice", Object: "abc", Text: "second"},
		{Table: "Payment", Object: "abc", Text: "other type"},
		{Table: "Invoice", Object: "", Text: "no key"},
	}
	ix := NewIndex(memos, func(m memo) (Key, bool) {
		return Key{Type: m.Table, ID: m.Object}, true
	})

	assert.Equal(t, 3, ix.Len())

	got := ix.Lookup(Key{Type: "INVOICE", ID: " Abc "})
	if assert.Len(t, got, 2) {
		assert.Equal(t, "first", got[0].Text)
		assert.Equal(t, "second", got[1].Text)
	}

	first, ok := ix.First(NewKey("payment", "ABC"))
	assert.True(t, ok)
	assert.Equal(t, "other type", first.Text)

	_, ok = ix.First(NewKey("Invoice", "zzz"))
	assert.False(t, ok)
}

func TestIndexSkipsRejectedRecords(t *testing.T) {
	ix := NewIndex([]memo{{Table: "Invoice", Object: "1"}}, func(m memo) (Key, bool) {
		return Key{}, false
	})
	assert.Equal(t, 0, ix.Len())

	var nilIndex *Index[memo]
	assert.Nil(t, nilIndex.Lookup(NewKey("a", "b")))
	assert.Equal(t, 0, nilIndex.Len())
}

func TestValue(t *testing.T) {
	s := "x"
	assert.Equal(t, "x", Value(&s))
	assert.Equal(t, "", Value[string](nil))
}
