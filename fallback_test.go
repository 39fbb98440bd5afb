package balcao

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMissingCollection(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"undefined relation code", &StoreError{Code: "42P01", Message: "undefined_table"}, true},
		{"not found status", &StoreError{Status: 404, Message: "no such route"}, true},
		{"message substring", errors.New(`relation "public.grupos" does not exist`), true},
		{"wrapped store error", errors.Join(errors.New("select failed"), &StoreError{Code: "42P01"}), true},
		{"permission denied", &StoreError{Code: "42501", Message: "permission denied", Status: 403}, false},
		{"plain failure", errors.New("connection refused"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsMissingCollection(tc.err))
		})
	}
}

func TestSynthesizeCreate(t *testing.T) {
	rec := synthesizeCreate(Record{"nome": "Teste"})

	require.Len(t, rec.ID(), fallbackIDLength)
	assert.Equal(t, "Teste", rec["nome"])
	assert.NotEmpty(t, rec[FieldCreatedAt])
	assert.False(t, rec.Has(FieldUpdatedAt))
}

func TestSynthesizeCreateDoesNotAliasInput(t *testing.T) {
	fields := Record{"nome": "Teste"}
	rec := synthesizeCreate(fields)

	assert.False(t, fields.Has(FieldID), "submitted fields must stay untouched")
	rec["nome"] = "Outro"
	assert.Equal(t, "Teste", fields["nome"])
}

func TestSynthesizeUpdate(t *testing.T) {
	rec := synthesizeUpdate("abc-1", Record{"nome": "Novo"})

	assert.Equal(t, "abc-1", rec.ID())
	assert.Equal(t, "Novo", rec["nome"])
	assert.NotEmpty(t, rec[FieldUpdatedAt])
	assert.False(t, rec.Has(FieldCreatedAt))
}

func TestSynthesizeIDsDiffer(t *testing.T) {
	a := synthesizeCreate(nil)
	b := synthesizeCreate(nil)
	assert.NotEqual(t, a.ID(), b.ID())
}
