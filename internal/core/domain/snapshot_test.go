package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	a := NewCartEntry(Product{ID: 7, Title: "Shoe", Price: decimal.NewFromInt(100), Image: "a.jpg"})
	a.Amount = 3
	b := NewCartEntry(Product{ID: 2, Title: "Boot", Price: decimal.RequireFromString("59.90"), Image: "b.jpg"})

	original, err := NewCartState(a, b)
	require.NoError(t, err)

	raw, err := EncodeSnapshot(original)
	require.NoError(t, err)

	restored, err := DecodeSnapshot(raw)
	require.NoError(t, err)

	assert.True(t, original.Equal(restored))

	type line struct{ ID, Amount int }
	lines := func(s CartState) []line {
		out := []line{}
		for _, e := range s.Entries() {
			out = append(out, line{e.ID, e.Amount})
		}
		return out
	}
	if diff := cmp.Diff(lines(original), lines(restored)); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeSnapshot_EmptyCart(t *testing.T) {
	raw, err := EncodeSnapshot(CartState{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestDecodeSnapshot_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: `{{`},
		{name: "object instead of array", raw: `{"id":1}`},
		{name: "duplicate ids", raw: `[{"id":1,"price":"1","amount":1},{"id":1,"price":"1","amount":2}]`},
		{name: "zero amount", raw: `[{"id":1,"price":"1","amount":0}]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeSnapshot([]byte(tc.raw))
			assert.Error(t, err)
		})
	}
}

func TestDecodeSnapshot_AcceptsNumericPrice(t *testing.T) {
	s, err := DecodeSnapshot([]byte(`[{"id":7,"title":"Shoe","price":100,"image":"","amount":2}]`))
	require.NoError(t, err)

	e, ok := s.Find(7)
	require.True(t, ok)
	assert.True(t, e.Price.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 2, e.Amount)
}
