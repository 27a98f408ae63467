package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shoe(id int, price int64) Product {
	return Product{ID: id, Title: "Shoe", Price: decimal.NewFromInt(price), Image: "shoe.jpg"}
}

func TestNewCartState_RejectsDuplicates(t *testing.T) {
	_, err := NewCartState(NewCartEntry(shoe(1, 10)), NewCartEntry(shoe(1, 10)))
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}

func TestNewCartState_RejectsNonPositiveAmount(t *testing.T) {
	e := NewCartEntry(shoe(1, 10))
	e.Amount = 0
	_, err := NewCartState(e)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestAppend_KeepsReceiverUntouched(t *testing.T) {
	empty := CartState{}

	next, err := empty.Append(NewCartEntry(shoe(7, 100)))
	require.NoError(t, err)

	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 1, next.Len())

	_, err = next.Append(NewCartEntry(shoe(7, 100)))
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}

func TestWithAmount_CopiesEntries(t *testing.T) {
	s, err := NewCartState(NewCartEntry(shoe(1, 10)), NewCartEntry(shoe(2, 20)))
	require.NoError(t, err)

	next, err := s.WithAmount(2, 4)
	require.NoError(t, err)

	before, _ := s.Find(2)
	after, _ := next.Find(2)
	assert.Equal(t, 1, before.Amount)
	assert.Equal(t, 4, after.Amount)

	_, err = s.WithAmount(3, 1)
	assert.ErrorIs(t, err, ErrEntryNotFound)
	_, err = s.WithAmount(1, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestWithout_PreservesOrder(t *testing.T) {
	s, err := NewCartState(NewCartEntry(shoe(1, 10)), NewCartEntry(shoe(2, 20)), NewCartEntry(shoe(3, 30)))
	require.NoError(t, err)

	next, err := s.Without(2)
	require.NoError(t, err)

	ids := make([]int, 0, next.Len())
	for _, e := range next.Entries() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int{1, 3}, ids)
	assert.Equal(t, 3, s.Len())

	_, err = next.Without(2)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestEntries_ReturnsCopy(t *testing.T) {
	s, err := NewCartState(NewCartEntry(shoe(1, 10)))
	require.NoError(t, err)

	entries := s.Entries()
	entries[0].Amount = 99

	e, _ := s.Find(1)
	assert.Equal(t, 1, e.Amount)
}

func TestTotalsAndDisplayStrings(t *testing.T) {
	e := NewCartEntry(Product{ID: 1, Title: "Tenis", Price: decimal.RequireFromString("139.90")})
	s, err := NewCartState(e)
	require.NoError(t, err)
	s, err = s.WithAmount(1, 3)
	require.NoError(t, err)

	got, _ := s.Find(1)
	assert.Equal(t, "$139.90", got.FormattedPrice())
	assert.Equal(t, "$419.70", got.FormattedSubTotal())
	assert.Equal(t, "$419.70", s.FormattedTotal())
	assert.Equal(t, "$0.00", CartState{}.FormattedTotal())
}
