package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const currencySymbol = "$"

var (
	ErrDuplicateEntry = errors.New("duplicate cart entry")
	ErrEntryNotFound  = errors.New("cart entry not found")
	ErrInvalidAmount  = errors.New("cart entry amount must be positive")
)

type CartEntry struct {
	ID     int             `json:"id"`
	Title  string          `json:"title"`
	Price  decimal.Decimal `json:"price"`
	Image  string          `json:"image"`
	Amount int             `json:"amount"`
}

// NewCartEntry copies the product's catalog data into a single-unit entry.
func NewCartEntry(p Product) CartEntry {
	return CartEntry{
		ID:     p.ID,
		Title:  p.Title,
		Price:  p.Price,
		Image:  p.Image,
		Amount: 1,
	}
}

func (e CartEntry) SubTotal() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(e.Amount)))
}

func (e CartEntry) FormattedPrice() string {
	return FormatPrice(e.Price)
}

func (e CartEntry) FormattedSubTotal() string {
	return FormatPrice(e.SubTotal())
}

func FormatPrice(d decimal.Decimal) string {
	return currencySymbol + d.StringFixed(2)
}

// CartState is an ordered, id-unique list of entries. Every method that
// changes the cart returns a new value and leaves the receiver untouched.
type CartState struct {
	entries []CartEntry
}

func NewCartState(entries ...CartEntry) (CartState, error) {
	seen := make(map[int]struct{}, len(entries))
	out := make([]CartEntry, 0, len(entries))
	for _, e := range entries {
		if e.Amount < 1 {
			return CartState{}, fmt.Errorf("%w: id=%d amount=%d", ErrInvalidAmount, e.ID, e.Amount)
		}
		if _, dup := seen[e.ID]; dup {
			return CartState{}, fmt.Errorf("%w: id=%d", ErrDuplicateEntry, e.ID)
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return CartState{entries: out}, nil
}

func (s CartState) Len() int { return len(s.entries) }

func (s CartState) IsEmpty() bool { return len(s.entries) == 0 }

// Entries returns a copy; mutating it does not affect the state.
func (s CartState) Entries() []CartEntry {
	out := make([]CartEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s CartState) Find(id int) (CartEntry, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return CartEntry{}, false
	}
	return s.entries[i], true
}

func (s CartState) Contains(id int) bool {
	return s.indexOf(id) >= 0
}

func (s CartState) Append(e CartEntry) (CartState, error) {
	if e.Amount < 1 {
		return s, fmt.Errorf("%w: id=%d amount=%d", ErrInvalidAmount, e.ID, e.Amount)
	}
	if s.Contains(e.ID) {
		return s, fmt.Errorf("%w: id=%d", ErrDuplicateEntry, e.ID)
	}
	out := make([]CartEntry, len(s.entries), len(s.entries)+1)
	copy(out, s.entries)
	return CartState{entries: append(out, e)}, nil
}

func (s CartState) WithAmount(id, amount int) (CartState, error) {
	if amount < 1 {
		return s, fmt.Errorf("%w: id=%d amount=%d", ErrInvalidAmount, id, amount)
	}
	i := s.indexOf(id)
	if i < 0 {
		return s, fmt.Errorf("%w: id=%d", ErrEntryNotFound, id)
	}
	out := s.Entries()
	out[i].Amount = amount
	return CartState{entries: out}, nil
}

func (s CartState) Without(id int) (CartState, error) {
	i := s.indexOf(id)
	if i < 0 {
		return s, fmt.Errorf("%w: id=%d", ErrEntryNotFound, id)
	}
	out := make([]CartEntry, 0, len(s.entries)-1)
	out = append(out, s.entries[:i]...)
	out = append(out, s.entries[i+1:]...)
	return CartState{entries: out}, nil
}

func (s CartState) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.entries {
		total = total.Add(e.SubTotal())
	}
	return total
}

func (s CartState) FormattedTotal() string {
	return FormatPrice(s.Total())
}

// Equal compares ids, amounts, prices and order.
func (s CartState) Equal(o CartState) bool {
	if len(s.entries) != len(o.entries) {
		return false
	}
	for i := range s.entries {
		a, b := s.entries[i], o.entries[i]
		if a.ID != b.ID || a.Amount != b.Amount || a.Title != b.Title || a.Image != b.Image || !a.Price.Equal(b.Price) {
			return false
		}
	}
	return true
}

func (s CartState) indexOf(id int) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
