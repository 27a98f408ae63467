package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidRecord = errors.New("invalid catalog record")

type Product struct {
	ID    int             `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

func (p Product) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("%w: product id=%d", ErrInvalidRecord, p.ID)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: product %d price=%s", ErrInvalidRecord, p.ID, p.Price)
	}
	return nil
}

// StockLevel is only authoritative at the moment it was read.
type StockLevel struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}

func (s StockLevel) Validate() error {
	if s.ID <= 0 {
		return fmt.Errorf("%w: stock id=%d", ErrInvalidRecord, s.ID)
	}
	if s.Amount < 0 {
		return fmt.Errorf("%w: stock %d amount=%d", ErrInvalidRecord, s.ID, s.Amount)
	}
	return nil
}
