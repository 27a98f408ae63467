package domain

import "time"

// Inventory is the stock server's persistent view of a product's units.
type Inventory struct {
	ProductID int
	Quantity  int
	UpdatedAt time.Time
}
