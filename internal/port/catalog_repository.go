package port

import (
	"context"

	"github.com/rl1809/rocketcart/internal/core/domain"
)

// CatalogRepository is the stock server's source of product records.
type CatalogRepository interface {
	// GetProduct returns nil, nil when the product does not exist
	GetProduct(ctx context.Context, id int) (*domain.Product, error)

	// ListInventory returns every inventory row, used to seed the stock counters
	ListInventory(ctx context.Context) ([]domain.Inventory, error)
}

// StockRepository holds the hot stock counters served to cart clients.
type StockRepository interface {
	// GetStock returns nil, nil when no counter exists for the id
	GetStock(ctx context.Context, id int) (*domain.StockLevel, error)

	// SetStock overwrites the counter for the id
	SetStock(ctx context.Context, id int, quantity int) error
}
