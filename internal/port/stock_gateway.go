package port

import (
	"context"
	"errors"

	"github.com/rl1809/rocketcart/internal/core/domain"
)

var (
	ErrNotFound    = errors.New("product not found upstream")
	ErrUnavailable = errors.New("stock service unavailable")
)

type StockGateway interface {
	// FetchProduct returns ErrNotFound when the upstream does not know the id,
	// and ErrUnavailable for any transport failure
	FetchProduct(ctx context.Context, id int) (domain.Product, error)

	// FetchStock reports the units available right now, with the same error contract as FetchProduct
	FetchStock(ctx context.Context, id int) (domain.StockLevel, error)
}
