package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rl1809/rocketcart/internal/core/domain"
	"github.com/rl1809/rocketcart/internal/port"
)

// CatalogService answers the stock server's reads. It satisfies
// port.StockGateway so transport handlers can expose it unchanged.
type CatalogService struct {
	catalog port.CatalogRepository
	stock   port.StockRepository
	log     *zap.Logger
}

func NewCatalogService(catalog port.CatalogRepository, stock port.StockRepository, log *zap.Logger) *CatalogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogService{catalog: catalog, stock: stock, log: log}
}

var _ port.StockGateway = (*CatalogService)(nil)

func (s *CatalogService) FetchProduct(ctx context.Context, id int) (domain.Product, error) {
	p, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: %w", port.ErrUnavailable, err)
	}
	if p == nil {
		return domain.Product{}, port.ErrNotFound
	}
	return *p, nil
}

func (s *CatalogService) FetchStock(ctx context.Context, id int) (domain.StockLevel, error) {
	level, err := s.stock.GetStock(ctx, id)
	if err != nil {
		return domain.StockLevel{}, fmt.Errorf("%w: %w", port.ErrUnavailable, err)
	}
	if level == nil {
		return domain.StockLevel{}, port.ErrNotFound
	}
	return *level, nil
}

// SyncStock copies every inventory row into the stock counters.
func (s *CatalogService) SyncStock(ctx context.Context) (int, error) {
	rows, err := s.catalog.ListInventory(ctx)
	if err != nil {
		return 0, fmt.Errorf("list inventory: %w", err)
	}
	for _, inv := range rows {
		if inv.Quantity < 0 {
			return 0, fmt.Errorf("inventory %d: %w: stock=%d", inv.ProductID, domain.ErrInvalidRecord, inv.Quantity)
		}
		if err := s.stock.SetStock(ctx, inv.ProductID, inv.Quantity); err != nil {
			return 0, fmt.Errorf("set stock %d: %w", inv.ProductID, err)
		}
		s.log.Debug("stock synced",
			zap.Int("product_id", inv.ProductID),
			zap.Int("stock", inv.Quantity),
			zap.Time("updated_at", inv.UpdatedAt),
		)
	}
	return len(rows), nil
}
