package gateway

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/rl1809/rocketcart/internal/adapter/stockrpc"
	"github.com/rl1809/rocketcart/internal/core/domain"
	"github.com/rl1809/rocketcart/internal/port"
)

type GRPCGateway struct {
	client stockrpc.StockServiceClient
}

func NewGRPCGateway(cc grpc.ClientConnInterface) *GRPCGateway {
	return &GRPCGateway{client: stockrpc.NewStockServiceClient(cc)}
}

// Dial opens a plaintext connection to the stock server. The connection is
// lazy: transport errors surface on the first call.
func Dial(target string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}, opts...)
	return grpc.NewClient(target, opts...)
}

var _ port.StockGateway = (*GRPCGateway)(nil)

func (g *GRPCGateway) FetchProduct(ctx context.Context, id int) (domain.Product, error) {
	reply, err := g.client.FetchProduct(ctx, &stockrpc.IDRequest{ID: id})
	if err != nil {
		return domain.Product{}, fromStatus(err)
	}

	price, err := decimal.NewFromString(reply.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: bad price %q: %w", port.ErrUnavailable, reply.Price, err)
	}

	p := domain.Product{
		ID:    reply.ID,
		Title: reply.Title,
		Price: price,
		Image: reply.Image,
	}
	if err := p.Validate(); err != nil {
		return domain.Product{}, fmt.Errorf("%w: %w", port.ErrUnavailable, err)
	}
	return p, nil
}

func (g *GRPCGateway) FetchStock(ctx context.Context, id int) (domain.StockLevel, error) {
	reply, err := g.client.FetchStock(ctx, &stockrpc.IDRequest{ID: id})
	if err != nil {
		return domain.StockLevel{}, fromStatus(err)
	}
	level := domain.StockLevel{ID: reply.ID, Amount: reply.Amount}
	if err := level.Validate(); err != nil {
		return domain.StockLevel{}, fmt.Errorf("%w: %w", port.ErrUnavailable, err)
	}
	return level, nil
}

func fromStatus(err error) error {
	if status.Code(err) == codes.NotFound {
		return port.ErrNotFound
	}
	return fmt.Errorf("%w: %w", port.ErrUnavailable, err)
}
