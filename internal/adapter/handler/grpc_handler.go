package handler

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/rocketcart/internal/adapter/stockrpc"
	"github.com/rl1809/rocketcart/internal/port"
)

type GRPCHandler struct {
	source port.StockGateway
	log    *zap.Logger
}

func NewGRPCHandler(source port.StockGateway, log *zap.Logger) *GRPCHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &GRPCHandler{source: source, log: log}
}

var _ stockrpc.StockServiceServer = (*GRPCHandler)(nil)

func (h *GRPCHandler) FetchProduct(ctx context.Context, req *stockrpc.IDRequest) (*stockrpc.ProductReply, error) {
	if req.ID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "invalid product id")
	}

	p, err := h.source.FetchProduct(ctx, req.ID)
	if err != nil {
		return nil, h.toStatus(err, req.ID)
	}

	return &stockrpc.ProductReply{
		ID:    p.ID,
		Title: p.Title,
		Price: p.Price.String(),
		Image: p.Image,
	}, nil
}

func (h *GRPCHandler) FetchStock(ctx context.Context, req *stockrpc.IDRequest) (*stockrpc.StockReply, error) {
	if req.ID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "invalid product id")
	}

	level, err := h.source.FetchStock(ctx, req.ID)
	if err != nil {
		return nil, h.toStatus(err, req.ID)
	}

	return &stockrpc.StockReply{ID: level.ID, Amount: level.Amount}, nil
}

func (h *GRPCHandler) toStatus(err error, id int) error {
	if errors.Is(err, port.ErrNotFound) {
		return status.Errorf(codes.NotFound, "product %d not found", id)
	}
	h.log.Error("stock lookup failed", zap.Int("product_id", id), zap.Error(err))
	return status.Error(codes.Unavailable, "stock service unavailable")
}
