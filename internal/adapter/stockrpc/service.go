// Package stockrpc declares the gRPC StockService used between cart clients
// and the stock server. Messages are plain structs carried by a JSON codec.
package stockrpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ServiceName        = "rocketcart.stock.v1.StockService"
	FetchProductMethod = "/" + ServiceName + "/FetchProduct"
	FetchStockMethod   = "/" + ServiceName + "/FetchStock"
)

type IDRequest struct {
	ID int `json:"id"`
}

type ProductReply struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Price string `json:"price"`
	Image string `json:"image"`
}

type StockReply struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}

type StockServiceClient interface {
	FetchProduct(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*ProductReply, error)
	FetchStock(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*StockReply, error)
}

type stockServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewStockServiceClient(cc grpc.ClientConnInterface) StockServiceClient {
	return &stockServiceClient{cc: cc}
}

func (c *stockServiceClient) FetchProduct(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*ProductReply, error) {
	out := new(ProductReply)
	if err := c.cc.Invoke(ctx, FetchProductMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *stockServiceClient) FetchStock(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*StockReply, error) {
	out := new(StockReply)
	if err := c.cc.Invoke(ctx, FetchStockMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

type StockServiceServer interface {
	FetchProduct(context.Context, *IDRequest) (*ProductReply, error)
	FetchStock(context.Context, *IDRequest) (*StockReply, error)
}

func RegisterStockServiceServer(s grpc.ServiceRegistrar, srv StockServiceServer) {
	s.RegisterService(&StockServiceDesc, srv)
}

var StockServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "FetchProduct", Handler: fetchProductHandler},
		{MethodName: "FetchStock", Handler: fetchStockHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func fetchProductHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(IDRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StockServiceServer).FetchProduct(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FetchProductMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StockServiceServer).FetchProduct(ctx, req.(*IDRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func fetchStockHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(IDRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StockServiceServer).FetchStock(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FetchStockMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StockServiceServer).FetchStock(ctx, req.(*IDRequest))
	}
	return interceptor(ctx, in, info, handler)
}
