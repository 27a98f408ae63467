package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/rocketcart/internal/adapter/stockrpc"
	"github.com/rl1809/rocketcart/internal/core/domain"
	"github.com/rl1809/rocketcart/internal/port"
)

type fakeSource struct {
	err error
}

func (f fakeSource) FetchProduct(_ context.Context, id int) (domain.Product, error) {
	if f.err != nil {
		return domain.Product{}, f.err
	}
	if id != 1 {
		return domain.Product{}, port.ErrNotFound
	}
	return domain.Product{ID: 1, Title: "Boot", Price: decimal.RequireFromString("179.90"), Image: "boot.jpg"}, nil
}

func (f fakeSource) FetchStock(_ context.Context, id int) (domain.StockLevel, error) {
	if f.err != nil {
		return domain.StockLevel{}, f.err
	}
	if id != 1 {
		return domain.StockLevel{}, port.ErrNotFound
	}
	return domain.StockLevel{ID: 1, Amount: 3}, nil
}

func TestHTTPHandler_Routes(t *testing.T) {
	testCases := []struct {
		name   string
		source fakeSource
		path   string
		status int
		body   string
	}{
		{name: "product found", path: "/products/1", status: http.StatusOK, body: `{"id":1,"title":"Boot","price":"179.9","image":"boot.jpg"}`},
		{name: "stock found", path: "/stock/1", status: http.StatusOK, body: `{"id":1,"amount":3}`},
		{name: "product missing", path: "/products/2", status: http.StatusNotFound, body: `{"error":"not found"}`},
		{name: "stock missing", path: "/stock/2", status: http.StatusNotFound, body: `{"error":"not found"}`},
		{name: "bad id", path: "/stock/abc", status: http.StatusBadRequest, body: `{"error":"invalid product id"}`},
		{name: "negative id", path: "/products/-1", status: http.StatusBadRequest, body: `{"error":"invalid product id"}`},
		{name: "backend down", source: fakeSource{err: errors.New("redis down")}, path: "/stock/1", status: http.StatusServiceUnavailable, body: `{"error":"stock service unavailable"}`},
		{name: "health", path: "/health", status: http.StatusOK, body: `{"status":"ok"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHTTPHandler(tc.source, nil)
			rec := httptest.NewRecorder()

			h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestHTTPHandler_ProductDecodesAsDomain(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHTTPHandler(fakeSource{}, nil).Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/1", nil))

	var p domain.Product
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	assert.True(t, p.Price.Equal(decimal.RequireFromString("179.90")))
}

func TestGRPCHandler_StatusCodes(t *testing.T) {
	ctx := context.Background()

	_, err := NewGRPCHandler(fakeSource{}, nil).FetchStock(ctx, &stockrpc.IDRequest{ID: 0})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = NewGRPCHandler(fakeSource{}, nil).FetchProduct(ctx, &stockrpc.IDRequest{ID: 2})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = NewGRPCHandler(fakeSource{err: errors.New("db down")}, nil).FetchProduct(ctx, &stockrpc.IDRequest{ID: 1})
	assert.Equal(t, codes.Unavailable, status.Code(err))

	reply, err := NewGRPCHandler(fakeSource{}, nil).FetchProduct(ctx, &stockrpc.IDRequest{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "179.9", reply.Price)
}
