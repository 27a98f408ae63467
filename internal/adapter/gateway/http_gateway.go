package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rl1809/rocketcart/internal/core/domain"
	"github.com/rl1809/rocketcart/internal/port"
)

// HTTPGateway reads /products/{id} and /stock/{id} from a json-server style API.
type HTTPGateway struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPGateway uses no client-side timeout when timeout is zero; callers
// then bound each call through the context.
func NewHTTPGateway(baseURL string, timeout time.Duration) *HTTPGateway {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &HTTPGateway{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

var _ port.StockGateway = (*HTTPGateway)(nil)

func (g *HTTPGateway) FetchProduct(ctx context.Context, id int) (domain.Product, error) {
	var p domain.Product
	if err := g.getJSON(ctx, fmt.Sprintf("%s/products/%d", g.BaseURL, id), &p); err != nil {
		return domain.Product{}, err
	}
	if err := p.Validate(); err != nil {
		return domain.Product{}, fmt.Errorf("%w: %w", port.ErrUnavailable, err)
	}
	return p, nil
}

func (g *HTTPGateway) FetchStock(ctx context.Context, id int) (domain.StockLevel, error) {
	var s domain.StockLevel
	if err := g.getJSON(ctx, fmt.Sprintf("%s/stock/%d", g.BaseURL, id), &s); err != nil {
		return domain.StockLevel{}, err
	}
	if err := s.Validate(); err != nil {
		return domain.StockLevel{}, fmt.Errorf("%w: %w", port.ErrUnavailable, err)
	}
	return s, nil
}

func (g *HTTPGateway) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", port.ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", port.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return port.ErrNotFound
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status=%d", port.ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %w", port.ErrUnavailable, err)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, port.ErrNotFound)
}
