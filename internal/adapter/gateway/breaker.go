package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/rl1809/rocketcart/internal/core/domain"
	"github.com/rl1809/rocketcart/internal/port"
)

type BreakerSettings struct {
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

// Breaker stops calling an upstream that keeps failing and answers
// ErrUnavailable until the open timeout passes. It never retries, and
// ErrNotFound does not count as a failure.
type Breaker struct {
	next port.StockGateway
	cb   *gobreaker.CircuitBreaker[any]
}

func NewBreaker(next port.StockGateway, cfg BreakerSettings, log *zap.Logger) *Breaker {
	if log == nil {
		log = zap.NewNop()
	}
	st := gobreaker.Settings{
		Name:        "stock-gateway",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isNotFound(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}
	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker[any](st)}
}

var _ port.StockGateway = (*Breaker)(nil)

func (b *Breaker) FetchProduct(ctx context.Context, id int) (domain.Product, error) {
	return execute(b, func() (domain.Product, error) { return b.next.FetchProduct(ctx, id) })
}

func (b *Breaker) FetchStock(ctx context.Context, id int) (domain.StockLevel, error) {
	return execute(b, func() (domain.StockLevel, error) { return b.next.FetchStock(ctx, id) })
}

func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

func execute[T any](b *Breaker, fn func() (T, error)) (T, error) {
	var zero T
	v, err := b.cb.Execute(func() (any, error) {
		res, err := fn()
		return res, err
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return zero, fmt.Errorf("%w: %w", port.ErrUnavailable, err)
	}
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}
