package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rl1809/rocketcart/internal/core/domain"
	"github.com/rl1809/rocketcart/internal/port"
)

var (
	ErrProductUnavailable = errors.New("product unavailable")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrProductNotInCart   = errors.New("product not in cart")
	ErrAddFailed          = errors.New("add product failed")
	ErrUpdateFailed       = errors.New("update product amount failed")
	ErrSnapshotWrite      = errors.New("cart snapshot write failed")
)

const (
	msgOutOfStock   = "Requested quantity out of stock"
	msgAddFailed    = "Error adding product"
	msgRemoveFailed = "Error removing product"
	msgUpdateFailed = "Error changing product quantity"
	msgSaveFailed   = "Cart could not be saved"
)

// Observer receives the committed cart after every successful mutation.
// Observers run synchronously and must not call back into mutating operations.
type Observer func(domain.CartState)

type Option func(*CartStore)

func WithLogger(log *zap.Logger) Option {
	return func(s *CartStore) {
		if log != nil {
			s.log = log
		}
	}
}

func WithMetrics(m port.MetricsRecorder) Option {
	return func(s *CartStore) {
		if m != nil {
			s.metrics = m
		}
	}
}

// CartStore owns the live cart. Mutations are serialized: each one reads the
// current state, consults the gateway, and either commits a new state or
// leaves the old one in place.
type CartStore struct {
	gateway   port.StockGateway
	snapshots port.SnapshotRepository
	notifier  port.Notifier
	metrics   port.MetricsRecorder
	log       *zap.Logger

	opMu sync.Mutex

	mu        sync.RWMutex
	state     domain.CartState
	observers []Observer
}

// NewCartStore restores the last snapshot. A missing or unreadable snapshot
// yields an empty cart.
func NewCartStore(ctx context.Context, gateway port.StockGateway, snapshots port.SnapshotRepository, notifier port.Notifier, opts ...Option) *CartStore {
	s := &CartStore{
		gateway:   gateway,
		snapshots: snapshots,
		notifier:  notifier,
		metrics:   nopRecorder{},
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = s.restore(ctx)
	return s
}

func (s *CartStore) restore(ctx context.Context) domain.CartState {
	raw, err := s.snapshots.Load(ctx)
	if errors.Is(err, port.ErrSnapshotAbsent) {
		return domain.CartState{}
	}
	if err != nil {
		s.log.Warn("load cart snapshot failed, starting empty", zap.Error(err))
		return domain.CartState{}
	}

	state, err := domain.DecodeSnapshot(raw)
	if err != nil {
		s.log.Warn("cart snapshot unreadable, starting empty", zap.Error(err))
		return domain.CartState{}
	}
	s.log.Debug("cart restored", zap.Int("entries", state.Len()))
	return state
}

func (s *CartStore) Cart() domain.CartState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *CartStore) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// AddProduct merges into an existing entry when the stock allows one more
// unit, otherwise appends a new single-unit entry built from the catalog.
func (s *CartStore) AddProduct(ctx context.Context, productID int) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	log := s.opLogger(port.OperationAdd, productID)
	current := s.Cart()

	if existing, ok := current.Find(productID); ok {
		stock, err := s.fetchStock(ctx, productID)
		if err != nil {
			return s.gatewayFailure(log, port.OperationAdd, ErrAddFailed, msgAddFailed, err)
		}
		if existing.Amount+1 > stock.Amount {
			err := fmt.Errorf("%w: product %d has %d available, cart holds %d",
				ErrInsufficientStock, productID, stock.Amount, existing.Amount)
			return s.reject(log, port.OperationAdd, port.OutcomeInsufficientStock, msgOutOfStock, err)
		}

		next, err := current.WithAmount(productID, existing.Amount+1)
		if err != nil {
			return s.reject(log, port.OperationAdd, port.OutcomeInvalidState, msgAddFailed, err)
		}
		return s.commit(ctx, log, port.OperationAdd, next)
	}

	product, err := s.fetchProduct(ctx, productID)
	if err != nil {
		return s.gatewayFailure(log, port.OperationAdd, ErrAddFailed, msgAddFailed, err)
	}

	next, err := current.Append(domain.NewCartEntry(product))
	if err != nil {
		return s.reject(log, port.OperationAdd, port.OutcomeInvalidState, msgAddFailed, err)
	}
	return s.commit(ctx, log, port.OperationAdd, next)
}

func (s *CartStore) RemoveProduct(ctx context.Context, productID int) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	log := s.opLogger(port.OperationRemove, productID)
	current := s.Cart()

	if !current.Contains(productID) {
		err := fmt.Errorf("%w: product %d", ErrProductNotInCart, productID)
		return s.reject(log, port.OperationRemove, port.OutcomeNotInCart, msgRemoveFailed, err)
	}

	next, err := current.Without(productID)
	if err != nil {
		return s.reject(log, port.OperationRemove, port.OutcomeInvalidState, msgRemoveFailed, err)
	}
	return s.commit(ctx, log, port.OperationRemove, next)
}

// UpdateProductAmount sets an entry's quantity. A non-positive amount is a
// no-op, as is an amount for a product that is not in the cart; the stock
// check still runs in the latter case.
func (s *CartStore) UpdateProductAmount(ctx context.Context, productID, amount int) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	log := s.opLogger(port.OperationUpdate, productID).With(zap.Int("amount", amount))

	if amount <= 0 {
		log.Debug("non-positive amount, nothing to do")
		s.metrics.RecordOperation(port.OperationUpdate, port.OutcomeNoop)
		return nil
	}

	stock, err := s.fetchStock(ctx, productID)
	if err != nil {
		return s.gatewayFailure(log, port.OperationUpdate, ErrUpdateFailed, msgUpdateFailed, err)
	}
	if amount > stock.Amount {
		err := fmt.Errorf("%w: product %d has %d available, requested %d",
			ErrInsufficientStock, productID, stock.Amount, amount)
		return s.reject(log, port.OperationUpdate, port.OutcomeInsufficientStock, msgOutOfStock, err)
	}

	current := s.Cart()
	if !current.Contains(productID) {
		log.Debug("product not in cart, nothing to update")
		s.metrics.RecordOperation(port.OperationUpdate, port.OutcomeNoop)
		return nil
	}

	next, err := current.WithAmount(productID, amount)
	if err != nil {
		return s.reject(log, port.OperationUpdate, port.OutcomeInvalidState, msgUpdateFailed, err)
	}
	return s.commit(ctx, log, port.OperationUpdate, next)
}

// commit installs next as the live state before saving it: a failed save is
// reported, but the in-memory cart stays authoritative for this process.
func (s *CartStore) commit(ctx context.Context, log *zap.Logger, op port.Operation, next domain.CartState) error {
	s.mu.Lock()
	s.state = next
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	saveErr := s.save(ctx, next)

	for _, o := range observers {
		o(next)
	}

	if saveErr != nil {
		log.Error("cart snapshot write failed", zap.Error(saveErr))
		s.notifier.Notify(port.SeverityWarning, msgSaveFailed)
		s.metrics.RecordOperation(op, port.OutcomeSnapshotError)
		return fmt.Errorf("%w: %w", ErrSnapshotWrite, saveErr)
	}

	log.Debug("cart committed", zap.Int("entries", next.Len()))
	s.metrics.RecordOperation(op, port.OutcomeCommitted)
	return nil
}

func (s *CartStore) save(ctx context.Context, state domain.CartState) error {
	raw, err := domain.EncodeSnapshot(state)
	if err != nil {
		return err
	}
	return s.snapshots.Save(ctx, raw)
}

// fetchProduct only accepts a valid record for the requested product.
func (s *CartStore) fetchProduct(ctx context.Context, productID int) (domain.Product, error) {
	p, err := s.gateway.FetchProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}
	if p.ID != productID {
		return domain.Product{}, fmt.Errorf("%w: requested product %d, upstream returned %d",
			port.ErrUnavailable, productID, p.ID)
	}
	if err := p.Validate(); err != nil {
		return domain.Product{}, fmt.Errorf("%w: %w", port.ErrUnavailable, err)
	}
	return p, nil
}

func (s *CartStore) fetchStock(ctx context.Context, productID int) (domain.StockLevel, error) {
	level, err := s.gateway.FetchStock(ctx, productID)
	if err != nil {
		return domain.StockLevel{}, err
	}
	if level.ID != productID {
		return domain.StockLevel{}, fmt.Errorf("%w: requested stock for %d, upstream returned %d",
			port.ErrUnavailable, productID, level.ID)
	}
	if err := level.Validate(); err != nil {
		return domain.StockLevel{}, fmt.Errorf("%w: %w", port.ErrUnavailable, err)
	}
	return level, nil
}

func (s *CartStore) gatewayFailure(log *zap.Logger, op port.Operation, opErr error, msg string, err error) error {
	if errors.Is(err, port.ErrNotFound) {
		return s.reject(log, op, port.OutcomeUnavailable, msg, fmt.Errorf("%w: %w", ErrProductUnavailable, err))
	}
	return s.reject(log, op, port.OutcomeGatewayError, msg, fmt.Errorf("%w: %w", opErr, err))
}

func (s *CartStore) reject(log *zap.Logger, op port.Operation, outcome port.Outcome, msg string, err error) error {
	log.Warn("cart operation rejected", zap.String("outcome", string(outcome)), zap.Error(err))
	s.notifier.Notify(port.SeverityError, msg)
	s.metrics.RecordOperation(op, outcome)
	return err
}

func (s *CartStore) opLogger(op port.Operation, productID int) *zap.Logger {
	return s.log.With(
		zap.String("op_id", uuid.NewString()),
		zap.String("op", string(op)),
		zap.Int("product_id", productID),
	)
}

type nopRecorder struct{}

func (nopRecorder) RecordOperation(port.Operation, port.Outcome) {}
