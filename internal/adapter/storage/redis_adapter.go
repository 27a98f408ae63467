package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/rocketcart/internal/core/domain"
	"github.com/rl1809/rocketcart/internal/port"
)

const stockKeyPrefix = "stock:"

// RedisStockAdapter keeps one integer counter per product under stock:<id>.
type RedisStockAdapter struct {
	client *redis.Client
}

func NewRedisStockAdapter(client *redis.Client) *RedisStockAdapter {
	return &RedisStockAdapter{client: client}
}

func (r *RedisStockAdapter) GetStock(ctx context.Context, id int) (*domain.StockLevel, error) {
	amount, err := r.client.Get(ctx, stockKey(id)).Int()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stock %d: %w", id, err)
	}
	return &domain.StockLevel{ID: id, Amount: amount}, nil
}

func (r *RedisStockAdapter) SetStock(ctx context.Context, id int, quantity int) error {
	return r.client.Set(ctx, stockKey(id), quantity, 0).Err()
}

func stockKey(id int) string {
	return stockKeyPrefix + strconv.Itoa(id)
}

// RedisSnapshotAdapter stores the serialized cart under a single key. SET
// replaces the value atomically, so readers see either the old or new cart.
type RedisSnapshotAdapter struct {
	client *redis.Client
	key    string
}

func NewRedisSnapshotAdapter(client *redis.Client, key string) *RedisSnapshotAdapter {
	return &RedisSnapshotAdapter{client: client, key: key}
}

func (r *RedisSnapshotAdapter) Load(ctx context.Context) ([]byte, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrSnapshotAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return b, nil
}

func (r *RedisSnapshotAdapter) Save(ctx context.Context, snapshot []byte) error {
	if err := r.client.Set(ctx, r.key, snapshot, 0).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
