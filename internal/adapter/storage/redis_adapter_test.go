package storage

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/rocketcart/internal/port"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisStock_SetAndGet(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisStockAdapter(client)

	// Setup
	client.Del(ctx, "stock:9001")
	require.NoError(t, adapter.SetStock(ctx, 9001, 7))

	// Test
	level, err := adapter.GetStock(ctx, 9001)
	require.NoError(t, err)
	require.NotNil(t, level)
	assert.Equal(t, 9001, level.ID)
	assert.Equal(t, 7, level.Amount)
}

func TestRedisStock_Missing(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	client.Del(ctx, "stock:9002")

	level, err := NewRedisStockAdapter(client).GetStock(ctx, 9002)
	require.NoError(t, err)
	assert.Nil(t, level)
}

func TestRedisSnapshot_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	key := "test:@RocketShoes:cart"
	client.Del(ctx, key)
	adapter := NewRedisSnapshotAdapter(client, key)

	_, err := adapter.Load(ctx)
	assert.ErrorIs(t, err, port.ErrSnapshotAbsent)

	require.NoError(t, adapter.Save(ctx, []byte(`[{"id":1}]`)))
	require.NoError(t, adapter.Save(ctx, []byte(`[{"id":2}]`)))

	got, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":2}]`, string(got))
}
