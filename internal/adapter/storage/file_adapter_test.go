package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/rocketcart/internal/port"
)

func TestFileAdapter_LoadMissing(t *testing.T) {
	adapter := NewFileAdapter(filepath.Join(t.TempDir(), "cart.json"))

	_, err := adapter.Load(context.Background())
	assert.ErrorIs(t, err, port.ErrSnapshotAbsent)
}

func TestFileAdapter_SaveReplacesSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "cart.json")
	adapter := NewFileAdapter(path)
	ctx := context.Background()

	require.NoError(t, adapter.Save(ctx, []byte(`[{"id":1}]`)))
	require.NoError(t, adapter.Save(ctx, []byte(`[]`)))

	got, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestMemoryAdapters(t *testing.T) {
	ctx := context.Background()

	snapshots := NewMemorySnapshotAdapter()
	_, err := snapshots.Load(ctx)
	assert.ErrorIs(t, err, port.ErrSnapshotAbsent)

	raw := []byte(`[]`)
	require.NoError(t, snapshots.Save(ctx, raw))
	raw[0] = 'x'
	got, err := snapshots.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	stock := NewMemoryStockAdapter()
	level, err := stock.GetStock(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, level)
	require.NoError(t, stock.SetStock(ctx, 1, 3))
	level, err = stock.GetStock(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, level.Amount)
}

func TestSeededCatalog(t *testing.T) {
	ctx := context.Background()
	catalog := NewSeededCatalogAdapter()

	p, err := catalog.GetProduct(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "$139.90", "$"+p.Price.StringFixed(2))

	missing, err := catalog.GetProduct(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)

	inv, err := catalog.ListInventory(ctx)
	require.NoError(t, err)
	require.Len(t, inv, 6)
	assert.Equal(t, 1, inv[0].ProductID)
	assert.Equal(t, 10, inv[5].Quantity)
}
