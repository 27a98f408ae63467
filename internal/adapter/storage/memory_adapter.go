package storage

import (
	"context"
	"sync"

	"github.com/rl1809/rocketcart/internal/core/domain"
	"github.com/rl1809/rocketcart/internal/port"
)

type MemorySnapshotAdapter struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemorySnapshotAdapter() *MemorySnapshotAdapter {
	return &MemorySnapshotAdapter{}
}

func (m *MemorySnapshotAdapter) Load(_ context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data == nil {
		return nil, port.ErrSnapshotAbsent
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemorySnapshotAdapter) Save(_ context.Context, snapshot []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte{}, snapshot...)
	return nil
}

type MemoryStockAdapter struct {
	mu    sync.RWMutex
	stock map[int]int
}

func NewMemoryStockAdapter() *MemoryStockAdapter {
	return &MemoryStockAdapter{stock: make(map[int]int)}
}

func (m *MemoryStockAdapter) GetStock(_ context.Context, id int) (*domain.StockLevel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	amount, ok := m.stock[id]
	if !ok {
		return nil, nil
	}
	return &domain.StockLevel{ID: id, Amount: amount}, nil
}

func (m *MemoryStockAdapter) SetStock(_ context.Context, id int, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stock[id] = quantity
	return nil
}
