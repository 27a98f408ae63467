package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rl1809/rocketcart/internal/core/domain"
)

type MemoryCatalogAdapter struct {
	mu        sync.RWMutex
	products  map[int]domain.Product
	inventory map[int]domain.Inventory
}

func NewMemoryCatalogAdapter() *MemoryCatalogAdapter {
	return &MemoryCatalogAdapter{
		products:  make(map[int]domain.Product),
		inventory: make(map[int]domain.Inventory),
	}
}

// NewSeededCatalogAdapter returns the demo shoe catalog.
func NewSeededCatalogAdapter() *MemoryCatalogAdapter {
	c := NewMemoryCatalogAdapter()
	seed := []struct {
		title string
		price string
		stock int
	}{
		{"Lightweight Comfortable Walking Sneaker", "179.90", 3},
		{"VR Leather Walking Sneaker", "139.90", 5},
		{"Adidas Duramo Lite 2.0", "219.90", 2},
		{"Nike Revolution 5", "129.90", 1},
		{"Asics Gel Kayano 25", "249.90", 5},
		{"Olympikus Flow Running Shoe", "199.90", 10},
	}
	for i, s := range seed {
		id := i + 1
		c.Put(domain.Product{
			ID:    id,
			Title: s.title,
			Price: decimal.RequireFromString(s.price),
			Image: fmt.Sprintf("https://static.rocketshoes.dev/img/%d.jpg", id),
		}, s.stock)
	}
	return c
}

func (m *MemoryCatalogAdapter) Put(p domain.Product, stock int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	m.inventory[p.ID] = domain.Inventory{ProductID: p.ID, Quantity: stock, UpdatedAt: time.Now().UTC()}
}

func (m *MemoryCatalogAdapter) GetProduct(_ context.Context, id int) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *MemoryCatalogAdapter) ListInventory(_ context.Context) ([]domain.Inventory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Inventory, 0, len(m.inventory))
	for _, inv := range m.inventory {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}
