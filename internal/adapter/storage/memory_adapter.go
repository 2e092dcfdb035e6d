package storage

import (
	"context"
	"sync"
)

// MemoryAdapter keeps stock counts in process memory. It is the default
// store: stock lives exactly as long as the process.
type MemoryAdapter struct {
	mu    sync.Mutex
	stock map[string]int
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{stock: make(map[string]int)}
}

func (m *MemoryAdapter) SetStock(ctx context.Context, code string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stock[code] = quantity
	return nil
}

func (m *MemoryAdapter) GetStock(ctx context.Context, code string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	qty, ok := m.stock[code]
	return qty, ok, nil
}

func (m *MemoryAdapter) DecrementStock(ctx context.Context, code string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.stock[code]
	if !ok {
		return nil
	}
	m.stock[code] = max(0, current-quantity)
	return nil
}
