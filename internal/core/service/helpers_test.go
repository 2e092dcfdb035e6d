package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/console-cart/internal/core/domain"
	"github.com/rl1809/console-cart/internal/logger"
)

var errStoreDown = errors.New("store unavailable")

// Mock StockRepository
type mockStockRepo struct {
	mu    sync.Mutex
	stock map[string]int
	// failDecrementOn makes DecrementStock fail for that code
	failDecrementOn string
	failGet         bool
	decrements      []string
}

func newMockStockRepo() *mockStockRepo {
	return &mockStockRepo{stock: make(map[string]int)}
}

func (m *mockStockRepo) SetStock(ctx context.Context, code string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stock[code] = quantity
	return nil
}

func (m *mockStockRepo) GetStock(ctx context.Context, code string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return 0, false, errStoreDown
	}
	qty, ok := m.stock[code]
	return qty, ok, nil
}

func (m *mockStockRepo) DecrementStock(ctx context.Context, code string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if code == m.failDecrementOn {
		return errStoreDown
	}
	if current, ok := m.stock[code]; ok {
		m.stock[code] = max(0, current-quantity)
	}
	m.decrements = append(m.decrements, code)
	return nil
}

func (m *mockStockRepo) get(code string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stock[code]
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testCatalog() []domain.CatalogEntry {
	return []domain.CatalogEntry{
		{Code: "P001", Name: "Dell Laptop", UnitPrice: price("800.00"), AvailableQuantity: 5},
		{Code: "P002", Name: "Logitech Mouse", UnitPrice: price("25.00"), AvailableQuantity: 15},
		{Code: "P007", Name: "HP Printer", UnitPrice: price("120.00"), AvailableQuantity: 4},
	}
}

func newTestInventory(t *testing.T) (*InventoryService, *mockStockRepo) {
	t.Helper()
	repo := newMockStockRepo()
	inv := NewInventoryService(repo, logger.Discard())
	require.NoError(t, inv.Seed(context.Background(), testCatalog()))
	return inv, repo
}

func newTestCart(t *testing.T, policy domain.ReservationPolicy) (*CartService, *InventoryService, *mockStockRepo) {
	t.Helper()
	inv, repo := newTestInventory(t)
	return NewCartService(inv, policy, logger.Discard()), inv, repo
}
