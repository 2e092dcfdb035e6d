package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/rl1809/console-cart/internal/apperrors"
	"github.com/rl1809/console-cart/internal/core/domain"
	"github.com/rl1809/console-cart/internal/port"
	"github.com/rl1809/console-cart/internal/validator"
)

// InventoryService owns the catalog. Names and prices are held here in
// seed order; stock counts live in the stock repository. Callers only ever
// receive copies of the entries.
type InventoryService struct {
	stock   port.StockRepository
	logger  *log.Logger
	entries []domain.CatalogEntry
	index   map[string]int
}

func NewInventoryService(stock port.StockRepository, logger *log.Logger) *InventoryService {
	return &InventoryService{
		stock:  stock,
		logger: logger,
		index:  make(map[string]int),
	}
}

// Seed replaces the catalog with entries and writes their stock counts.
func (s *InventoryService) Seed(ctx context.Context, entries []domain.CatalogEntry) error {
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		if err := validator.Validate(e); err != nil {
			return fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if !e.UnitPrice.IsPositive() {
			return fmt.Errorf("catalog entry %s: unit price must be positive", e.Code)
		}
		if _, dup := index[e.Code]; dup {
			return fmt.Errorf("catalog entry %s: duplicate code", e.Code)
		}
		index[e.Code] = i
	}

	for _, e := range entries {
		if err := s.stock.SetStock(ctx, e.Code, e.AvailableQuantity); err != nil {
			return apperrors.Unexpected(err, "seed stock for "+e.Code)
		}
	}

	s.entries = append([]domain.CatalogEntry(nil), entries...)
	s.index = index

	s.logger.WithField("entries", len(entries)).Info("inventory seeded")
	return nil
}

// ListAll returns every entry in seed order with its current stock.
func (s *InventoryService) ListAll(ctx context.Context) ([]domain.CatalogEntry, error) {
	out := make([]domain.CatalogEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entry, err := s.withStock(ctx, e)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// Find looks up an entry by exact code. It returns nil, nil when the code
// is unknown.
func (s *InventoryService) Find(ctx context.Context, code string) (*domain.CatalogEntry, error) {
	i, ok := s.index[code]
	if !ok {
		return nil, nil
	}

	entry, err := s.withStock(ctx, s.entries[i])
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DecrementStock lowers the stock of code by amount, clamping at zero.
// Unknown codes and non-positive amounts are ignored.
func (s *InventoryService) DecrementStock(ctx context.Context, code string, amount int) error {
	if _, ok := s.index[code]; !ok || amount <= 0 {
		return nil
	}

	if err := s.stock.DecrementStock(ctx, code, amount); err != nil {
		return apperrors.Unexpected(err, "decrement stock for "+code)
	}

	s.logger.WithFields(log.Fields{"code": code, "amount": amount}).Debug("stock decremented")
	return nil
}

func (s *InventoryService) withStock(ctx context.Context, e domain.CatalogEntry) (domain.CatalogEntry, error) {
	qty, found, err := s.stock.GetStock(ctx, e.Code)
	if err != nil {
		return domain.CatalogEntry{}, apperrors.Unexpected(err, "read stock for "+e.Code)
	}
	// A store that lost the key has nothing to sell.
	if !found {
		qty = 0
	}
	e.AvailableQuantity = qty
	return e, nil
}
