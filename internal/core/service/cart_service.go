package service

import (
	"context"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/rl1809/console-cart/internal/apperrors"
	"github.com/rl1809/console-cart/internal/core/domain"
)

// CartService holds the lines of one shopping session. Lines reference
// products by code and are resolved through the inventory whenever prices
// or stock are needed.
//
// Under ReservationPermissive an add is checked against live stock only,
// so repeated adds of one product can over-commit it, and edits are never
// checked. Under ReservationReserve the quantity already in the cart
// counts against stock.
type CartService struct {
	inventory *InventoryService
	policy    domain.ReservationPolicy
	logger    *log.Logger
	lines     []domain.CartLine
}

func NewCartService(inventory *InventoryService, policy domain.ReservationPolicy, logger *log.Logger) *CartService {
	if policy == "" {
		policy = domain.ReservationPermissive
	}
	return &CartService{
		inventory: inventory,
		policy:    policy,
		logger:    logger,
	}
}

// AddLine adds quantity units of code, merging into an existing line.
// On error the cart is unchanged.
func (s *CartService) AddLine(ctx context.Context, code string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	entry, err := s.inventory.Find(ctx, code)
	if err != nil {
		return err
	}
	if entry == nil {
		return ErrProductNotFound
	}

	i := s.findLine(code)
	requested := quantity
	if s.policy == domain.ReservationReserve && i >= 0 {
		requested += s.lines[i].Quantity
	}
	if !entry.IsAvailable(requested) {
		return ErrInsufficientStock
	}

	if i >= 0 {
		s.lines[i].Quantity += quantity
	} else {
		s.lines = append(s.lines, domain.CartLine{Code: code, Quantity: quantity})
	}

	s.logger.WithFields(log.Fields{"code": code, "quantity": quantity}).Info("line added to cart")
	return nil
}

// EditLine overwrites the quantity of an existing line.
func (s *CartService) EditLine(ctx context.Context, code string, quantity int) error {
	i := s.findLine(code)
	if i < 0 {
		return ErrLineNotFound
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	if s.policy == domain.ReservationReserve {
		entry, err := s.inventory.Find(ctx, code)
		if err != nil {
			return err
		}
		if entry == nil || !entry.IsAvailable(quantity) {
			return ErrInsufficientStock
		}
	}

	s.lines[i].Quantity = quantity

	s.logger.WithFields(log.Fields{"code": code, "quantity": quantity}).Info("cart line updated")
	return nil
}

// RemoveLine deletes the line for code and no other.
func (s *CartService) RemoveLine(ctx context.Context, code string) error {
	i := s.findLine(code)
	if i < 0 {
		return ErrLineNotFound
	}

	s.lines = append(s.lines[:i], s.lines[i+1:]...)

	s.logger.WithField("code", code).Info("line removed from cart")
	return nil
}

// Snapshot returns a copy of the lines in first-add order.
func (s *CartService) Snapshot() []domain.CartLine {
	return append([]domain.CartLine(nil), s.lines...)
}

// Items resolves every line against the inventory.
func (s *CartService) Items(ctx context.Context) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(s.lines))
	for _, line := range s.lines {
		entry, err := s.inventory.Find(ctx, line.Code)
		if err != nil {
			return nil, err
		}
		if entry == nil {
			return nil, apperrors.Unexpected(ErrProductNotFound, "resolve cart line "+line.Code)
		}
		items = append(items, domain.LineItem{Entry: *entry, Quantity: line.Quantity})
	}
	return items, nil
}

// Total is the sum of unit price times quantity over all lines.
func (s *CartService) Total(ctx context.Context) (decimal.Decimal, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.SumSubtotals(items), nil
}

func (s *CartService) IsEmpty() bool {
	return len(s.lines) == 0
}

// Clear empties the cart.
func (s *CartService) Clear() {
	s.lines = nil
	s.logger.Info("cart cleared")
}

func (s *CartService) findLine(code string) int {
	for i := range s.lines {
		if s.lines[i].Code == code {
			return i
		}
	}
	return -1
}
