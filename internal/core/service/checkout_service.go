package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/rl1809/console-cart/internal/core/domain"
)

// CheckoutService prices the cart and commits confirmed purchases to the
// inventory.
type CheckoutService struct {
	cart      *CartService
	inventory *InventoryService
	recorder  *ReceiptRecorder
	logger    *log.Logger
	sessionID string
}

// NewCheckoutService wires checkout for one session. recorder may be nil,
// in which case receipts are not archived.
func NewCheckoutService(cart *CartService, inventory *InventoryService, recorder *ReceiptRecorder, logger *log.Logger) *CheckoutService {
	return &CheckoutService{
		cart:      cart,
		inventory: inventory,
		recorder:  recorder,
		logger:    logger,
		sessionID: uuid.NewString(),
	}
}

// SessionID identifies the shopping session on receipts and log lines.
func (s *CheckoutService) SessionID() string {
	return s.sessionID
}

// Quote computes subtotal, tax and total for the current cart without
// changing anything.
func (s *CheckoutService) Quote(ctx context.Context) (domain.Invoice, error) {
	if s.cart.IsEmpty() {
		return domain.Invoice{}, ErrEmptyCart
	}

	items, err := s.cart.Items(ctx)
	if err != nil {
		return domain.Invoice{}, err
	}

	return domain.NewInvoice(items), nil
}

// Confirm decrements stock for every invoiced line in cart order and
// returns the receipt. Lines are applied one at a time; if the stock store
// fails midway the lines already applied stay applied. The cart is left
// as is: clearing it is the caller's decision.
func (s *CheckoutService) Confirm(ctx context.Context, invoice domain.Invoice) (domain.Receipt, error) {
	if len(invoice.Items) == 0 {
		return domain.Receipt{}, ErrEmptyCart
	}

	for i, item := range invoice.Items {
		if err := s.inventory.DecrementStock(ctx, item.Entry.Code, item.Quantity); err != nil {
			s.logger.WithFields(log.Fields{
				"session_id": s.sessionID,
				"code":       item.Entry.Code,
				"applied":    i,
				"lines":      len(invoice.Items),
			}).Error("checkout interrupted")
			return domain.Receipt{}, fmt.Errorf("commit line %s: %w", item.Entry.Code, err)
		}
	}

	receipt := s.newReceipt(invoice)

	s.logger.WithFields(log.Fields{
		"session_id": s.sessionID,
		"receipt_id": receipt.ID,
		"total":      receipt.Total.StringFixed(2),
	}).Info("purchase confirmed")

	if s.recorder != nil {
		s.recorder.Record(receipt)
	}

	return receipt, nil
}

func (s *CheckoutService) newReceipt(invoice domain.Invoice) domain.Receipt {
	lines := make([]domain.ReceiptLine, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		lines = append(lines, domain.ReceiptLine{
			Code:      item.Entry.Code,
			Name:      item.Entry.Name,
			UnitPrice: item.Entry.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	return domain.Receipt{
		ID:        uuid.NewString(),
		SessionID: s.sessionID,
		Lines:     lines,
		Subtotal:  invoice.Subtotal,
		Tax:       invoice.Tax,
		Total:     invoice.Total,
		Status:    domain.ReceiptStatusConfirmed,
		CreatedAt: time.Now().UTC(),
	}
}
