package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptStatus tracks a receipt from checkout to the archive.
type ReceiptStatus string

const (
	ReceiptStatusConfirmed ReceiptStatus = "confirmed"
	ReceiptStatusArchived  ReceiptStatus = "archived"
)

// ReceiptLine is a purchased line frozen at confirmation time.
type ReceiptLine struct {
	Code      string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Receipt records a confirmed purchase: the lines bought at their
// confirmation-time prices and the amounts charged.
type Receipt struct {
	ID        string
	SessionID string
	Lines     []ReceiptLine
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	Status    ReceiptStatus
	CreatedAt time.Time
}
