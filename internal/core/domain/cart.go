package domain

import "github.com/shopspring/decimal"

// CartLine references a catalog entry by code. It never holds a copy of
// the entry; prices and names are resolved through the inventory.
type CartLine struct {
	Code     string
	Quantity int
}

// LineItem is a cart line resolved against the inventory.
type LineItem struct {
	Entry    CatalogEntry
	Quantity int
}

// Subtotal returns unit price times quantity.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Entry.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SumSubtotals adds up the subtotal of every item.
func SumSubtotals(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ReservationPolicy decides how the cart checks stock when lines change.
type ReservationPolicy string

const (
	// ReservationPermissive checks each add against live stock only and
	// never re-checks edits. Repeated adds may over-commit a product.
	ReservationPermissive ReservationPolicy = "permissive"
	// ReservationReserve treats the quantity held in the cart as reserved:
	// the whole line must fit in live stock after every add or edit.
	ReservationReserve ReservationPolicy = "reserve"
)

// ParseReservationPolicy maps a configuration value to a policy.
func ParseReservationPolicy(s string) (ReservationPolicy, bool) {
	switch ReservationPolicy(s) {
	case ReservationPermissive, ReservationReserve:
		return ReservationPolicy(s), true
	default:
		return "", false
	}
}
