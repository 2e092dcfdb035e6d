package domain

import "github.com/shopspring/decimal"

// CatalogEntry is a product offered by the inventory together with its
// current stock count.
type CatalogEntry struct {
	Code              string          `validate:"required,alphanum"`
	Name              string          `validate:"required"`
	UnitPrice         decimal.Decimal `validate:"-"`
	AvailableQuantity int             `validate:"gte=0"`
}

// IsAvailable reports whether the entry's live stock covers quantity.
func (e CatalogEntry) IsAvailable(quantity int) bool {
	return e.AvailableQuantity >= quantity
}
