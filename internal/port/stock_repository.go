package port

import "context"

type StockRepository interface {
	// SetStock overwrites the stock count of a product
	SetStock(ctx context.Context, code string, quantity int) error

	// GetStock returns the stock count, found is false for unknown codes
	GetStock(ctx context.Context, code string) (quantity int, found bool, err error)

	// DecrementStock lowers stock by quantity, clamping at zero; unknown codes are ignored
	DecrementStock(ctx context.Context, code string, quantity int) error
}
