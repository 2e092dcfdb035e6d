package port

import (
	"context"

	"github.com/rl1809/console-cart/internal/core/domain"
)

type ReceiptRepository interface {
	// SaveReceipt archives a confirmed purchase with its lines
	SaveReceipt(ctx context.Context, receipt domain.Receipt) error
}
