package service

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rl1809/console-cart/internal/core/domain"
	"github.com/rl1809/console-cart/internal/port"
)

const receiptWriteTimeout = 5 * time.Second

// ReceiptRecorder archives receipts in the background so a slow archive
// never holds up the shopper. Archive failures are logged and dropped, as
// are receipts that arrive while the queue is full.
type ReceiptRecorder struct {
	repo   port.ReceiptRepository
	queue  chan domain.Receipt
	logger *log.Logger
	wg     sync.WaitGroup
	once   sync.Once
}

func NewReceiptRecorder(repo port.ReceiptRepository, queueSize, workers int, logger *log.Logger) *ReceiptRecorder {
	r := &ReceiptRecorder{
		repo:   repo,
		queue:  make(chan domain.Receipt, queueSize),
		logger: logger,
	}

	for i := 0; i < workers; i++ {
		r.wg.Add(1)
		go func(id int) {
			defer r.wg.Done()
			r.workerLoop(id)
		}(i)
	}

	return r
}

// Record queues a receipt without blocking and reports whether it was
// queued. It must not be called after Close.
func (r *ReceiptRecorder) Record(receipt domain.Receipt) bool {
	select {
	case r.queue <- receipt:
		return true
	default:
		r.logger.WithFields(log.Fields{
			"receipt_id": receipt.ID,
			"queue_size": cap(r.queue),
		}).Error("receipt queue full, receipt not archived")
		return false
	}
}

// Close stops accepting receipts and waits for queued ones to be written.
func (r *ReceiptRecorder) Close() {
	r.once.Do(func() {
		close(r.queue)
	})
	r.wg.Wait()
}

func (r *ReceiptRecorder) workerLoop(id int) {
	for receipt := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), receiptWriteTimeout)

		fields := log.Fields{"worker": id, "receipt_id": receipt.ID}
		if err := r.repo.SaveReceipt(ctx, receipt); err != nil {
			r.logger.WithFields(fields).WithError(err).Error("failed to archive receipt")
		} else {
			r.logger.WithFields(fields).Info("receipt archived")
		}

		cancel()
	}
}
