package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// spawnWorkerPool spawns N worker goroutines based on concurrency configuration
func (w *Worker) spawnWorkerPool(ctx context.Context) {
	w.logger.Info("Spawning worker pool",
		slog.Int("concurrency", w.concurrency),
		slog.String("worker_id", w.workerID),
	)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.workerLoop(ctx, i)
	}
}

// workerLoop is the main processing loop for each worker goroutine
func (w *Worker) workerLoop(ctx context.Context, workerNum int) {
	defer w.wg.Done()

	workerName := fmt.Sprintf("%s-%d", w.workerID, workerNum)
	w.logger.Info("Worker goroutine started",
		slog.String("worker_name", workerName),
	)

	for delivery := range w.deliveries {
		err := w.processDelivery(ctx, delivery.Body)
		if err == nil {
			if ackErr := delivery.Ack(false); ackErr != nil {
				w.logger.Error("Failed to ACK message",
					slog.String("worker_name", workerName),
					slog.String("error", ackErr.Error()),
				)
			}
			continue
		}

		requeue := shouldRequeue(err)
		w.logger.Error("Notification processing failed",
			slog.String("worker_name", workerName),
			slog.Bool("requeue", requeue),
			slog.String("error", err.Error()),
		)

		if nackErr := delivery.Nack(false, requeue); nackErr != nil {
			w.logger.Error("Failed to NACK message",
				slog.String("worker_name", workerName),
				slog.String("error", nackErr.Error()),
			)
		}
	}

	w.logger.Info("Worker goroutine stopping - deliveries channel closed",
		slog.String("worker_name", workerName),
	)
}

// shouldRequeue decides the NACK requeue flag. Malformed messages can never
// succeed and are dropped; storage failures are transient and worth a retry.
func shouldRequeue(err error) bool {
	if errors.Is(err, errMalformedMessage) {
		return false
	}

	var retryableErr *retryableError
	return errors.As(err, &retryableErr)
}
