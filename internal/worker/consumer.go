package worker

import (
	"context"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// dispatch forwards broker deliveries to the worker pool. It returns when
// the context is canceled, the worker is stopped, or the delivery channel
// closes (broker connection lost).
func (w *Worker) dispatch(ctx context.Context, messages <-chan amqp.Delivery) {
	w.logger.Info("Message dispatcher started",
		slog.String("worker_id", w.workerID),
	)

	defer close(w.deliveries)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Message dispatcher stopped - context canceled")
			return

		case <-w.stopChan:
			w.logger.Info("Message dispatcher stopped - worker stopping")
			return

		case err := <-w.rabbitClient.NotifyClose():
			w.logger.Error("RabbitMQ channel closed",
				slog.Any("error", err),
			)
			return

		case delivery, ok := <-messages:
			if !ok {
				w.logger.Warn("RabbitMQ delivery channel closed")
				return
			}

			select {
			case w.deliveries <- delivery:
			case <-ctx.Done():
				// Unacked delivery is redelivered after reconnect.
				return
			case <-w.stopChan:
				return
			}
		}
	}
}
