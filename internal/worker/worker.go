// Package worker consumes notification messages from RabbitMQ and persists
// them so users can read their notification feed later. Delivery is
// at-least-once; the insert is idempotent enough for that (duplicates are
// harmless rows, never corrupted state).
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/handyconnect/handyconnect-be/internal/api/model"
	"github.com/handyconnect/handyconnect-be/internal/worker/storage"
	"github.com/handyconnect/handyconnect-be/shared/postgresql"
	"github.com/handyconnect/handyconnect-be/shared/rabbitmq"
)

// Config holds worker configuration
type Config struct {
	Logger        *slog.Logger
	DBClient      *postgresql.Client
	RabbitClient  *rabbitmq.Client
	Concurrency   int
	QueueSize     int
	HandleTimeout time.Duration
}

// notificationStore is the slice of storage the processor needs.
type notificationStore interface {
	SaveNotification(ctx context.Context, notification *model.Notification) error
}

// Worker represents the notification delivery worker
type Worker struct {
	logger        *slog.Logger
	rabbitClient  *rabbitmq.Client
	storage       notificationStore
	workerID      string
	concurrency   int
	handleTimeout time.Duration
	deliveries    chan amqp.Delivery
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = cfg.Concurrency
	}

	return &Worker{
		logger:        cfg.Logger,
		rabbitClient:  cfg.RabbitClient,
		storage:       storage.NewStorage(cfg.DBClient.GetDB(), cfg.Logger),
		workerID:      "notify-worker-" + uuid.NewString(),
		concurrency:   cfg.Concurrency,
		handleTimeout: cfg.HandleTimeout,
		deliveries:    make(chan amqp.Delivery, queueSize),
		stopChan:      make(chan struct{}),
	}
}

// Start consumes the notifications queue until the context is canceled or
// the broker channel dies.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting notification worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("handle_timeout", w.handleTimeout),
	)

	messages, err := w.rabbitClient.Consume(w.workerID)
	if err != nil {
		return err
	}

	w.spawnWorkerPool(ctx)
	w.dispatch(ctx, messages)

	return nil
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	w.logger.Info("Stopping notification worker",
		slog.String("worker_id", w.workerID),
	)
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("Notification worker stopped")
}
