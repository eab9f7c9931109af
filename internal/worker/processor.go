package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/handyconnect/handyconnect-be/internal/api/model"
	"github.com/handyconnect/handyconnect-be/internal/notify"
)

// errMalformedMessage marks deliveries that can never be processed.
var errMalformedMessage = errors.New("malformed notification message")

// retryableError marks transient failures worth a redelivery.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// processDelivery parses one notification message and persists it.
func (w *Worker) processDelivery(ctx context.Context, body []byte) error {
	var msg notify.Message
	if err := json.Unmarshal(body, &msg); err != nil {
		w.logger.Error("Failed to parse notification JSON",
			slog.String("body", string(body)),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %v", errMalformedMessage, err)
	}

	if msg.UserID == "" || msg.Type == "" {
		return fmt.Errorf("%w: user_id and type are required", errMalformedMessage)
	}

	createdAt := msg.SentAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	notification := &model.Notification{
		NotificationID: uuid.NewString(),
		UserID:         msg.UserID,
		Type:           string(msg.Type),
		Message:        msg.Message,
		CreatedAt:      createdAt,
	}

	handleCtx, cancel := context.WithTimeout(ctx, w.handleTimeout)
	defer cancel()

	if err := w.storage.SaveNotification(handleCtx, notification); err != nil {
		return &retryableError{err: err}
	}

	w.logger.Debug("Notification persisted",
		slog.String("notification_id", notification.NotificationID),
		slog.String("user_id", notification.UserID),
		slog.String("type", notification.Type),
	)

	return nil
}
