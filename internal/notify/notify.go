package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/handyconnect/handyconnect-be/shared/rabbitmq"
)

// Type identifies the notification kind.
type Type string

const (
	TypeJobRequested   Type = "JOB_REQUESTED"
	TypeJobAccepted    Type = "JOB_ACCEPTED"
	TypePayoutReleased Type = "PAYOUT_RELEASED"
)

// Message is the wire format published to the notifications queue.
type Message struct {
	UserID  string    `json:"user_id"`
	Type    Type      `json:"type"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

// Notifier is a fire-and-forget hook. Delivery carries no guarantee and is
// never part of job or payment correctness.
type Notifier interface {
	Send(ctx context.Context, userID string, notifType Type, message string)
}

// AMQPNotifier publishes notification messages to RabbitMQ.
type AMQPNotifier struct {
	client *rabbitmq.Client
	logger *slog.Logger
}

func NewAMQPNotifier(client *rabbitmq.Client, logger *slog.Logger) *AMQPNotifier {
	return &AMQPNotifier{
		client: client,
		logger: logger,
	}
}

func (n *AMQPNotifier) Send(ctx context.Context, userID string, notifType Type, message string) {
	if userID == "" {
		n.logger.Warn("Missing user id for notification",
			slog.String("type", string(notifType)),
			slog.String("message", message),
		)
		return
	}

	body, err := json.Marshal(Message{
		UserID:  userID,
		Type:    notifType,
		Message: message,
		SentAt:  time.Now().UTC(),
	})
	if err != nil {
		n.logger.Error("Failed to marshal notification",
			slog.String("type", string(notifType)),
			slog.Any("error", err),
		)
		return
	}

	if err := n.client.Publish(ctx, body, "application/json"); err != nil {
		// Best effort only. State is already correct without delivery.
		n.logger.Warn("Failed to publish notification",
			slog.String("user_id", userID),
			slog.String("type", string(notifType)),
			slog.Any("error", err),
		)
		return
	}

	n.logger.Debug("Notification published",
		slog.String("user_id", userID),
		slog.String("type", string(notifType)),
	)
}

// LogNotifier writes notifications to the log only. Used when the broker is
// disabled and in tests.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(ctx context.Context, userID string, notifType Type, message string) {
	if userID == "" {
		n.logger.Warn("Missing user id for notification",
			slog.String("type", string(notifType)),
			slog.String("message", message),
		)
		return
	}

	n.logger.Info("Notification",
		slog.String("user_id", userID),
		slog.String("type", string(notifType)),
		slog.String("message", message),
	)
}
