package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/handyconnect/handyconnect-be/internal/api/model"
)

// Storage handles all database operations for the notify worker
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// SaveNotification persists one notification row.
func (s *Storage) SaveNotification(ctx context.Context, notification *model.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, user_id, type, message, created_at)
		VALUES (:notification_id, :user_id, :type, :message, :created_at)
	`

	if _, err := s.db.NamedExecContext(ctx, query, notification); err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}

	return nil
}
