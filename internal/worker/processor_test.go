package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handyconnect/handyconnect-be/internal/api/model"
	"github.com/handyconnect/handyconnect-be/internal/notify"
)

type fakeStore struct {
	saved   []model.Notification
	saveErr error
}

func (f *fakeStore) SaveNotification(_ context.Context, n *model.Notification) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, *n)
	return nil
}

func newTestWorker(store *fakeStore) *Worker {
	return &Worker{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		storage:       store,
		handleTimeout: time.Second,
	}
}

func TestProcessDelivery(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a valid message", func(t *testing.T) {
		store := &fakeStore{}
		w := newTestWorker(store)

		sentAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
		body, err := json.Marshal(notify.Message{
			UserID:  "user-1",
			Type:    notify.TypeJobAccepted,
			Message: "Sipho Dlamini accepted your job",
			SentAt:  sentAt,
		})
		require.NoError(t, err)

		require.NoError(t, w.processDelivery(ctx, body))
		require.Len(t, store.saved, 1)

		saved := store.saved[0]
		assert.NotEmpty(t, saved.NotificationID)
		assert.Equal(t, "user-1", saved.UserID)
		assert.Equal(t, "JOB_ACCEPTED", saved.Type)
		assert.Equal(t, "Sipho Dlamini accepted your job", saved.Message)
		assert.Equal(t, sentAt, saved.CreatedAt)
	})

	t.Run("invalid JSON is malformed", func(t *testing.T) {
		store := &fakeStore{}
		w := newTestWorker(store)

		err := w.processDelivery(ctx, []byte("{not json"))
		require.Error(t, err)
		assert.ErrorIs(t, err, errMalformedMessage)
		assert.False(t, shouldRequeue(err))
		assert.Empty(t, store.saved)
	})

	t.Run("missing user id is malformed", func(t *testing.T) {
		store := &fakeStore{}
		w := newTestWorker(store)

		body, err := json.Marshal(notify.Message{Type: notify.TypeJobRequested, Message: "hi"})
		require.NoError(t, err)

		err = w.processDelivery(ctx, body)
		assert.ErrorIs(t, err, errMalformedMessage)
		assert.False(t, shouldRequeue(err))
	})

	t.Run("storage failure is retryable", func(t *testing.T) {
		store := &fakeStore{saveErr: errors.New("connection reset")}
		w := newTestWorker(store)

		body, err := json.Marshal(notify.Message{
			UserID: "user-1",
			Type:   notify.TypePayoutReleased,
		})
		require.NoError(t, err)

		err = w.processDelivery(ctx, body)
		require.Error(t, err)
		assert.True(t, shouldRequeue(err))
	})
}
