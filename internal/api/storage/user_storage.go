package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/handyconnect/handyconnect-be/internal/api/domain"
	"github.com/handyconnect/handyconnect-be/internal/api/model"
	"github.com/handyconnect/handyconnect-be/shared/postgresql"
	"github.com/jmoiron/sqlx"
)

type UserStorage struct {
	db *sqlx.DB
}

func NewUserStorage(pg *postgresql.Client) *UserStorage {
	return &UserStorage{
		db: pg.GetDB(),
	}
}

func (s *UserStorage) FindByID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	query := `SELECT user_id, name, role, created_at FROM users WHERE user_id = $1`

	err := s.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
