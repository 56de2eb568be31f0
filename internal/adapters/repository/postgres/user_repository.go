package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
	"github.com/vncsmyrnk/linkscore/internal/core/ports"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) ports.UserDirectory {
	return &UserRepository{db: db}
}

func (r *UserRepository) IsBanned(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsBanned, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	key := domain.UserKey(id)
	query := `SELECT COALESCE(is_banned, FALSE), created_at FROM records WHERE pk = $1 AND sk = $2`
	user := &domain.User{ID: id}
	err := r.db.QueryRowContext(ctx, query, key.PK, key.SK).Scan(&user.IsBanned, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	key := domain.UserKey(id)
	query := `
		INSERT INTO records (pk, sk, entity_type, is_banned)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (pk, sk) DO UPDATE
		SET is_banned = EXCLUDED.is_banned, version = records.version + 1, updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, key.PK, key.SK, domain.EntityUser, banned); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}
