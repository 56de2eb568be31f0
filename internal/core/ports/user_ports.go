package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
)

// UserDirectory resolves unknown users as not banned.
type UserDirectory interface {
	IsBanned(ctx context.Context, userID uuid.UUID) (bool, error)
	SetBanned(ctx context.Context, userID uuid.UUID, banned bool) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	SetBanned(ctx context.Context, id uuid.UUID, banned bool) (*domain.User, error)
}
