package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
)

type DailyActivityTracker interface {
	GetDailyActivity(ctx context.Context, userID uuid.UUID, day string) (domain.DailyUserActivity, error)
}
