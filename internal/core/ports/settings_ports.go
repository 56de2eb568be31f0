package ports

import (
	"context"

	"github.com/vncsmyrnk/linkscore/internal/core/domain"
)

// SettingsStore must observe every committed write on the next Get.
type SettingsStore interface {
	Get(ctx context.Context) (domain.Settings, error)
	Set(ctx context.Context, settings domain.Settings) error
}

type SettingsService interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, update domain.SettingsUpdate) (domain.Settings, error)
}
