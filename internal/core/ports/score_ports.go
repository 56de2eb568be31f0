package ports

import (
	"context"
	"time"

	"github.com/vncsmyrnk/linkscore/internal/core/domain"
)

// LinkCache holds recently read link aggregates keyed by hostname.
type LinkCache interface {
	GetLinks(ctx context.Context, hostnames []string) (map[string]domain.Link, error)
	SetLinks(ctx context.Context, links map[string]domain.Link) error
	Invalidate(ctx context.Context, hostname string) error
}

type ScoreService interface {
	GetScores(ctx context.Context, hostnames []string) ([]domain.LinkScore, error)
}

type Clock interface {
	Now() time.Time
}
