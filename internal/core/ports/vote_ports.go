package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
)

// AggregateStore owns links and votes.
type AggregateStore interface {
	// GetLinkVote reads the link aggregate and the user's current vote on it.
	// A missing link comes back zero valued with its hostname set, a missing
	// vote as nil.
	GetLinkVote(ctx context.Context, hostname string, userID uuid.UUID) (domain.Link, *domain.Vote, error)
	// CommitVote writes change atomically, provided none of the records in
	// change.Base were modified since they were read. Otherwise it returns
	// domain.ErrConflict and writes nothing. New votes also bump the user's
	// daily activity in the same unit.
	CommitVote(ctx context.Context, change domain.VoteChange) error
	// GetLinks returns the aggregates that exist among hostnames.
	GetLinks(ctx context.Context, hostnames []string) (map[string]domain.Link, error)
}

type VoteInput struct {
	Hostname string
	UserID   uuid.UUID
	Value    domain.VoteValue
}

type VoteService interface {
	Vote(ctx context.Context, input VoteInput) error
}
