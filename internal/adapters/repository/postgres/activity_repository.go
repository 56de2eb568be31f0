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

type activityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) ports.DailyActivityTracker {
	return &activityRepository{db: db}
}

func (r *activityRepository) GetDailyActivity(ctx context.Context, userID uuid.UUID, day string) (domain.DailyUserActivity, error) {
	key := domain.DailyUserActivityKey(day, userID)
	activity := domain.DailyUserActivity{UserID: userID, Day: day}

	query := `SELECT new_links_voted_count, version FROM records WHERE pk = $1 AND sk = $2`
	err := r.db.QueryRowContext(ctx, query, key.PK, key.SK).Scan(&activity.NewLinksVotedCount, &activity.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return activity, nil
		}
		return domain.DailyUserActivity{}, fmt.Errorf("failed to get daily activity: %w", err)
	}
	return activity, nil
}

// saveDailyActivity is written as part of CommitVote's transaction.
func saveDailyActivity(ctx context.Context, tx *sql.Tx, base, next domain.DailyUserActivity) error {
	key := domain.DailyUserActivityKey(next.Day, next.UserID)
	if base.Version == 0 {
		query := `
			INSERT INTO records (pk, sk, entity_type, new_links_voted_count, version)
			VALUES ($1, $2, $3, $4, 1)
			ON CONFLICT (pk, sk) DO NOTHING
		`
		return execCAS(ctx, tx, query, key.PK, key.SK, domain.EntityUserHistory, next.NewLinksVotedCount)
	}

	query := `
		UPDATE records
		SET new_links_voted_count = $3, version = version + 1, updated_at = NOW()
		WHERE pk = $1 AND sk = $2 AND version = $4
	`
	return execCAS(ctx, tx, query, key.PK, key.SK, next.NewLinksVotedCount, base.Version)
}
