package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/linkscore/internal/core/domain"
	"github.com/vncsmyrnk/linkscore/internal/core/ports"
)

type settingsRepository struct {
	db       *sql.DB
	defaults domain.Settings
}

// NewSettingsRepository returns a store that reports defaults until an
// administrator saves settings for the first time.
func NewSettingsRepository(db *sql.DB, defaults domain.Settings) ports.SettingsStore {
	return &settingsRepository{db: db, defaults: defaults}
}

func (r *settingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	key := domain.SettingsKey()
	var settings domain.Settings
	query := `SELECT voting_is_disabled, maximum_votes_per_user_per_day FROM records WHERE pk = $1 AND sk = $2`
	err := r.db.QueryRowContext(ctx, query, key.PK, key.SK).Scan(&settings.VotingIsDisabled, &settings.MaximumVotesPerUserPerDay)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r.defaults, nil
		}
		return domain.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func (r *settingsRepository) Set(ctx context.Context, settings domain.Settings) error {
	key := domain.SettingsKey()
	query := `
		INSERT INTO records (pk, sk, entity_type, voting_is_disabled, maximum_votes_per_user_per_day)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (pk, sk) DO UPDATE
		SET voting_is_disabled = EXCLUDED.voting_is_disabled,
			maximum_votes_per_user_per_day = EXCLUDED.maximum_votes_per_user_per_day,
			version = records.version + 1,
			updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, key.PK, key.SK, domain.EntitySettings, settings.VotingIsDisabled, settings.MaximumVotesPerUserPerDay)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
