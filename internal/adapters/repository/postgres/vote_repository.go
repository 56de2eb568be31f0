package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
	"github.com/vncsmyrnk/linkscore/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.AggregateStore {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) GetLinkVote(ctx context.Context, hostname string, userID uuid.UUID) (domain.Link, *domain.Vote, error) {
	linkKey := domain.LinkKey(hostname)
	voteKey := domain.VoteKey(hostname, userID)

	query := `
		SELECT sk, entity_type, count_of_votes, sum_of_votes, value, version, created_at
		FROM records
		WHERE pk = $1 AND sk IN ($2, $3)
	`
	rows, err := r.db.QueryContext(ctx, query, linkKey.PK, linkKey.SK, voteKey.SK)
	if err != nil {
		return domain.Link{}, nil, fmt.Errorf("failed to get link: %w", err)
	}
	defer rows.Close()

	link := domain.Link{Hostname: hostname}
	var vote *domain.Vote
	for rows.Next() {
		var (
			sk         string
			entityType domain.EntityType
			count, sum sql.NullInt64
			value      sql.NullInt16
			version    int64
			v          domain.Vote
		)
		if err := rows.Scan(&sk, &entityType, &count, &sum, &value, &version, &v.CreatedAt); err != nil {
			return domain.Link{}, nil, fmt.Errorf("failed to scan link: %w", err)
		}
		switch entityType {
		case domain.EntityLinkDetail:
			link.CountOfVotes = int(count.Int64)
			link.SumOfVotes = int(sum.Int64)
			link.Version = version
		case domain.EntityVote:
			v.Hostname = hostname
			v.UserID = userID
			v.Value = domain.VoteValue(value.Int16)
			vote = &v
		}
	}
	if err := rows.Err(); err != nil {
		return domain.Link{}, nil, fmt.Errorf("failed to read link: %w", err)
	}
	return link, vote, nil
}

func (r *voteRepository) CommitVote(ctx context.Context, change domain.VoteChange) error {
	if change.Kind == domain.VoteRepeat {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := saveLink(ctx, tx, change.Base.Link, change.Link); err != nil {
		return fmt.Errorf("failed to save link: %w", err)
	}

	switch change.Kind {
	case domain.VoteNew:
		if err := insertVote(ctx, tx, change.Vote); err != nil {
			return fmt.Errorf("failed to save vote: %w", err)
		}
		if err := saveDailyActivity(ctx, tx, change.Base.Activity, change.Activity); err != nil {
			return fmt.Errorf("failed to save daily activity: %w", err)
		}
	case domain.VoteChanged:
		if err := changeVote(ctx, tx, change.Base.Vote.Value, change.Vote); err != nil {
			return fmt.Errorf("failed to change vote: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *voteRepository) GetLinks(ctx context.Context, hostnames []string) (map[string]domain.Link, error) {
	keys := make([]string, len(hostnames))
	byKey := make(map[string]string, len(hostnames))
	for i, h := range hostnames {
		keys[i] = domain.LinkKey(h).PK
		byKey[keys[i]] = h
	}

	query := `
		SELECT pk, count_of_votes, sum_of_votes, version
		FROM records
		WHERE pk = ANY($1) AND sk = pk AND entity_type = $2
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(keys), domain.EntityLinkDetail)
	if err != nil {
		return nil, fmt.Errorf("failed to get links: %w", err)
	}
	defer rows.Close()

	links := make(map[string]domain.Link, len(hostnames))
	for rows.Next() {
		var pk string
		var link domain.Link
		if err := rows.Scan(&pk, &link.CountOfVotes, &link.SumOfVotes, &link.Version); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		link.Hostname = byKey[pk]
		links[link.Hostname] = link
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read links: %w", err)
	}
	return links, nil
}

func saveLink(ctx context.Context, tx *sql.Tx, base, next domain.Link) error {
	key := domain.LinkKey(next.Hostname)
	if base.Version == 0 {
		query := `
			INSERT INTO records (pk, sk, entity_type, count_of_votes, sum_of_votes, version)
			VALUES ($1, $2, $3, $4, $5, 1)
			ON CONFLICT (pk, sk) DO NOTHING
		`
		return execCAS(ctx, tx, query, key.PK, key.SK, domain.EntityLinkDetail, next.CountOfVotes, next.SumOfVotes)
	}

	query := `
		UPDATE records
		SET count_of_votes = $3, sum_of_votes = $4, version = version + 1, updated_at = NOW()
		WHERE pk = $1 AND sk = $2 AND version = $5
	`
	return execCAS(ctx, tx, query, key.PK, key.SK, next.CountOfVotes, next.SumOfVotes, base.Version)
}

func insertVote(ctx context.Context, tx *sql.Tx, vote domain.Vote) error {
	key := domain.VoteKey(vote.Hostname, vote.UserID)
	query := `
		INSERT INTO records (pk, sk, entity_type, value, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (pk, sk) DO NOTHING
	`
	return execCAS(ctx, tx, query, key.PK, key.SK, domain.EntityVote, int(vote.Value), vote.CreatedAt)
}

func changeVote(ctx context.Context, tx *sql.Tx, old domain.VoteValue, vote domain.Vote) error {
	key := domain.VoteKey(vote.Hostname, vote.UserID)
	query := `
		UPDATE records
		SET value = $3, version = version + 1, updated_at = NOW()
		WHERE pk = $1 AND sk = $2 AND value = $4
	`
	return execCAS(ctx, tx, query, key.PK, key.SK, int(vote.Value), int(old))
}
