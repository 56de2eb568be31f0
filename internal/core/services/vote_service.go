package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
	"github.com/vncsmyrnk/linkscore/internal/core/ports"
)

type RetryConfig struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      50,
		InitialInterval: 10 * time.Millisecond,
		MaxInterval:     200 * time.Millisecond,
	}
}

type voteService struct {
	settings ports.SettingsStore
	users    ports.UserDirectory
	activity ports.DailyActivityTracker
	store    ports.AggregateStore
	cache    ports.LinkCache
	clock    ports.Clock
	retry    RetryConfig
	log      logrus.FieldLogger
}

func NewVoteService(
	settings ports.SettingsStore,
	users ports.UserDirectory,
	activity ports.DailyActivityTracker,
	store ports.AggregateStore,
	cache ports.LinkCache,
	clock ports.Clock,
	retry RetryConfig,
	log logrus.FieldLogger,
) ports.VoteService {
	return &voteService{
		settings: settings,
		users:    users,
		activity: activity,
		store:    store,
		cache:    cache,
		clock:    clock,
		retry:    retry,
		log:      log,
	}
}

func (s *voteService) Vote(ctx context.Context, input ports.VoteInput) error {
	if err := validateVote(input); err != nil {
		return err
	}

	log := s.log.WithFields(logrus.Fields{
		"hostname": input.Hostname,
		"user_id":  input.UserID,
		"value":    input.Value,
	})

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return unavailable("failed to read settings", err)
	}
	if settings.VotingIsDisabled {
		log.Debug("vote rejected: voting disabled")
		return domain.ErrVotingDisabled
	}

	banned, err := s.users.IsBanned(ctx, input.UserID)
	if err != nil {
		return unavailable("failed to read user", err)
	}
	if banned {
		log.Debug("vote rejected: user banned")
		return domain.ErrUserBanned
	}

	attempts := 0
	operation := func() error {
		attempts++
		err := s.apply(ctx, input, settings, log)
		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrConflict) {
			log.WithField("attempt", attempts).Debug("optimistic conflict, retrying")
			return err
		}
		return backoff.Permanent(err)
	}

	err = backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), s.retry.MaxRetries), ctx))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrConflict):
		log.WithField("attempts", attempts).Warn("giving up after repeated conflicts")
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	default:
		if _, ok := domain.IsRejection(err); ok {
			log.WithError(err).Debug("vote rejected")
		}
		return err
	}
}

// apply runs one read-decide-write round of the aggregate-delta protocol.
func (s *voteService) apply(ctx context.Context, input ports.VoteInput, settings domain.Settings, log logrus.FieldLogger) error {
	now := s.clock.Now()
	day := domain.Day(now)

	link, vote, err := s.store.GetLinkVote(ctx, input.Hostname, input.UserID)
	if err != nil {
		return unavailable("failed to read link", err)
	}
	link.Hostname = input.Hostname

	state := domain.VoteState{Link: link, Vote: vote}
	if vote == nil {
		activity, err := s.activity.GetDailyActivity(ctx, input.UserID, day)
		if err != nil {
			return unavailable("failed to read daily activity", err)
		}
		if activity.NewLinksVotedCount >= settings.MaximumVotesPerUserPerDay {
			return domain.ErrQuotaExceeded
		}
		activity.UserID = input.UserID
		activity.Day = day
		state.Activity = activity
	}

	change := domain.PlanVote(state, input.UserID, input.Value, now)
	if change.Kind == domain.VoteRepeat {
		return nil
	}

	if err := s.store.CommitVote(ctx, change); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return err
		}
		return unavailable("failed to commit vote", err)
	}

	log.WithFields(logrus.Fields{
		"kind":  change.Kind,
		"count": change.Link.CountOfVotes,
		"sum":   change.Link.SumOfVotes,
	}).Debug("vote recorded")

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, input.Hostname); err != nil {
			log.WithError(err).Warn("failed to invalidate cached link")
		}
	}
	return nil
}

func (s *voteService) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.retry.InitialInterval
	b.MaxInterval = s.retry.MaxInterval
	b.MaxElapsedTime = 0
	return b
}

func validateVote(input ports.VoteInput) error {
	if !input.Value.Valid() {
		return domain.ErrInvalidVote
	}
	if input.UserID == uuid.Nil {
		return domain.ErrInvalidUserID
	}
	if !domain.ValidHostname(input.Hostname) {
		return domain.ErrInvalidHostname
	}
	return nil
}

func unavailable(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, domain.ErrUnavailable, err)
}
