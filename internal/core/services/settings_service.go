package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
	"github.com/vncsmyrnk/linkscore/internal/core/ports"
)

type settingsService struct {
	store ports.SettingsStore
	log   logrus.FieldLogger
}

func NewSettingsService(store ports.SettingsStore, log logrus.FieldLogger) ports.SettingsService {
	return &settingsService{store: store, log: log}
}

func (s *settingsService) Get(ctx context.Context) (domain.Settings, error) {
	settings, err := s.store.Get(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, update domain.SettingsUpdate) (domain.Settings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	next, err := update.Apply(current)
	if err != nil {
		return domain.Settings{}, err
	}

	if err := s.store.Set(ctx, next); err != nil {
		return domain.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"voting_is_disabled":             next.VotingIsDisabled,
		"maximum_votes_per_user_per_day": next.MaximumVotesPerUserPerDay,
	}).Info("settings updated")
	return next, nil
}
