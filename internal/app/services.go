package app

import (
	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/linkscore/internal/config"
	"github.com/vncsmyrnk/linkscore/internal/core/ports"
	"github.com/vncsmyrnk/linkscore/internal/core/services"
)

type Services struct {
	Votes    ports.VoteService
	Scores   ports.ScoreService
	Settings ports.SettingsService
	Users    ports.UserService
}

func NewServices(cfg *config.Config, stores *Stores, cache ports.LinkCache, clk ports.Clock, log logrus.FieldLogger) *Services {
	retry := services.RetryConfig{
		MaxRetries:      cfg.Voting.MaxRetries,
		InitialInterval: cfg.Voting.RetryInitialInterval,
		MaxInterval:     cfg.Voting.RetryMaxInterval,
	}

	return &Services{
		Votes: services.NewVoteService(
			stores.Settings, stores.Users, stores.Activity, stores.Aggregates,
			cache, clk, retry, log.WithField("component", "votes"),
		),
		Scores: services.NewScoreService(stores.Aggregates, cache, services.ScoreOptions{
			Thresholds: cfg.Scoring.Thresholds(),
			Randomize:  cfg.Scoring.Randomize,
		}, log.WithField("component", "scores")),
		Settings: services.NewSettingsService(stores.Settings, log.WithField("component", "settings")),
		Users:    services.NewUserService(stores.Users, log.WithField("component", "users")),
	}
}
