package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vncsmyrnk/linkscore/internal/app"
	"github.com/vncsmyrnk/linkscore/internal/config"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
)

// withServices opens the configured store and hands the admin services to fn.
func withServices(ctx context.Context, fn func(*app.Services) error) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if cfg.Database.Driver == config.DriverMemory {
		return errors.New("the memory store lives inside the server process; use the admin HTTP routes instead")
	}

	log, err := app.NewLogger(cfg)
	if err != nil {
		return err
	}

	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer stores.Close()

	clk, err := app.NewClock(cfg)
	if err != nil {
		return err
	}

	return fn(app.NewServices(cfg, stores, nil, clk, log))
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runSettingsShow(cmd *cobra.Command) error {
	return withServices(cmd.Context(), func(svc *app.Services) error {
		settings, err := svc.Settings.Get(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, settings)
	})
}

func runSettingsSet(cmd *cobra.Command, votingDisabled *bool, maxVotes *int) error {
	update := domain.SettingsUpdate{
		VotingIsDisabled:          votingDisabled,
		MaximumVotesPerUserPerDay: maxVotes,
	}
	return withServices(cmd.Context(), func(svc *app.Services) error {
		settings, err := svc.Settings.Update(cmd.Context(), update)
		if err != nil {
			return err
		}
		return printJSON(cmd, settings)
	})
}

func runUserShow(cmd *cobra.Command, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidUserID, err)
	}
	return withServices(cmd.Context(), func(svc *app.Services) error {
		user, err := svc.Users.GetByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd, user)
	})
}

func runSetBanned(cmd *cobra.Command, rawID string, banned bool) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidUserID, err)
	}
	return withServices(cmd.Context(), func(svc *app.Services) error {
		user, err := svc.Users.SetBanned(cmd.Context(), id, banned)
		if err != nil {
			return err
		}
		return printJSON(cmd, user)
	})
}
