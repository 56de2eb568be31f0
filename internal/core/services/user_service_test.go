package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/linkscore/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
)

func TestUserService(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	store := memory.NewStore(domain.Settings{MaximumVotesPerUserPerDay: 10})
	svc := NewUserService(store, log)
	ctx := context.Background()
	id := uuid.New()

	_, err := svc.GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	user, err := svc.SetBanned(ctx, id, true)
	require.NoError(t, err)
	assert.True(t, user.IsBanned)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "user ban status changed", hook.LastEntry().Message)

	user, err = svc.SetBanned(ctx, id, false)
	require.NoError(t, err)
	assert.False(t, user.IsBanned)

	_, err = svc.SetBanned(ctx, uuid.Nil, true)
	assert.ErrorIs(t, err, domain.ErrInvalidUserID)
}

func TestSettingsService(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	store := memory.NewStore(domain.Settings{MaximumVotesPerUserPerDay: 10})
	svc := NewSettingsService(store, log)
	ctx := context.Background()

	settings, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Settings{MaximumVotesPerUserPerDay: 10}, settings)

	disabled := true
	settings, err = svc.Update(ctx, domain.SettingsUpdate{VotingIsDisabled: &disabled})
	require.NoError(t, err)
	assert.Equal(t, domain.Settings{VotingIsDisabled: true, MaximumVotesPerUserPerDay: 10}, settings)

	negative := -3
	_, err = svc.Update(ctx, domain.SettingsUpdate{MaximumVotesPerUserPerDay: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidSettings)

	stored, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings, stored)
}
