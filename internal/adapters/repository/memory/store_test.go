package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
)

func newVoteChange(t *testing.T, s *Store, hostname string, userID uuid.UUID, value domain.VoteValue) domain.VoteChange {
	t.Helper()
	ctx := context.Background()
	link, vote, err := s.GetLinkVote(ctx, hostname, userID)
	require.NoError(t, err)
	activity, err := s.GetDailyActivity(ctx, userID, "2024-03-01")
	require.NoError(t, err)
	return domain.PlanVote(domain.VoteState{Link: link, Vote: vote, Activity: activity}, userID, value, time.Now())
}

func TestCommitVoteDetectsStaleLink(t *testing.T) {
	s := NewStore(domain.Settings{MaximumVotesPerUserPerDay: 10})
	ctx := context.Background()

	first := newVoteChange(t, s, "example.com", uuid.New(), domain.Upvote)
	second := newVoteChange(t, s, "example.com", uuid.New(), domain.Upvote)

	require.NoError(t, s.CommitVote(ctx, first))
	assert.ErrorIs(t, s.CommitVote(ctx, second), domain.ErrConflict)

	links, err := s.GetLinks(ctx, []string{"example.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, links["example.com"].CountOfVotes)
	assert.Equal(t, int64(1), links["example.com"].Version)
}

func TestCommitVoteDetectsStaleActivity(t *testing.T) {
	s := NewStore(domain.Settings{MaximumVotesPerUserPerDay: 10})
	ctx := context.Background()
	user := uuid.New()

	first := newVoteChange(t, s, "one.com", user, domain.Upvote)
	second := newVoteChange(t, s, "two.com", user, domain.Upvote)

	require.NoError(t, s.CommitVote(ctx, first))
	assert.ErrorIs(t, s.CommitVote(ctx, second), domain.ErrConflict)

	links, err := s.GetLinks(ctx, []string{"two.com"})
	require.NoError(t, err)
	assert.Empty(t, links, "a rejected commit must not write anything")
}

func TestCommitVoteDetectsChangedVote(t *testing.T) {
	s := NewStore(domain.Settings{MaximumVotesPerUserPerDay: 10})
	ctx := context.Background()
	user := uuid.New()

	require.NoError(t, s.CommitVote(ctx, newVoteChange(t, s, "example.com", user, domain.Upvote)))

	toDown := newVoteChange(t, s, "example.com", user, domain.Downvote)
	require.Equal(t, domain.VoteChanged, toDown.Kind)
	require.NoError(t, s.CommitVote(ctx, toDown))

	// replaying a change computed from the old vote conflicts
	assert.ErrorIs(t, s.CommitVote(ctx, toDown), domain.ErrConflict)

	link, vote, err := s.GetLinkVote(ctx, "example.com", user)
	require.NoError(t, err)
	require.NotNil(t, vote)
	assert.Equal(t, domain.Downvote, vote.Value)
	assert.Equal(t, 1, link.CountOfVotes)
	assert.Equal(t, -1, link.SumOfVotes)
}

func TestUsersAndSettings(t *testing.T) {
	s := NewStore(domain.Settings{MaximumVotesPerUserPerDay: 7})
	ctx := context.Background()
	user := uuid.New()

	banned, err := s.IsBanned(ctx, user)
	require.NoError(t, err)
	assert.False(t, banned)

	require.NoError(t, s.SetBanned(ctx, user, true))
	banned, err = s.IsBanned(ctx, user)
	require.NoError(t, err)
	assert.True(t, banned)

	settings, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, settings.MaximumVotesPerUserPerDay)

	require.NoError(t, s.Set(ctx, domain.Settings{VotingIsDisabled: true, MaximumVotesPerUserPerDay: 3}))
	settings, err = s.Get(ctx)
	require.NoError(t, err)
	assert.True(t, settings.VotingIsDisabled)
}
