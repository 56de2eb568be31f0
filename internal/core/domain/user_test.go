package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsUpdateApply(t *testing.T) {
	base := Settings{MaximumVotesPerUserPerDay: 10}
	disabled := true
	fifteen := 15
	zero := 0

	got, err := SettingsUpdate{VotingIsDisabled: &disabled}.Apply(base)
	require.NoError(t, err)
	assert.Equal(t, Settings{VotingIsDisabled: true, MaximumVotesPerUserPerDay: 10}, got)

	got, err = SettingsUpdate{MaximumVotesPerUserPerDay: &fifteen}.Apply(base)
	require.NoError(t, err)
	assert.Equal(t, 15, got.MaximumVotesPerUserPerDay)

	_, err = SettingsUpdate{MaximumVotesPerUserPerDay: &zero}.Apply(base)
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestDayIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	assert.Equal(t, "2024-03-02", Day(time.Date(2024, 3, 1, 22, 0, 0, 0, loc)))
}

func TestRecordKeys(t *testing.T) {
	id := uuid.MustParse("2d9f4f7e-8a0b-4c3e-9d1a-5b6c7d8e9f00")

	assert.Equal(t, RecordKey{PK: "link#example.com", SK: "link#example.com"}, LinkKey("example.com"))
	assert.Equal(t, RecordKey{PK: "link#example.com", SK: "user#" + id.String()}, VoteKey("example.com", id))
	assert.Equal(t, RecordKey{PK: "day#2024-03-01", SK: "user#" + id.String()}, DailyUserActivityKey("2024-03-01", id))

	parsed, err := ParseUserPart(VoteKey("example.com", id).SK)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseUserPart("link#example.com")
	assert.Error(t, err)
}
