package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	IsBanned  bool      `json:"is_banned"`
	CreatedAt time.Time `json:"created_at"`
}

type Settings struct {
	VotingIsDisabled          bool `json:"voting_is_disabled"`
	MaximumVotesPerUserPerDay int  `json:"maximum_votes_per_user_per_day"`
}

// SettingsUpdate holds the administrative changes to apply; nil fields are left alone.
type SettingsUpdate struct {
	VotingIsDisabled          *bool `json:"voting_is_disabled,omitempty"`
	MaximumVotesPerUserPerDay *int  `json:"maximum_votes_per_user_per_day,omitempty"`
}

func (u SettingsUpdate) Apply(s Settings) (Settings, error) {
	if u.VotingIsDisabled != nil {
		s.VotingIsDisabled = *u.VotingIsDisabled
	}
	if u.MaximumVotesPerUserPerDay != nil {
		if *u.MaximumVotesPerUserPerDay <= 0 {
			return s, ErrInvalidSettings
		}
		s.MaximumVotesPerUserPerDay = *u.MaximumVotesPerUserPerDay
	}
	return s, nil
}

type DailyUserActivity struct {
	UserID             uuid.UUID `json:"user_id"`
	Day                string    `json:"day"`
	NewLinksVotedCount int       `json:"new_links_voted_count"`
	Version            int64     `json:"-"`
}

const DayLayout = "2006-01-02"

// Day returns the calendar day t falls on, in UTC.
func Day(t time.Time) string {
	return t.UTC().Format(DayLayout)
}
