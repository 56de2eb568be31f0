package domain

import (
	"time"

	"github.com/google/uuid"
)

type VoteValue int

const (
	Downvote VoteValue = -1
	Upvote   VoteValue = 1
)

func (v VoteValue) Valid() bool {
	return v == Upvote || v == Downvote
}

type Vote struct {
	Hostname  string    `json:"hostname"`
	UserID    uuid.UUID `json:"user_id"`
	Value     VoteValue `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// VoteState is everything a submission reads before deciding what to write.
// Version fields are zero for records that do not exist yet.
type VoteState struct {
	Link     Link
	Vote     *Vote
	Activity DailyUserActivity
}

type VoteKind int

const (
	VoteNew VoteKind = iota
	VoteRepeat
	VoteChanged
)

func (k VoteKind) String() string {
	switch k {
	case VoteNew:
		return "new"
	case VoteRepeat:
		return "repeat"
	case VoteChanged:
		return "change"
	}
	return "unknown"
}

// VoteChange is the conditional write derived from a VoteState. It is applied
// only if none of the records it was computed from changed in the meantime.
type VoteChange struct {
	Kind     VoteKind
	Base     VoteState
	Link     Link
	Vote     Vote
	Activity DailyUserActivity
}

// PlanVote applies the aggregate-delta protocol to state.
func PlanVote(state VoteState, userID uuid.UUID, value VoteValue, now time.Time) VoteChange {
	change := VoteChange{
		Base:     state,
		Link:     state.Link,
		Activity: state.Activity,
	}

	switch {
	case state.Vote == nil:
		change.Kind = VoteNew
		change.Link.CountOfVotes++
		change.Link.SumOfVotes += int(value)
		change.Vote = Vote{
			Hostname:  state.Link.Hostname,
			UserID:    userID,
			Value:     value,
			CreatedAt: now,
		}
		change.Activity.NewLinksVotedCount++
	case state.Vote.Value == value:
		change.Kind = VoteRepeat
		change.Vote = *state.Vote
	default:
		change.Kind = VoteChanged
		change.Link.SumOfVotes += int(value - state.Vote.Value)
		change.Vote = *state.Vote
		change.Vote.Value = value
	}

	return change
}
