package domain

import "errors"

var (
	ErrInvalidVote     = errors.New("vote should be -1 or 1")
	ErrInvalidHostname = errors.New("hostname is invalid")
	ErrInvalidUserID   = errors.New("user id is required")
	ErrInvalidLinks    = errors.New("between 1 and 100 links are required")
	ErrInvalidSettings = errors.New("maximum votes per user per day must be positive")

	ErrConflict    = errors.New("concurrent modification")
	ErrUnavailable = errors.New("storage unavailable, try again")
	ErrNotFound    = errors.New("record not found")
)

// RejectionError is an expected, user-visible refusal to record a vote.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

var (
	ErrVotingDisabled = &RejectionError{Reason: "Voting is disabled"}
	ErrUserBanned     = &RejectionError{Reason: "User is banned"}
	ErrQuotaExceeded  = &RejectionError{Reason: "User has voted too many times today"}
)

// IsRejection reports whether err is a business rejection and returns it.
func IsRejection(err error) (*RejectionError, bool) {
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		return rejection, true
	}
	return nil, false
}
