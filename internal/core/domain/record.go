package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// EntityType discriminates the records sharing the single partitioned table.
type EntityType string

const (
	EntityVote        EntityType = "Vote"
	EntityLinkDetail  EntityType = "LinkDetail"
	EntityUser        EntityType = "User"
	EntityLinkHistory EntityType = "LinkHistory"
	EntityUserHistory EntityType = "UserHistory"
	EntitySettings    EntityType = "Settings"
)

type RecordKey struct {
	PK string
	SK string
}

func (k RecordKey) String() string {
	return k.PK + "|" + k.SK
}

func linkPart(hostname string) string {
	return "link#" + hostname
}

func userPart(id uuid.UUID) string {
	return "user#" + id.String()
}

func dayPart(day string) string {
	return "day#" + day
}

func LinkKey(hostname string) RecordKey {
	return RecordKey{PK: linkPart(hostname), SK: linkPart(hostname)}
}

func VoteKey(hostname string, userID uuid.UUID) RecordKey {
	return RecordKey{PK: linkPart(hostname), SK: userPart(userID)}
}

func UserKey(userID uuid.UUID) RecordKey {
	return RecordKey{PK: userPart(userID), SK: userPart(userID)}
}

func DailyUserActivityKey(day string, userID uuid.UUID) RecordKey {
	return RecordKey{PK: dayPart(day), SK: userPart(userID)}
}

func SettingsKey() RecordKey {
	return RecordKey{PK: "settings", SK: "settings"}
}

// ParseUserPart extracts the user id from a "user#<uuid>" key part.
func ParseUserPart(part string) (uuid.UUID, error) {
	raw, ok := strings.CutPrefix(part, "user#")
	if !ok {
		return uuid.Nil, fmt.Errorf("malformed user key %q", part)
	}
	return uuid.Parse(raw)
}
