// Package memory keeps every record in process memory. It backs local runs
// and tests and applies the same conditional-write rules as the database.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
)

type Store struct {
	mu       sync.RWMutex
	links    map[domain.RecordKey]domain.Link
	votes    map[domain.RecordKey]domain.Vote
	activity map[domain.RecordKey]domain.DailyUserActivity
	users    map[domain.RecordKey]domain.User
	settings domain.Settings
}

func NewStore(defaults domain.Settings) *Store {
	return &Store{
		links:    make(map[domain.RecordKey]domain.Link),
		votes:    make(map[domain.RecordKey]domain.Vote),
		activity: make(map[domain.RecordKey]domain.DailyUserActivity),
		users:    make(map[domain.RecordKey]domain.User),
		settings: defaults,
	}
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) GetLinkVote(ctx context.Context, hostname string, userID uuid.UUID) (domain.Link, *domain.Vote, error) {
	if err := ctx.Err(); err != nil {
		return domain.Link{}, nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, ok := s.links[domain.LinkKey(hostname)]
	if !ok {
		link = domain.Link{Hostname: hostname}
	}
	vote, ok := s.votes[domain.VoteKey(hostname, userID)]
	if !ok {
		return link, nil, nil
	}
	return link, &vote, nil
}

func (s *Store) CommitVote(ctx context.Context, change domain.VoteChange) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	linkKey := domain.LinkKey(change.Link.Hostname)
	voteKey := domain.VoteKey(change.Vote.Hostname, change.Vote.UserID)
	activityKey := domain.DailyUserActivityKey(change.Activity.Day, change.Activity.UserID)

	if s.links[linkKey].Version != change.Base.Link.Version {
		return domain.ErrConflict
	}

	current, voted := s.votes[voteKey]
	switch change.Kind {
	case domain.VoteNew:
		if voted || s.activity[activityKey].Version != change.Base.Activity.Version {
			return domain.ErrConflict
		}
	case domain.VoteChanged:
		if !voted || current.Value != change.Base.Vote.Value {
			return domain.ErrConflict
		}
	default:
		return nil
	}

	link := change.Link
	link.Version = change.Base.Link.Version + 1
	s.links[linkKey] = link
	s.votes[voteKey] = change.Vote

	if change.Kind == domain.VoteNew {
		activity := change.Activity
		activity.Version = change.Base.Activity.Version + 1
		s.activity[activityKey] = activity
	}
	return nil
}

func (s *Store) GetLinks(ctx context.Context, hostnames []string) (map[string]domain.Link, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	links := make(map[string]domain.Link, len(hostnames))
	for _, h := range hostnames {
		if link, ok := s.links[domain.LinkKey(h)]; ok {
			links[h] = link
		}
	}
	return links, nil
}

func (s *Store) GetDailyActivity(ctx context.Context, userID uuid.UUID, day string) (domain.DailyUserActivity, error) {
	if err := ctx.Err(); err != nil {
		return domain.DailyUserActivity{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	activity, ok := s.activity[domain.DailyUserActivityKey(day, userID)]
	if !ok {
		return domain.DailyUserActivity{UserID: userID, Day: day}, nil
	}
	return activity, nil
}

func (s *Store) IsBanned(ctx context.Context, userID uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[domain.UserKey(userID)].IsBanned, nil
}

func (s *Store) SetBanned(ctx context.Context, userID uuid.UUID, banned bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.UserKey(userID)
	user, ok := s.users[key]
	if !ok {
		user = domain.User{ID: userID, CreatedAt: time.Now().UTC()}
	}
	user.IsBanned = banned
	s.users[key] = user
	return nil
}

func (s *Store) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[domain.UserKey(userID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

func (s *Store) Get(ctx context.Context) (domain.Settings, error) {
	if err := ctx.Err(); err != nil {
		return domain.Settings{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

func (s *Store) Set(ctx context.Context, settings domain.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return nil
}
