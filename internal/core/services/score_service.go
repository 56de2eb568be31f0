package services

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
	"github.com/vncsmyrnk/linkscore/internal/core/ports"
)

const (
	MinLinksPerQuery = 1
	MaxLinksPerQuery = 100
)

type ScoreOptions struct {
	Thresholds domain.Thresholds
	// Randomize replaces every score with a random category. Used when
	// developing clients against an empty database.
	Randomize bool
}

type scoreService struct {
	store      ports.AggregateStore
	cache      ports.LinkCache
	classifier *domain.Classifier
	randomize  bool
	log        logrus.FieldLogger
}

func NewScoreService(store ports.AggregateStore, cache ports.LinkCache, opts ScoreOptions, log logrus.FieldLogger) ports.ScoreService {
	return &scoreService{
		store:      store,
		cache:      cache,
		classifier: domain.NewClassifier(opts.Thresholds),
		randomize:  opts.Randomize,
		log:        log,
	}
}

// GetScores returns one score per requested hostname, in request order.
// Hostnames nobody voted on yet score NoScore.
func (s *scoreService) GetScores(ctx context.Context, hostnames []string) ([]domain.LinkScore, error) {
	if len(hostnames) < MinLinksPerQuery || len(hostnames) > MaxLinksPerQuery {
		return nil, domain.ErrInvalidLinks
	}
	for _, h := range hostnames {
		if !domain.ValidHostname(h) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidHostname, h)
		}
	}

	if s.randomize {
		return randomScores(hostnames), nil
	}

	links, err := s.lookup(ctx, unique(hostnames))
	if err != nil {
		return nil, err
	}

	scores := make([]domain.LinkScore, 0, len(hostnames))
	for _, h := range hostnames {
		score := domain.NoScore
		if link, ok := links[h]; ok {
			score = s.classifier.ClassifyLink(link)
		}
		scores = append(scores, domain.LinkScore{Hostname: h, Score: score})
	}
	return scores, nil
}

func (s *scoreService) lookup(ctx context.Context, hostnames []string) (map[string]domain.Link, error) {
	links := make(map[string]domain.Link, len(hostnames))
	missing := hostnames

	if s.cache != nil {
		cached, err := s.cache.GetLinks(ctx, hostnames)
		if err != nil {
			s.log.WithError(err).Warn("failed to read link cache")
		}
		missing = missing[:0:0]
		for _, h := range hostnames {
			if link, ok := cached[h]; ok {
				links[h] = link
				continue
			}
			missing = append(missing, h)
		}
		if len(missing) == 0 {
			return links, nil
		}
	}

	stored, err := s.store.GetLinks(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("failed to get links: %w: %w", domain.ErrUnavailable, err)
	}
	for h, link := range stored {
		links[h] = link
	}

	if s.cache != nil && len(stored) > 0 {
		if err := s.cache.SetLinks(ctx, stored); err != nil {
			s.log.WithError(err).Warn("failed to fill link cache")
		}
	}
	return links, nil
}

func randomScores(hostnames []string) []domain.LinkScore {
	scores := make([]domain.LinkScore, len(hostnames))
	for i, h := range hostnames {
		scores[i] = domain.LinkScore{
			Hostname: h,
			Score:    domain.AllScores[rand.IntN(len(domain.AllScores))],
		}
	}
	return scores
}

func unique(hostnames []string) []string {
	seen := make(map[string]struct{}, len(hostnames))
	out := make([]string, 0, len(hostnames))
	for _, h := range hostnames {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}
