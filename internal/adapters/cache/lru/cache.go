package lru

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
	"github.com/vncsmyrnk/linkscore/internal/core/ports"
)

type entry struct {
	link      domain.Link
	expiresAt time.Time
}

// Cache is an in-process link cache. Entries expire after ttl even when no
// vote invalidates them, which bounds staleness across replicas.
type Cache struct {
	entries *lru.Cache[string, entry]
	ttl     time.Duration
	now     func() time.Time
}

func New(size int, ttl time.Duration) (*Cache, error) {
	l, err := lru.New[string, entry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &Cache{entries: l, ttl: ttl, now: time.Now}, nil
}

var _ ports.LinkCache = (*Cache)(nil)

func (c *Cache) GetLinks(_ context.Context, hostnames []string) (map[string]domain.Link, error) {
	links := make(map[string]domain.Link, len(hostnames))
	now := c.now()
	for _, h := range hostnames {
		e, ok := c.entries.Get(h)
		if !ok {
			continue
		}
		if now.After(e.expiresAt) {
			c.entries.Remove(h)
			continue
		}
		links[h] = e.link
	}
	return links, nil
}

func (c *Cache) SetLinks(_ context.Context, links map[string]domain.Link) error {
	expiresAt := c.now().Add(c.ttl)
	for h, link := range links {
		c.entries.Add(h, entry{link: link, expiresAt: expiresAt})
	}
	return nil
}

func (c *Cache) Invalidate(_ context.Context, hostname string) error {
	c.entries.Remove(hostname)
	return nil
}

func (c *Cache) Len() int {
	return c.entries.Len()
}
