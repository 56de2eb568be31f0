package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
	"github.com/vncsmyrnk/linkscore/internal/core/ports"
)

const keyPrefix = "linkscore:link:"

type Options struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
	TTL      time.Duration
}

// Cache stores link aggregates as JSON strings so several server replicas
// can share them.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewClient(opts Options) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: opts.PoolSize,
	})
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

var _ ports.LinkCache = (*Cache)(nil)

func key(hostname string) string {
	return keyPrefix + hostname
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) GetLinks(ctx context.Context, hostnames []string) (map[string]domain.Link, error) {
	if len(hostnames) == 0 {
		return map[string]domain.Link{}, nil
	}
	keys := make([]string, len(hostnames))
	for i, h := range hostnames {
		keys[i] = key(h)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cached links: %w", err)
	}

	links := make(map[string]domain.Link, len(hostnames))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var link domain.Link
		if err := json.Unmarshal([]byte(raw), &link); err != nil {
			continue
		}
		links[hostnames[i]] = link
	}
	return links, nil
}

func (c *Cache) SetLinks(ctx context.Context, links map[string]domain.Link) error {
	pipe := c.client.Pipeline()
	for h, link := range links {
		raw, err := json.Marshal(link)
		if err != nil {
			return fmt.Errorf("failed to encode link: %w", err)
		}
		pipe.Set(ctx, key(h), raw, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache links: %w", err)
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, hostname string) error {
	if err := c.client.Del(ctx, key(hostname)).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("failed to invalidate link: %w", err)
	}
	return nil
}
