package lru

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
)

func TestCache(t *testing.T) {
	ctx := context.Background()
	c, err := New(2, time.Minute)
	require.NoError(t, err)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	good := domain.Link{Hostname: "good.com", CountOfVotes: 20, SumOfVotes: 20}
	require.NoError(t, c.SetLinks(ctx, map[string]domain.Link{"good.com": good}))

	links, err := c.GetLinks(ctx, []string{"good.com", "missing.com"})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Link{"good.com": good}, links)

	require.NoError(t, c.Invalidate(ctx, "good.com"))
	links, err = c.GetLinks(ctx, []string{"good.com"})
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := New(8, time.Second)
	require.NoError(t, err)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	require.NoError(t, c.SetLinks(ctx, map[string]domain.Link{"a.com": {Hostname: "a.com"}}))

	now = now.Add(2 * time.Second)
	links, err := c.GetLinks(ctx, []string{"a.com"})
	require.NoError(t, err)
	assert.Empty(t, links)
	assert.Equal(t, 0, c.Len())
}

func TestCacheEviction(t *testing.T) {
	ctx := context.Background()
	c, err := New(2, time.Minute)
	require.NoError(t, err)

	for _, h := range []string{"a.com", "b.com", "c.com"} {
		require.NoError(t, c.SetLinks(ctx, map[string]domain.Link{h: {Hostname: h}}))
	}

	links, err := c.GetLinks(ctx, []string{"a.com", "b.com", "c.com"})
	require.NoError(t, err)
	assert.Len(t, links, 2)
	assert.NotContains(t, links, "a.com")
}
