package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
)

func setupRedis(t *testing.T) *Cache {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})

	addr, err := container.PortEndpoint(ctx, "6379/tcp", "")
	require.NoError(t, err)

	client := NewClient(Options{Addr: addr})
	t.Cleanup(func() { client.Close() })

	c := New(client, time.Minute)
	require.NoError(t, c.Ping(ctx))
	return c
}

func TestRedisCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	c := setupRedis(t)
	ctx := context.Background()

	links, err := c.GetLinks(ctx, []string{"good.com"})
	require.NoError(t, err)
	assert.Empty(t, links)

	good := domain.Link{Hostname: "good.com", CountOfVotes: 25, SumOfVotes: 21}
	bad := domain.Link{Hostname: "bad.com", CountOfVotes: 12, SumOfVotes: -12}
	require.NoError(t, c.SetLinks(ctx, map[string]domain.Link{"good.com": good, "bad.com": bad}))

	links, err = c.GetLinks(ctx, []string{"bad.com", "missing.com", "good.com"})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Link{"good.com": good, "bad.com": bad}, links)

	require.NoError(t, c.Invalidate(ctx, "good.com"))
	links, err = c.GetLinks(ctx, []string{"good.com", "bad.com"})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Link{"bad.com": bad}, links)

	ttl, err := c.client.TTL(ctx, key("bad.com")).Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute)
}
