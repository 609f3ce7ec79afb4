package redisstate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ali-aqib/blog/internal/domain"
)

func newTestRepo(t *testing.T) (*RedisDeliveryStatusRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisDeliveryStatusRepository(client, "test:"), mr
}

func TestRedisDeliveryStatusRepository_SetGet(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetStatus(ctx, "abc", domain.DeliveryQueued, time.Hour))
	status, err := repo.GetStatus(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryQueued, status)

	require.NoError(t, repo.SetStatus(ctx, "abc", domain.DeliverySent, time.Hour))
	status, err = repo.GetStatus(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, domain.DeliverySent, status)

	assert.True(t, mr.Exists("test:contact:abc:status"))
}

func TestRedisDeliveryStatusRepository_UnknownAndExpired(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	status, err := repo.GetStatus(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryUnknown, status)

	require.NoError(t, repo.SetStatus(ctx, "short", domain.DeliveryFailed, time.Minute))
	mr.FastForward(2 * time.Minute)

	status, err = repo.GetStatus(ctx, "short")
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryUnknown, status)
}
