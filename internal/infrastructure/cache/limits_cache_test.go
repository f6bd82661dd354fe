package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openlot/auction-exchange-backend/internal/domain/account"
)

type countingProvider struct {
	limits account.LimitSet
	err    error
	calls  int
}

func (p *countingProvider) Limits(ctx context.Context, accountID uuid.UUID) (account.LimitSet, error) {
	p.calls++
	if p.err != nil {
		return account.LimitSet{}, p.err
	}
	return p.limits, nil
}

func newTestCache(t *testing.T, next *countingProvider) (*limitsCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	c := NewLimitsCache(client, next, time.Minute, zap.NewNop()).(*limitsCache)
	return c, mr
}

func TestLimitsCache_MissLoadsAndCaches(t *testing.T) {
	ctx := context.Background()
	provider := &countingProvider{limits: account.LimitSet{MaxActiveBids: 7, MaxOpenListings: 3}}
	c, mr := newTestCache(t, provider)
	accountID := uuid.New()

	limits, err := c.Limits(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, provider.limits, limits)
	assert.Equal(t, 1, provider.calls)
	assert.True(t, mr.Exists(limitsKeyPrefix+accountID.String()))

	// Second read is served from Redis.
	limits, err = c.Limits(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, provider.limits, limits)
	assert.Equal(t, 1, provider.calls)
}

func TestLimitsCache_EntryExpires(t *testing.T) {
	ctx := context.Background()
	provider := &countingProvider{limits: account.LimitSet{MaxActiveBids: 7, MaxOpenListings: 3}}
	c, mr := newTestCache(t, provider)
	accountID := uuid.New()

	_, err := c.Limits(ctx, accountID)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = c.Limits(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
}

func TestLimitsCache_CorruptEntryRewritten(t *testing.T) {
	ctx := context.Background()
	provider := &countingProvider{limits: account.LimitSet{MaxActiveBids: 5, MaxOpenListings: 2}}
	c, mr := newTestCache(t, provider)
	accountID := uuid.New()

	require.NoError(t, mr.Set(limitsKeyPrefix+accountID.String(), "not json"))

	limits, err := c.Limits(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, provider.limits, limits)
	assert.Equal(t, 1, provider.calls)

	got, err := mr.Get(limitsKeyPrefix + accountID.String())
	require.NoError(t, err)
	assert.Contains(t, got, `"max_active_bids":5`)
}

func TestLimitsCache_RedisDownDegradesToProvider(t *testing.T) {
	ctx := context.Background()
	provider := &countingProvider{limits: account.LimitSet{MaxActiveBids: 9, MaxOpenListings: 4}}
	c, mr := newTestCache(t, provider)

	mr.Close()

	limits, err := c.Limits(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, provider.limits, limits)
	assert.Equal(t, 1, provider.calls)
}

func TestLimitsCache_ProviderErrorPropagates(t *testing.T) {
	ctx := context.Background()
	provider := &countingProvider{err: assert.AnError}
	c, _ := newTestCache(t, provider)

	_, err := c.Limits(ctx, uuid.New())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestLimitsCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	provider := &countingProvider{limits: account.LimitSet{MaxActiveBids: 7, MaxOpenListings: 3}}
	c, mr := newTestCache(t, provider)
	accountID := uuid.New()

	_, err := c.Limits(ctx, accountID)
	require.NoError(t, err)
	require.True(t, mr.Exists(limitsKeyPrefix+accountID.String()))

	require.NoError(t, c.Invalidate(ctx, accountID))
	assert.False(t, mr.Exists(limitsKeyPrefix+accountID.String()))

	_, err = c.Limits(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
}
