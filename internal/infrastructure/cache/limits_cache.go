package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/openlot/auction-exchange-backend/internal/domain/account"
	"github.com/openlot/auction-exchange-backend/internal/service/admission"
)

const limitsKeyPrefix = "limits:"

// limitsCache is a read-through Redis cache in front of a slower
// limits provider. Cache failures degrade to the underlying provider;
// they never fail an admission on their own.
type limitsCache struct {
	client *redis.Client
	next   admission.LimitsProvider
	ttl    time.Duration
	logger *zap.Logger
}

func NewLimitsCache(client *redis.Client, next admission.LimitsProvider, ttl time.Duration, logger *zap.Logger) admission.LimitsProvider {
	return &limitsCache{
		client: client,
		next:   next,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *limitsCache) Limits(ctx context.Context, accountID uuid.UUID) (account.LimitSet, error) {
	key := limitsKeyPrefix + accountID.String()

	cached, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var limits account.LimitSet
		if err := json.Unmarshal(cached, &limits); err == nil {
			return limits, nil
		}
		// Corrupt entry; fall through and rewrite it.
		c.logger.Warn("dropping unreadable limits cache entry", zap.String("key", key))
	} else if err != redis.Nil {
		c.logger.Warn("limits cache read failed", zap.String("key", key), zap.Error(err))
	}

	limits, err := c.next.Limits(ctx, accountID)
	if err != nil {
		return account.LimitSet{}, fmt.Errorf("limits provider: %w", err)
	}

	if payload, err := json.Marshal(limits); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("limits cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return limits, nil
}

// Invalidate drops the cached limits for an account, used when an
// operator changes the account's ceilings.
func (c *limitsCache) Invalidate(ctx context.Context, accountID uuid.UUID) error {
	return c.client.Del(ctx, limitsKeyPrefix+accountID.String()).Err()
}
