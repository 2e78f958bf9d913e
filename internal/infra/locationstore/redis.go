package locationstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ghar-ko-sathi/internal/infra"
	"ghar-ko-sathi/internal/usecase/shared"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const keyPrefix = "presence:location:"

// RedisClient is the subset of redis.Cmdable the store uses.
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisLocationStore keeps each provider's last reported position with a TTL,
// so a restarted server can still answer "where is my provider".
type RedisLocationStore struct {
	client RedisClient
	ttl    time.Duration
}

func NewRedisLocationStore(client RedisClient, ttl time.Duration) *RedisLocationStore {
	return &RedisLocationStore{client: client, ttl: ttl}
}

func key(providerID uuid.UUID) string {
	return keyPrefix + providerID.String()
}

func (s *RedisLocationStore) Save(ctx context.Context, loc shared.ProviderLocation) error {
	raw, err := json.Marshal(loc)
	if err != nil {
		return infra.NewRepoErr(infra.KindDBFailure, "failed to encode provider location", err)
	}
	if err := s.client.Set(ctx, key(loc.ProviderID), raw, s.ttl).Err(); err != nil {
		return infra.NewRepoErr(infra.KindDBFailure, "failed to store provider location", err)
	}
	return nil
}

func (s *RedisLocationStore) LastKnown(ctx context.Context, providerID uuid.UUID) (*shared.ProviderLocation, error) {
	raw, err := s.client.Get(ctx, key(providerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "no location for provider", err)
		}
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to read provider location", err)
	}

	var loc shared.ProviderLocation
	if err := json.Unmarshal(raw, &loc); err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "stored provider location is invalid", err)
	}
	return &loc, nil
}
