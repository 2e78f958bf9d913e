//go:build unit

package locationstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ghar-ko-sathi/internal/infra"
	"ghar-ko-sathi/internal/infra/locationstore"
	"ghar-ko-sathi/internal/usecase/shared"

	"github.com/go-redis/redis/v8"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func TestRedisLocationStore(t *testing.T) {
	ctx := context.Background()
	providerID := uuid.New()
	recorded := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("save then read back", func(t *testing.T) {
		fake := newFakeRedis()
		store := locationstore.NewRedisLocationStore(fake, time.Hour)

		in := shared.ProviderLocation{ProviderID: providerID, Lat: 27.7172, Lng: 85.324, RecordedAt: recorded}
		require.NoError(t, store.Save(ctx, in))
		assert.Equal(t, time.Hour, fake.ttls["presence:location:"+providerID.String()])

		out, err := store.LastKnown(ctx, providerID)
		require.NoError(t, err)
		if diff := cmp.Diff(in, *out); diff != "" {
			t.Errorf("location mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown provider is not found", func(t *testing.T) {
		store := locationstore.NewRedisLocationStore(newFakeRedis(), time.Hour)
		_, err := store.LastKnown(ctx, uuid.New())
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("backend failure", func(t *testing.T) {
		fake := newFakeRedis()
		fake.failGet = errors.New("connection refused")
		store := locationstore.NewRedisLocationStore(fake, time.Hour)
		_, err := store.LastKnown(ctx, providerID)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
