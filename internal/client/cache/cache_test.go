//go:build unit

package cache_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"ghar-ko-sathi/internal/client/cache"
	"ghar-ko-sathi/internal/pkg/clock"
	"ghar-ko-sathi/internal/pkg/errs"
	"ghar-ko-sathi/internal/usecase/readmodel"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func openStore(t *testing.T, path string) *cache.SQLiteStore {
	t.Helper()
	store, err := cache.OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newCache(t *testing.T) (*cache.Cache, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	c := cache.New(openStore(t, path), clock.NewMockClock(t0))
	require.NoError(t, c.Hydrate(context.Background()))
	return c, path
}

func snapshot(id uuid.UUID, status string, updatedAt time.Time) readmodel.BookingRM {
	return readmodel.BookingRM{
		ID:          id,
		CustomerID:  uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Status:      status,
		ServiceType: "plumbing",
		RequestedAt: t0,
		UpdatedAt:   updatedAt,
		Version:     1,
	}
}

func versioned(b readmodel.BookingRM, v int64) readmodel.BookingRM {
	b.Version = v
	return b
}

func TestCache_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("out of order pushes resolve by updatedAt", func(t *testing.T) {
		c, _ := newCache(t)

		applied, err := c.Put(ctx, snapshot(id, "confirmed", t0.Add(2*time.Minute)))
		require.NoError(t, err)
		assert.True(t, applied)

		applied, err = c.Put(ctx, snapshot(id, "accepted", t0.Add(time.Minute)))
		require.NoError(t, err)
		assert.False(t, applied)

		got, ok := c.Get(id)
		require.True(t, ok)
		assert.Equal(t, "confirmed", got.Booking.Status)
	})

	t.Run("equal timestamps fall back to version", func(t *testing.T) {
		c, _ := newCache(t)
		at := t0.Add(time.Minute)

		_, err := c.Put(ctx, versioned(snapshot(id, "confirmed", at), 3))
		require.NoError(t, err)
		applied, err := c.Put(ctx, versioned(snapshot(id, "accepted", at), 2))
		require.NoError(t, err)
		assert.False(t, applied)

		got, _ := c.Get(id)
		assert.Equal(t, "confirmed", got.Booking.Status)
	})

	t.Run("optimistic guess holds until the server moves past its base", func(t *testing.T) {
		c, _ := newCache(t)
		base := versioned(snapshot(id, "accepted", t0.Add(time.Minute)), 2)

		_, err := c.Put(ctx, base)
		require.NoError(t, err)
		guess := base
		guess.Status = "confirmed"
		applied, err := c.PutOptimistic(ctx, guess)
		require.NoError(t, err)
		assert.True(t, applied)

		// a late copy of the base itself does not undo the guess
		applied, err = c.Put(ctx, base)
		require.NoError(t, err)
		assert.False(t, applied)

		applied, err = c.Put(ctx, versioned(snapshot(id, "confirmed", t0.Add(2*time.Minute)), 3))
		require.NoError(t, err)
		assert.True(t, applied)

		got, _ := c.Get(id)
		assert.False(t, got.Optimistic)
		assert.Equal(t, int64(3), got.Booking.Version)
	})

	t.Run("a guess based on a stale copy is dropped", func(t *testing.T) {
		c, _ := newCache(t)

		_, err := c.Put(ctx, versioned(snapshot(id, "in-progress", t0.Add(2*time.Minute)), 4))
		require.NoError(t, err)
		applied, err := c.PutOptimistic(ctx, versioned(snapshot(id, "cancelled", t0.Add(time.Minute)), 2))
		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("device clock ahead of the server", func(t *testing.T) {
		c, _ := newCache(t)
		server := t0

		_, err := c.Put(ctx, versioned(snapshot(id, "accepted", server.Add(60*time.Second)), 2))
		require.NoError(t, err)

		// a guess stamped by a device clock 30s ahead of the server
		guess := versioned(snapshot(id, "confirmed", server.Add(100*time.Second)), 2)
		_, err = c.PutOptimistic(ctx, guess)
		require.NoError(t, err)

		applied, err := c.Put(ctx, versioned(snapshot(id, "confirmed", server.Add(70*time.Second)), 3))
		require.NoError(t, err)
		assert.True(t, applied)

		applied, err = c.Put(ctx, versioned(snapshot(id, "in-progress", server.Add(80*time.Second)), 4))
		require.NoError(t, err)
		assert.True(t, applied)

		got, _ := c.Get(id)
		assert.Equal(t, "in-progress", got.Booking.Status)
		assert.False(t, got.Optimistic)
	})

	t.Run("overwrite ignores timestamps", func(t *testing.T) {
		c, _ := newCache(t)

		_, err := c.PutOptimistic(ctx, snapshot(id, "accepted", t0.Add(time.Hour)))
		require.NoError(t, err)
		require.NoError(t, c.Overwrite(ctx, snapshot(id, "pending", t0)))

		got, _ := c.Get(id)
		assert.Equal(t, "pending", got.Booking.Status)
		assert.False(t, got.Optimistic)
	})
}

func TestCache_RequiresHydration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	c := cache.New(openStore(t, path), clock.NewMockClock(t0))

	_, err := c.Put(context.Background(), snapshot(uuid.New(), "pending", t0))
	assert.True(t, errs.Is(err, cache.ErrNotHydrated))
}

func TestCache_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	c, path := newCache(t)

	eta := 7
	providerID := uuid.New()
	b := snapshot(uuid.New(), "accepted", t0.Add(time.Minute))
	b.ProviderID = &providerID
	b.ETAMinutes = &eta
	b.Charges = &readmodel.ChargesRM{
		HourlyRate:    200,
		DurationHours: 2,
		ServiceCharge: 400,
		Materials:     []readmodel.MaterialRM{{Name: "pipe", Cost: 50}},
		MaterialCost:  50,
		TotalCharge:   450,
	}
	_, err := c.Put(ctx, b)
	require.NoError(t, err)

	first, err := c.EnqueuePending(ctx, "confirmBooking", &b.ID, json.RawMessage(`{"bookingId":"`+b.ID.String()+`"}`))
	require.NoError(t, err)
	second, err := c.EnqueuePending(ctx, "startJob", &b.ID, nil)
	require.NoError(t, err)

	reopened := cache.New(openStore(t, path), clock.NewMockClock(t0))
	require.NoError(t, reopened.Hydrate(ctx))

	got, ok := reopened.Get(b.ID)
	require.True(t, ok)
	if diff := cmp.Diff(b, got.Booking); diff != "" {
		t.Errorf("booking changed across restart (-want +got):\n%s", diff)
	}

	pending := reopened.PendingActions()
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, second.ID, pending[1].ID)
	assert.JSONEq(t, string(first.Data), string(pending[0].Data))

	require.NoError(t, reopened.AckPending(ctx, first.ID))
	third, err := reopened.EnqueuePending(ctx, "cancelBooking", &b.ID, nil)
	require.NoError(t, err)
	assert.Greater(t, third.Seq, second.Seq)

	again := cache.New(openStore(t, path), clock.NewMockClock(t0))
	require.NoError(t, again.Hydrate(ctx))
	ids := []uuid.UUID{}
	for _, a := range again.PendingActions() {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []uuid.UUID{second.ID, third.ID}, ids)
}

func TestCache_List(t *testing.T) {
	ctx := context.Background()
	c, _ := newCache(t)

	customer := uuid.New()
	provider := uuid.New()

	older := snapshot(uuid.New(), "pending", t0)
	older.CustomerID = customer
	newer := snapshot(uuid.New(), "accepted", t0)
	newer.CustomerID = customer
	newer.ProviderID = &provider
	newer.RequestedAt = t0.Add(time.Hour)
	other := snapshot(uuid.New(), "pending", t0)

	for _, b := range []readmodel.BookingRM{older, newer, other} {
		_, err := c.Put(ctx, b)
		require.NoError(t, err)
	}

	mine := c.List(cache.Filter{CustomerID: &customer})
	require.Len(t, mine, 2)
	assert.Equal(t, newer.ID, mine[0].Booking.ID)
	assert.Equal(t, older.ID, mine[1].Booking.ID)

	assigned := c.List(cache.Filter{ProviderID: &provider})
	require.Len(t, assigned, 1)
	assert.Equal(t, newer.ID, assigned[0].Booking.ID)

	pending := c.List(cache.Filter{Statuses: []string{"pending"}})
	assert.Len(t, pending, 2)
}
