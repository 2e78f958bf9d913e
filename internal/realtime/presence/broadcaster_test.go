//go:build unit

package presence_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/domain/user"
	"ghar-ko-sathi/internal/infra"
	"ghar-ko-sathi/internal/pkg/clock"
	"ghar-ko-sathi/internal/realtime/dispatch"
	"ghar-ko-sathi/internal/realtime/presence"
	"ghar-ko-sathi/internal/usecase/shared"
	"ghar-ko-sathi/tests/common/builder"
	"ghar-ko-sathi/tests/common/realtimetest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type activeBookings map[uuid.UUID]*booking.Booking

func (a activeBookings) ActiveForProvider(_ context.Context, providerID uuid.UUID) (*booking.Booking, error) {
	if b, ok := a[providerID]; ok {
		return b, nil
	}
	return nil, infra.NewRepoErr(infra.KindNotFound, "no active booking", nil)
}

func (a activeBookings) FindSummaryByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	for _, b := range a {
		if b.ID() == id {
			return b, nil
		}
	}
	return nil, infra.NewRepoErr(infra.KindNotFound, "no booking", nil)
}

type memLocations struct {
	saved []shared.ProviderLocation
	err   error
}

func (m *memLocations) Save(_ context.Context, loc shared.ProviderLocation) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, loc)
	return nil
}

type fixture struct {
	registry    *presence.Registry
	broadcaster *presence.Broadcaster
	locations   *memLocations
	booking     *booking.Booking
	customer    *realtimetest.Session
	provider    *realtimetest.Session
	bystander   *realtimetest.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bb := builder.NewBookingBuilder()
	b := bb.MustBuildDomain(booking.StatusInProgress)

	registry := presence.NewRegistry(clock.NewMockClock(t0))
	active := activeBookings{*b.ProviderID(): b}
	dispatcher := dispatch.NewDispatcher(registry, active, logger)
	locations := &memLocations{}

	f := &fixture{
		registry:    registry,
		broadcaster: presence.NewBroadcaster(registry, active, locations, dispatcher, clock.NewMockClock(t0), logger),
		locations:   locations,
		booking:     b,
		customer:    realtimetest.NewSession("customer-a"),
		provider:    realtimetest.NewSession("provider-x"),
		bystander:   realtimetest.NewSession("customer-y"),
	}
	registry.Register(f.customer, b.CustomerID(), user.RoleCustomer, false)
	registry.Register(f.provider, *b.ProviderID(), user.RoleServiceProvider, true)
	registry.Register(f.bystander, uuid.New(), user.RoleCustomer, false)
	return f
}

func TestBroadcaster_UpdateLocation(t *testing.T) {
	ctx := context.Background()

	t.Run("location reaches the booking's customer only", func(t *testing.T) {
		f := newFixture(t)
		loc, err := booking.NewLocation(27.7000, 85.3200)
		require.NoError(t, err)

		update, err := f.broadcaster.UpdateLocation(ctx, "provider-x", loc)
		require.NoError(t, err)
		require.NotNil(t, update)
		assert.Equal(t, f.booking.ID(), update.BookingID)

		assert.Equal(t, []string{"location-update"}, f.customer.Events())
		assert.Empty(t, f.bystander.Events())
		assert.Empty(t, f.provider.Events())

		var got presence.LocationUpdate
		require.NoError(t, f.customer.Decode(0, &got))
		assert.Equal(t, 27.7, got.Lat)
		assert.Equal(t, update.ETAMinutes, got.ETAMinutes)
		require.Len(t, f.locations.saved, 1)
	})

	t.Run("eta uses the customer's live location when known", func(t *testing.T) {
		f := newFixture(t)
		customerNow, err := booking.NewLocation(27.7000, 85.3200)
		require.NoError(t, err)
		require.NoError(t, f.registry.SetLocation("customer-a", customerNow))

		update, err := f.broadcaster.UpdateLocation(ctx, "provider-x", customerNow)
		require.NoError(t, err)
		require.NotNil(t, update)
		assert.Zero(t, update.DistanceKm)
		assert.Zero(t, update.ETAMinutes)
	})

	t.Run("customer connections cannot stream location", func(t *testing.T) {
		f := newFixture(t)
		loc, _ := booking.NewLocation(27.7, 85.3)
		_, err := f.broadcaster.UpdateLocation(ctx, "customer-a", loc)
		assert.ErrorIs(t, err, presence.ErrNotProvider)
	})

	t.Run("unregistered connection is rejected", func(t *testing.T) {
		f := newFixture(t)
		loc, _ := booking.NewLocation(27.7, 85.3)
		_, err := f.broadcaster.UpdateLocation(ctx, "nobody", loc)
		assert.ErrorIs(t, err, presence.ErrNotRegistered)
	})

	t.Run("provider without an active booking streams nowhere", func(t *testing.T) {
		f := newFixture(t)
		idle := realtimetest.NewSession("provider-idle")
		f.registry.Register(idle, uuid.New(), user.RoleServiceProvider, true)
		loc, _ := booking.NewLocation(27.7, 85.3)

		update, err := f.broadcaster.UpdateLocation(ctx, "provider-idle", loc)
		require.NoError(t, err)
		assert.Nil(t, update)
		assert.Empty(t, f.customer.Events())
	})

	t.Run("location store failure does not block the stream", func(t *testing.T) {
		f := newFixture(t)
		f.locations.err = errors.New("redis down")
		loc, _ := booking.NewLocation(27.7, 85.3)

		update, err := f.broadcaster.UpdateLocation(ctx, "provider-x", loc)
		require.NoError(t, err)
		assert.NotNil(t, update)
	})

	t.Run("disconnected customer degrades to nothing delivered", func(t *testing.T) {
		f := newFixture(t)
		_, ok := f.broadcaster.Disconnect("customer-a")
		require.True(t, ok)
		loc, _ := booking.NewLocation(27.7, 85.3)

		update, err := f.broadcaster.UpdateLocation(ctx, "provider-x", loc)
		require.NoError(t, err)
		assert.Nil(t, update)
		assert.Empty(t, f.customer.Events())
	})

	t.Run("disconnected provider can no longer stream", func(t *testing.T) {
		f := newFixture(t)
		f.broadcaster.Disconnect("provider-x")
		loc, _ := booking.NewLocation(27.7, 85.3)
		_, err := f.broadcaster.UpdateLocation(ctx, "provider-x", loc)
		assert.ErrorIs(t, err, presence.ErrNotRegistered)
	})
}
