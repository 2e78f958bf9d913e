//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/domain/user"
	"ghar-ko-sathi/internal/infra"
	"ghar-ko-sathi/internal/pkg/errs"
	"ghar-ko-sathi/internal/usecase/queries"
	"ghar-ko-sathi/internal/usecase/shared"
	"ghar-ko-sathi/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*booking.Booking)
	return b, args.Error(1)
}

func (m *mockStore) ListByCustomer(ctx context.Context, customerID uuid.UUID, after *queries.Cursor, limit int) ([]*booking.Booking, error) {
	args := m.Called(ctx, customerID, after, limit)
	rows, _ := args.Get(0).([]*booking.Booking)
	return rows, args.Error(1)
}

func (m *mockStore) ListByProvider(ctx context.Context, providerID uuid.UUID, after *queries.Cursor, limit int) ([]*booking.Booking, error) {
	args := m.Called(ctx, providerID, after, limit)
	rows, _ := args.Get(0).([]*booking.Booking)
	return rows, args.Error(1)
}

func (m *mockStore) ListPendingRequestedBefore(ctx context.Context, before time.Time) ([]shared.PendingBooking, error) {
	args := m.Called(ctx, before)
	rows, _ := args.Get(0).([]shared.PendingBooking)
	return rows, args.Error(1)
}

func (m *mockStore) ActiveForProvider(ctx context.Context, providerID uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, providerID)
	b, _ := args.Get(0).(*booking.Booking)
	return b, args.Error(1)
}

type mockLocations struct {
	mock.Mock
}

func (m *mockLocations) LastKnown(ctx context.Context, providerID uuid.UUID) (*shared.ProviderLocation, error) {
	args := m.Called(ctx, providerID)
	loc, _ := args.Get(0).(*shared.ProviderLocation)
	return loc, args.Error(1)
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	bb := builder.NewBookingBuilder()
	b := bb.MustBuildDomain(booking.StatusConfirmed)

	t.Run("party sees full history", func(t *testing.T) {
		store := &mockStore{}
		store.On("FindByID", ctx, b.ID()).Return(b, nil)
		q := queries.NewBookingQueries(store, &mockLocations{})

		rm, err := q.GetByID(ctx, b.ID(), bb.Customer())
		require.NoError(t, err)
		assert.Equal(t, "confirmed", rm.Status)
		assert.Len(t, rm.History, 3)
		store.AssertExpectations(t)
	})

	t.Run("admin may view any booking", func(t *testing.T) {
		store := &mockStore{}
		store.On("FindByID", ctx, b.ID()).Return(b, nil)
		q := queries.NewBookingQueries(store, &mockLocations{})

		_, err := q.GetByID(ctx, b.ID(), user.Actor{ID: uuid.New(), Role: user.RoleAdmin})
		require.NoError(t, err)
	})

	t.Run("stranger is refused", func(t *testing.T) {
		store := &mockStore{}
		store.On("FindByID", ctx, b.ID()).Return(b, nil)
		q := queries.NewBookingQueries(store, &mockLocations{})

		_, err := q.GetByID(ctx, b.ID(), user.Actor{ID: uuid.New(), Role: user.RoleCustomer})
		var authErr *booking.AuthorizationError
		require.ErrorAs(t, err, &authErr)
	})

	t.Run("missing booking", func(t *testing.T) {
		store := &mockStore{}
		id := uuid.New()
		store.On("FindByID", ctx, id).Return(nil, infra.NewRepoErr(infra.KindNotFound, "failed to get booking by id", nil))
		q := queries.NewBookingQueries(store, &mockLocations{})

		_, err := q.GetByID(ctx, id, bb.Customer())
		require.ErrorIs(t, err, queries.ErrBookingNotFound)
	})
}

func TestListByCustomerPaginates(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	customer := user.Actor{ID: customerID, Role: user.RoleCustomer}

	var page []*booking.Booking
	for i := range 3 {
		bb := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.CustomerID = customerID
			b.RequestedAt = b.RequestedAt.Add(-time.Duration(i) * time.Hour)
		})
		page = append(page, bb.MustBuildDomain(booking.StatusPending))
	}

	store := &mockStore{}
	store.On("ListByCustomer", ctx, customerID, (*queries.Cursor)(nil), 3).Return(page, nil)
	q := queries.NewBookingQueries(store, &mockLocations{})

	res, err := q.ListByCustomer(ctx, customerID, customer, "", 2)
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, page[0].ID(), res.Items[0].ID)

	next, err := queries.DecodeCursor(res.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, page[1].ID(), next.ID)
	assert.True(t, page[1].RequestedAt().Equal(next.RequestedAt))
	store.AssertExpectations(t)

	t.Run("last page has no cursor", func(t *testing.T) {
		store := &mockStore{}
		store.On("ListByCustomer", ctx, customerID, mock.Anything, queries.DefaultListLimit+1).Return(page[:1], nil)
		q := queries.NewBookingQueries(store, &mockLocations{})

		res, err := q.ListByCustomer(ctx, customerID, customer, "", 0)
		require.NoError(t, err)
		assert.Len(t, res.Items, 1)
		assert.Empty(t, res.NextCursor)
	})

	t.Run("other customers' bookings are refused", func(t *testing.T) {
		q := queries.NewBookingQueries(&mockStore{}, &mockLocations{})
		_, err := q.ListByCustomer(ctx, uuid.New(), customer, "", 10)
		var authErr *booking.AuthorizationError
		require.ErrorAs(t, err, &authErr)
	})

	t.Run("garbage cursor", func(t *testing.T) {
		q := queries.NewBookingQueries(&mockStore{}, &mockLocations{})
		_, err := q.ListByCustomer(ctx, customerID, customer, "%%%", 10)
		assert.True(t, errs.Is(err, queries.ErrInvalidCursor), "got %v", err)
	})
}

func TestLastKnownProviderLocation(t *testing.T) {
	ctx := context.Background()
	bb := builder.NewBookingBuilder()
	b := bb.MustBuildDomain(booking.StatusInProgress)
	providerID := *b.ProviderID()

	t.Run("live position wins", func(t *testing.T) {
		store := &mockStore{}
		store.On("FindByID", ctx, b.ID()).Return(b, nil)
		store.On("ActiveForProvider", ctx, providerID).Return(b, nil)
		locations := &mockLocations{}
		recorded := time.Date(2026, 3, 1, 9, 45, 0, 0, time.UTC)
		locations.On("LastKnown", ctx, providerID).Return(&shared.ProviderLocation{
			ProviderID: providerID, Lat: 27.70, Lng: 85.31, RecordedAt: recorded,
		}, nil)
		q := queries.NewBookingQueries(store, locations)

		rm, err := q.LastKnownProviderLocation(ctx, b.ID(), bb.Customer())
		require.NoError(t, err)
		assert.Equal(t, 27.70, rm.Location.Lat)
		assert.Equal(t, recorded, rm.UpdatedAt)
		locations.AssertExpectations(t)
	})

	t.Run("falls back to the position captured at acceptance", func(t *testing.T) {
		store := &mockStore{}
		store.On("FindByID", ctx, b.ID()).Return(b, nil)
		store.On("ActiveForProvider", ctx, providerID).Return(b, nil)
		locations := &mockLocations{}
		locations.On("LastKnown", ctx, providerID).Return(nil, infra.NewRepoErr(infra.KindNotFound, "no location", nil))
		q := queries.NewBookingQueries(store, locations)

		rm, err := q.LastKnownProviderLocation(ctx, b.ID(), bb.Customer())
		require.NoError(t, err)
		assert.Equal(t, bb.ProviderLat, rm.Location.Lat)
		assert.Equal(t, bb.ProviderLng, rm.Location.Lng)
	})

	t.Run("a provider working someone else's job is not exposed", func(t *testing.T) {
		other := builder.NewBookingBuilder().With(func(o *builder.BookingBuilder) { o.ProviderID = &providerID })
		current := other.MustBuildDomain(booking.StatusInProgress)
		stale := bb.MustBuildDomain(booking.StatusAccepted)
		store := &mockStore{}
		store.On("FindByID", ctx, stale.ID()).Return(stale, nil)
		store.On("ActiveForProvider", ctx, providerID).Return(current, nil)
		locations := &mockLocations{}
		q := queries.NewBookingQueries(store, locations)

		rm, err := q.LastKnownProviderLocation(ctx, stale.ID(), bb.Customer())
		require.NoError(t, err)
		assert.Equal(t, bb.ProviderLat, rm.Location.Lat)
		assert.Equal(t, bb.ProviderLng, rm.Location.Lng)
		locations.AssertNotCalled(t, "LastKnown", mock.Anything, mock.Anything)
	})

	t.Run("completed booking shows only the acceptance position", func(t *testing.T) {
		done := bb.MustBuildDomain(booking.StatusCompleted)
		store := &mockStore{}
		store.On("FindByID", ctx, done.ID()).Return(done, nil)
		locations := &mockLocations{}
		q := queries.NewBookingQueries(store, locations)

		rm, err := q.LastKnownProviderLocation(ctx, done.ID(), bb.Customer())
		require.NoError(t, err)
		assert.Equal(t, bb.ProviderLat, rm.Location.Lat)
		store.AssertNotCalled(t, "ActiveForProvider", mock.Anything, mock.Anything)
		locations.AssertNotCalled(t, "LastKnown", mock.Anything, mock.Anything)
	})

	t.Run("closed bookings expose no position", func(t *testing.T) {
		for _, status := range []booking.Status{booking.StatusCancelled, booking.StatusReviewed, booking.StatusDeclined} {
			closed := bb.MustBuildDomain(status)
			store := &mockStore{}
			store.On("FindByID", ctx, closed.ID()).Return(closed, nil)
			locations := &mockLocations{}
			q := queries.NewBookingQueries(store, locations)

			_, err := q.LastKnownProviderLocation(ctx, closed.ID(), bb.Customer())
			require.ErrorIs(t, err, queries.ErrProviderLocationNotFound, "status=%s", status)
			locations.AssertNotCalled(t, "LastKnown", mock.Anything, mock.Anything)
		}
	})

	t.Run("open request has no provider", func(t *testing.T) {
		open := builder.NewBookingBuilder().Open()
		ob := open.MustBuildDomain(booking.StatusPending)
		store := &mockStore{}
		store.On("FindByID", ctx, ob.ID()).Return(ob, nil)
		q := queries.NewBookingQueries(store, &mockLocations{})

		_, err := q.LastKnownProviderLocation(ctx, ob.ID(), open.Customer())
		require.ErrorIs(t, err, queries.ErrProviderLocationNotFound)
	})
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 123456000, time.UTC)
	id := uuid.New()

	c, err := queries.DecodeCursor(queries.EncodeCursor(at, id))
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)
	assert.True(t, at.Equal(c.RequestedAt))

	none, err := queries.DecodeCursor("")
	require.NoError(t, err)
	assert.Nil(t, none)

	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(-3))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(10_000))
}
