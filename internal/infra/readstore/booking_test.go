//go:build unit

package readstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/infra"
	"ghar-ko-sathi/internal/infra/readstore"
	"ghar-ko-sathi/internal/infra/repository/converter"
	sqlc "ghar-ko-sathi/internal/infra/sqlc/generated"
	"ghar-ko-sathi/internal/pkg/pgconv"
	"ghar-ko-sathi/internal/usecase/queries"
	"ghar-ko-sathi/tests/common/builder"
	readstoremock "ghar-ko-sathi/tests/mock/readstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errDBConnectionLost = errors.New("database connection lost")

// pendingRow is a freshly requested booking as stored by Create.
func pendingRow(id uuid.UUID) sqlc.Bookings {
	bb := builder.NewBookingBuilder()
	p := converter.BookingToCreateParams(bb.MustBuildDomain(booking.StatusPending))
	return sqlc.Bookings{
		ID:          id,
		CustomerID:  p.CustomerID,
		ProviderID:  p.ProviderID,
		Status:      p.Status,
		ServiceType: p.ServiceType,
		Description: p.Description,
		ScheduledAt: p.ScheduledAt,
		CustomerLat: p.CustomerLat,
		CustomerLng: p.CustomerLng,
		RequestedAt: p.RequestedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

func newStore(t *testing.T) (*readstore.BookingReadStore, *readstoremock.MockBookingViewQueries) {
	ctrl := gomock.NewController(t)
	mockQueries := readstoremock.NewMockBookingViewQueries(ctrl)
	return readstore.NewBookingReadStore(mockQueries, nil), mockQueries
}

// =============================================================================
// FindByID Tests
// =============================================================================

func TestReadStore_FindByID(t *testing.T) {
	ctx := context.Background()
	bookingID := uuid.New()

	testCases := []struct {
		name          string
		setupMock     func(*readstoremock.MockBookingViewQueries)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
		historyLen    int
	}{
		{
			name: "success: booking with history",
			setupMock: func(mock *readstoremock.MockBookingViewQueries) {
				mock.EXPECT().GetBookingByID(ctx, gomock.Any(), bookingID).Return(pendingRow(bookingID), nil)
				mock.EXPECT().ListBookingTransitions(ctx, gomock.Any(), bookingID).Return([]sqlc.BookingTransitions{{
					BookingID:  bookingID,
					Action:     "request",
					ToStatus:   "pending",
					Event:      "newBookingRequest",
					ActorID:    uuid.New(),
					ActorRole:  "customer",
					OccurredAt: pgtype.Timestamptz{Time: time.Now(), Valid: true},
				}}, nil)
			},
			historyLen: 1,
		},
		{
			name: "error: booking not found",
			setupMock: func(mock *readstoremock.MockBookingViewQueries) {
				mock.EXPECT().GetBookingByID(ctx, gomock.Any(), bookingID).Return(sqlc.Bookings{}, pgx.ErrNoRows)
			},
			expectedError: true,
			expectKind:    infra.KindNotFound,
		},
		{
			name: "error: history query fails",
			setupMock: func(mock *readstoremock.MockBookingViewQueries) {
				mock.EXPECT().GetBookingByID(ctx, gomock.Any(), bookingID).Return(pendingRow(bookingID), nil)
				mock.EXPECT().ListBookingTransitions(ctx, gomock.Any(), bookingID).Return(nil, errDBConnectionLost)
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
		{
			name: "error: stored row is corrupt",
			setupMock: func(mock *readstoremock.MockBookingViewQueries) {
				row := pendingRow(bookingID)
				row.Status = "teleported"
				mock.EXPECT().GetBookingByID(ctx, gomock.Any(), bookingID).Return(row, nil)
				mock.EXPECT().ListBookingTransitions(ctx, gomock.Any(), bookingID).Return(nil, nil)
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store, mockQueries := newStore(t)
			tc.setupMock(mockQueries)

			result, actualError := store.FindByID(ctx, bookingID)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
				assert.Nil(t, result, "result should be nil when error occurs")
				return
			}
			require.NoError(t, actualError)
			require.NotNil(t, result)
			assert.Equal(t, bookingID, result.ID())
			assert.Len(t, result.History(), tc.historyLen)
		})
	}
}

// =============================================================================
// List Tests
// =============================================================================

func TestReadStore_ListByCustomer(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	t.Run("first page sends no cursor", func(t *testing.T) {
		store, mockQueries := newStore(t)
		mockQueries.EXPECT().ListBookingsByCustomer(ctx, gomock.Any(), sqlc.ListBookingsByCustomerParams{
			CustomerID: customerID,
			PageLimit:  21,
		}).Return([]sqlc.Bookings{pendingRow(uuid.New()), pendingRow(uuid.New())}, nil)

		results, err := store.ListByCustomer(ctx, customerID, nil, 21)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("cursor is passed as keyset position", func(t *testing.T) {
		store, mockQueries := newStore(t)
		after := &queries.Cursor{RequestedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), ID: uuid.New()}
		mockQueries.EXPECT().ListBookingsByCustomer(ctx, gomock.Any(), sqlc.ListBookingsByCustomerParams{
			CustomerID:        customerID,
			CursorRequestedAt: pgconv.TimeToPgtype(after.RequestedAt),
			CursorID:          pgconv.UUIDToPgtype(after.ID),
			PageLimit:         5,
		}).Return(nil, nil)

		results, err := store.ListByCustomer(ctx, customerID, after, 5)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("database error", func(t *testing.T) {
		store, mockQueries := newStore(t)
		mockQueries.EXPECT().ListBookingsByCustomer(ctx, gomock.Any(), gomock.Any()).Return(nil, errDBConnectionLost)

		results, err := store.ListByCustomer(ctx, customerID, nil, 10)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
		assert.Nil(t, results)
	})
}

func TestReadStore_ListPendingRequestedBefore(t *testing.T) {
	ctx := context.Background()
	store, mockQueries := newStore(t)
	cutoff := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	id := uuid.New()
	requested := cutoff.Add(-15 * time.Minute)

	mockQueries.EXPECT().ListPendingBookingsRequestedBefore(ctx, gomock.Any(), pgconv.TimeToPgtype(cutoff)).
		Return([]sqlc.ListPendingBookingsRequestedBeforeRow{{ID: id, RequestedAt: pgconv.TimeToPgtype(requested)}}, nil)

	results, err := store.ListPendingRequestedBefore(ctx, cutoff)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, id, results[0].ID)
	assert.True(t, requested.Equal(results[0].RequestedAt))
}

func TestReadStore_ActiveForProvider(t *testing.T) {
	ctx := context.Background()
	providerID := uuid.New()

	t.Run("none active", func(t *testing.T) {
		store, mockQueries := newStore(t)
		mockQueries.EXPECT().GetActiveBookingForProvider(ctx, gomock.Any(), pgconv.UUIDToPgtype(providerID)).
			Return(sqlc.Bookings{}, pgx.ErrNoRows)

		_, err := store.ActiveForProvider(ctx, providerID)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("active booking is returned without history", func(t *testing.T) {
		store, mockQueries := newStore(t)
		id := uuid.New()
		mockQueries.EXPECT().GetActiveBookingForProvider(ctx, gomock.Any(), pgconv.UUIDToPgtype(providerID)).
			Return(pendingRow(id), nil)

		b, err := store.ActiveForProvider(ctx, providerID)
		require.NoError(t, err)
		assert.Equal(t, id, b.ID())
		assert.Empty(t, b.History())
	})
}
