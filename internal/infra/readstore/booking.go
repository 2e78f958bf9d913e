package readstore

import (
	"context"
	"time"

	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/infra"
	"ghar-ko-sathi/internal/infra/repository/converter"
	sqlc "ghar-ko-sathi/internal/infra/sqlc/generated"
	"ghar-ko-sathi/internal/pkg/pgconv"
	"ghar-ko-sathi/internal/usecase/queries"
	"ghar-ko-sathi/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingViewQueries interface {
	GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	ListBookingTransitions(ctx context.Context, db sqlc.DBTX, bookingID uuid.UUID) ([]sqlc.BookingTransitions, error)
	ListBookingsByCustomer(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByCustomerParams) ([]sqlc.Bookings, error)
	ListBookingsByProvider(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByProviderParams) ([]sqlc.Bookings, error)
	ListPendingBookingsRequestedBefore(ctx context.Context, db sqlc.DBTX, requestedAt pgtype.Timestamptz) ([]sqlc.ListPendingBookingsRequestedBeforeRow, error)
	GetActiveBookingForProvider(ctx context.Context, db sqlc.DBTX, providerID pgtype.UUID) (sqlc.Bookings, error)
}

type BookingReadStore struct {
	queries BookingViewQueries
	db      sqlc.DBTX
}

func NewBookingReadStore(queries BookingViewQueries, db sqlc.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByID(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get booking by id", err)
	}

	trs, err := r.queries.ListBookingTransitions(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking transitions", err)
	}
	history := make([]booking.Transition, 0, len(trs))
	for _, t := range trs {
		history = append(history, converter.TransitionFromRow(t))
	}

	return toBooking(row, history)
}

// FindSummaryByID skips the transition history.
func (r *BookingReadStore) FindSummaryByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByID(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get booking by id", err)
	}
	return toBooking(row, nil)
}

func (r *BookingReadStore) ListByCustomer(ctx context.Context, customerID uuid.UUID, after *queries.Cursor, limit int) ([]*booking.Booking, error) {
	params := sqlc.ListBookingsByCustomerParams{
		CustomerID: customerID,
		PageLimit:  int32(limit), // #nosec G115 -- bounded by queries.MaxListLimit
	}
	params.CursorRequestedAt, params.CursorID = cursorParams(after)

	rows, err := r.queries.ListBookingsByCustomer(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by customer", err)
	}
	return toBookings(rows)
}

func (r *BookingReadStore) ListByProvider(ctx context.Context, providerID uuid.UUID, after *queries.Cursor, limit int) ([]*booking.Booking, error) {
	params := sqlc.ListBookingsByProviderParams{
		ProviderID: pgconv.UUIDToPgtype(providerID),
		PageLimit:  int32(limit), // #nosec G115 -- bounded by queries.MaxListLimit
	}
	params.CursorRequestedAt, params.CursorID = cursorParams(after)

	rows, err := r.queries.ListBookingsByProvider(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by provider", err)
	}
	return toBookings(rows)
}

func (r *BookingReadStore) ListPendingRequestedBefore(ctx context.Context, before time.Time) ([]shared.PendingBooking, error) {
	rows, err := r.queries.ListPendingBookingsRequestedBefore(ctx, r.db, pgconv.TimeToPgtype(before))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list pending bookings", err)
	}
	out := make([]shared.PendingBooking, 0, len(rows))
	for _, row := range rows {
		out = append(out, shared.PendingBooking{ID: row.ID, RequestedAt: pgconv.TimeFromPgtype(row.RequestedAt)})
	}
	return out, nil
}

// ActiveForProvider returns the accepted, confirmed or in-progress booking the provider is working.
func (r *BookingReadStore) ActiveForProvider(ctx context.Context, providerID uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetActiveBookingForProvider(ctx, r.db, pgconv.UUIDToPgtype(providerID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get active booking for provider", err)
	}
	return toBooking(row, nil)
}

func cursorParams(after *queries.Cursor) (pgtype.Timestamptz, pgtype.UUID) {
	if after == nil {
		return pgtype.Timestamptz{}, pgtype.UUID{}
	}
	return pgconv.TimeToPgtype(after.RequestedAt), pgconv.UUIDToPgtype(after.ID)
}

func toBooking(row sqlc.Bookings, history []booking.Transition) (*booking.Booking, error) {
	b, err := converter.BookingFromRow(row, history)
	if err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "stored booking is invalid", err)
	}
	return b, nil
}

func toBookings(rows []sqlc.Bookings) ([]*booking.Booking, error) {
	out := make([]*booking.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := toBooking(row, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
