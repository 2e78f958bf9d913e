package repository

import (
	"context"

	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/infra"
	"ghar-ko-sathi/internal/infra/repository/converter"
	sqlc "ghar-ko-sathi/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type BookingWriteQueries interface {
	CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingParams) error
	GetBookingForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	UpdateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingParams) (int64, error)
	CreateBookingTransition(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingTransitionParams) error
}

type BookingRepository struct {
	queries BookingWriteQueries
	db      sqlc.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db sqlc.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookingRepository) Create(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) error {
	if err := r.queries.CreateBooking(ctx, tx, converter.BookingToCreateParams(b)); err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingForUpdate(ctx, tx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	b, err := converter.BookingFromRow(row, nil)
	if err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "stored booking is invalid", err)
	}
	return b, nil
}

func (r *BookingRepository) Update(ctx context.Context, tx sqlc.DBTX, b *booking.Booking, expectedVersion int64) error {
	params, err := converter.BookingToUpdateParams(b, expectedVersion)
	if err != nil {
		return infra.NewRepoErr(infra.KindDBFailure, "failed to prepare booking update", err)
	}

	affected, err := r.queries.UpdateBooking(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if affected == 0 {
		return infra.NewRepoErr(infra.KindConflict, "booking version changed", nil)
	}
	return nil
}

func (r *BookingRepository) AppendTransition(ctx context.Context, tx sqlc.DBTX, bookingID uuid.UUID, t booking.Transition) error {
	if err := r.queries.CreateBookingTransition(ctx, tx, converter.TransitionToParams(bookingID, t)); err != nil {
		return infra.WrapRepoErr("failed to record booking transition", err)
	}
	return nil
}
