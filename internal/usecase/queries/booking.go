package queries

import (
	"context"
	"time"

	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/domain/user"
	"ghar-ko-sathi/internal/infra"
	"ghar-ko-sathi/internal/pkg/errs"
	"ghar-ko-sathi/internal/usecase/readmodel"
	"ghar-ko-sathi/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound          = errs.New("booking not found")
	ErrProviderLocationNotFound = errs.New("no provider location known for booking")
)

type BookingReadStore interface {
	// FindByID loads the booking together with its transition history.
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, after *Cursor, limit int) ([]*booking.Booking, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID, after *Cursor, limit int) ([]*booking.Booking, error)
	ListPendingRequestedBefore(ctx context.Context, before time.Time) ([]shared.PendingBooking, error)
	ActiveForProvider(ctx context.Context, providerID uuid.UUID) (*booking.Booking, error)
}

type LocationReader interface {
	LastKnown(ctx context.Context, providerID uuid.UUID) (*shared.ProviderLocation, error)
}

type BookingListResult struct {
	Items      []readmodel.BookingListItemRM `json:"items"`
	NextCursor string                        `json:"nextCursor,omitempty"`
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, actor user.Actor) (*readmodel.BookingRM, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, actor user.Actor, cursor string, limit int) (*BookingListResult, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID, actor user.Actor, cursor string, limit int) (*BookingListResult, error)
	ListPendingRequestedBefore(ctx context.Context, before time.Time) ([]shared.PendingBooking, error)
	LastKnownProviderLocation(ctx context.Context, bookingID uuid.UUID, actor user.Actor) (*readmodel.ProviderLocationRM, error)
}

type bookingQueriesImpl struct {
	store     BookingReadStore
	locations LocationReader
}

func NewBookingQueries(store BookingReadStore, locations LocationReader) BookingQueries {
	return &bookingQueriesImpl{store: store, locations: locations}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actor user.Actor) (*readmodel.BookingRM, error) {
	b, err := q.load(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	rm := readmodel.FromBooking(b)
	return &rm, nil
}

func (q *bookingQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID, actor user.Actor, cursor string, limit int) (*BookingListResult, error) {
	if !actor.IsAdmin() && (!actor.IsCustomer() || actor.ID != customerID) {
		return nil, &booking.AuthorizationError{Action: "list", Reason: "customers may only list their own bookings"}
	}
	return q.list(ctx, cursor, limit, func(after *Cursor, n int) ([]*booking.Booking, error) {
		return q.store.ListByCustomer(ctx, customerID, after, n)
	})
}

func (q *bookingQueriesImpl) ListByProvider(ctx context.Context, providerID uuid.UUID, actor user.Actor, cursor string, limit int) (*BookingListResult, error) {
	if !actor.IsAdmin() && (!actor.IsProvider() || actor.ID != providerID) {
		return nil, &booking.AuthorizationError{Action: "list", Reason: "providers may only list their own bookings"}
	}
	return q.list(ctx, cursor, limit, func(after *Cursor, n int) ([]*booking.Booking, error) {
		return q.store.ListByProvider(ctx, providerID, after, n)
	})
}

func (q *bookingQueriesImpl) list(ctx context.Context, cursor string, limit int, fetch func(*Cursor, int) ([]*booking.Booking, error)) (*BookingListResult, error) {
	after, err := DecodeCursor(cursor)
	if err != nil {
		return nil, err
	}
	n := ValidateLimit(limit)

	rows, err := fetch(after, n+1)
	if err != nil {
		return nil, err
	}

	res := &BookingListResult{Items: make([]readmodel.BookingListItemRM, 0, n)}
	for i, b := range rows {
		if i == n {
			last := rows[n-1]
			res.NextCursor = EncodeCursor(last.RequestedAt(), last.ID())
			break
		}
		res.Items = append(res.Items, readmodel.ToListItem(b))
	}
	return res, nil
}

func (q *bookingQueriesImpl) ListPendingRequestedBefore(ctx context.Context, before time.Time) ([]shared.PendingBooking, error) {
	return q.store.ListPendingRequestedBefore(ctx, before)
}

// LastKnownProviderLocation serves the live position only while this booking is the
// provider's active job; otherwise it falls back to the one captured at acceptance.
// Closed bookings expose no position at all.
func (q *bookingQueriesImpl) LastKnownProviderLocation(ctx context.Context, bookingID uuid.UUID, actor user.Actor) (*readmodel.ProviderLocationRM, error) {
	b, err := q.load(ctx, bookingID, actor)
	if err != nil {
		return nil, err
	}
	if b.ProviderID() == nil || b.Status().IsTerminal() {
		return nil, ErrProviderLocationNotFound
	}

	rm := &readmodel.ProviderLocationRM{
		BookingID:  b.ID(),
		ProviderID: *b.ProviderID(),
		ETAMinutes: b.ETAMinutes(),
	}

	live, err := q.liveLocation(ctx, b)
	if err != nil {
		return nil, err
	}
	if live != nil {
		rm.Location = readmodel.LocationRM{Lat: live.Lat, Lng: live.Lng}
		rm.UpdatedAt = live.RecordedAt
		return rm, nil
	}

	accepted := b.ProviderLocation()
	if accepted == nil {
		return nil, ErrProviderLocationNotFound
	}
	rm.Location = readmodel.LocationRM{Lat: accepted.Lat(), Lng: accepted.Lng()}
	rm.UpdatedAt = b.UpdatedAt()
	return rm, nil
}

func (q *bookingQueriesImpl) liveLocation(ctx context.Context, b *booking.Booking) (*shared.ProviderLocation, error) {
	if !b.Status().IsActive() {
		return nil, nil
	}
	providerID := *b.ProviderID()

	active, err := q.store.ActiveForProvider(ctx, providerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if active.ID() != b.ID() {
		return nil, nil
	}

	live, err := q.locations.LastKnown(ctx, providerID)
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, err
	}
	return live, nil
}

func (q *bookingQueriesImpl) load(ctx context.Context, id uuid.UUID, actor user.Actor) (*booking.Booking, error) {
	b, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin() && !b.IsParty(actor.ID) {
		return nil, &booking.AuthorizationError{Action: "view", Reason: "only the booking's parties may view it"}
	}
	return b, nil
}
