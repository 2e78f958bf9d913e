package presence

import (
	"context"
	"log/slog"
	"time"

	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/domain/user"
	"ghar-ko-sathi/internal/infra"
	"ghar-ko-sathi/internal/pkg/clock"
	"ghar-ko-sathi/internal/pkg/geo"
	"ghar-ko-sathi/internal/usecase/shared"

	"github.com/google/uuid"
)

type ActiveBookingFinder interface {
	ActiveForProvider(ctx context.Context, providerID uuid.UUID) (*booking.Booking, error)
}

type LocationStore interface {
	Save(ctx context.Context, loc shared.ProviderLocation) error
}

type Sender interface {
	SendTo(ctx context.Context, userID uuid.UUID, role user.Role, event booking.Event, payload any) bool
}

// LocationUpdate is the payload of a location-update event.
type LocationUpdate struct {
	BookingID  uuid.UUID `json:"bookingId"`
	ProviderID uuid.UUID `json:"providerId"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	DistanceKm float64   `json:"distanceKm"`
	ETAMinutes int       `json:"eta"`
	RecordedAt time.Time `json:"recordedAt"`
}

type Broadcaster struct {
	registry  *Registry
	bookings  ActiveBookingFinder
	locations LocationStore
	sender    Sender
	clock     clock.Clock
	logger    *slog.Logger
}

func NewBroadcaster(registry *Registry, bookings ActiveBookingFinder, locations LocationStore, sender Sender, clk clock.Clock, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		registry:  registry,
		bookings:  bookings,
		locations: locations,
		sender:    sender,
		clock:     clk,
		logger:    logger,
	}
}

// UpdateLocation records a provider's position and streams it to the customer
// of the provider's active booking. It returns the update that was sent, or
// nil when the provider has no active booking or the customer is offline.
func (b *Broadcaster) UpdateLocation(ctx context.Context, connID string, loc booking.Location) (*LocationUpdate, error) {
	rec, ok := b.registry.ByConnection(connID)
	if !ok {
		return nil, ErrNotRegistered
	}
	if rec.Role != user.RoleServiceProvider {
		return nil, ErrNotProvider
	}
	if err := b.registry.SetLocation(connID, loc); err != nil {
		return nil, err
	}

	now := b.clock.Now()
	if err := b.locations.Save(ctx, shared.ProviderLocation{
		ProviderID: rec.UserID,
		Lat:        loc.Lat(),
		Lng:        loc.Lng(),
		RecordedAt: now,
	}); err != nil {
		// the live stream still works without the last-known copy
		b.logger.WarnContext(ctx, "failed to store provider location",
			slog.String("provider_id", rec.UserID.String()), slog.Any("error", err))
	}

	active, err := b.bookings.ActiveForProvider(ctx, rec.UserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}

	customerLoc := active.CustomerLocation()
	if customer, ok := b.registry.Record(active.CustomerID()); ok && customer.LastKnownLocation != nil {
		customerLoc = *customer.LastKnownLocation
	}

	km := geo.HaversineKm(loc.Point(), customerLoc.Point())
	update := &LocationUpdate{
		BookingID:  active.ID(),
		ProviderID: rec.UserID,
		Lat:        loc.Lat(),
		Lng:        loc.Lng(),
		DistanceKm: km,
		ETAMinutes: geo.ETAMinutes(km),
		RecordedAt: now,
	}
	if !b.sender.SendTo(ctx, active.CustomerID(), user.RoleCustomer, booking.EventLocationUpdate, update) {
		return nil, nil
	}
	return update, nil
}

// Disconnect drops the connection's presence; nothing is streamed for it afterwards.
func (b *Broadcaster) Disconnect(connID string) (Record, bool) {
	rec, ok := b.registry.Unregister(connID)
	if ok {
		b.logger.Debug("presence removed",
			slog.String("user_id", rec.UserID.String()),
			slog.String("role", rec.Role.String()))
	}
	return rec, ok
}
