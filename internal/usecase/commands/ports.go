package commands

import (
	"context"
	"time"

	"ghar-ko-sathi/internal/domain/booking"

	"github.com/google/uuid"
)

// Parties identifies who may receive events for one booking.
type Parties struct {
	BookingID  uuid.UUID
	CustomerID uuid.UUID
	ProviderID *uuid.UUID
}

func PartiesOf(b *booking.Booking) Parties {
	return Parties{BookingID: b.ID(), CustomerID: b.CustomerID(), ProviderID: b.ProviderID()}
}

// Notifier pushes committed events to connected sessions.
type Notifier interface {
	NotifyParties(ctx context.Context, parties Parties, event booking.Event, payload any)
	BroadcastToAvailableProviders(ctx context.Context, event booking.Event, payload any)
}

// PendingTimeouts tracks the expiry deadline of each pending booking.
type PendingTimeouts interface {
	Schedule(bookingID uuid.UUID, at time.Time)
	Cancel(bookingID uuid.UUID)
}
