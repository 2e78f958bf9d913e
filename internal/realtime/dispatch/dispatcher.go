package dispatch

import (
	"context"
	"log/slog"
	"sync/atomic"

	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/domain/user"
	"ghar-ko-sathi/internal/infra"
	"ghar-ko-sathi/internal/pkg/errs"
	"ghar-ko-sathi/internal/realtime"
	"ghar-ko-sathi/internal/realtime/presence"
	"ghar-ko-sathi/internal/usecase/commands"

	"github.com/google/uuid"
)

var ErrBookingNotFound = errs.New("booking not found")

// PartyResolver returns the current customer and provider of a booking.
type PartyResolver interface {
	FindSummaryByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
}

// Dispatcher routes booking events to the connected sessions of that
// booking's parties. Routing is keyed by identity and role together, so a
// session never sees another customer's booking.
type Dispatcher struct {
	registry *presence.Registry
	resolver PartyResolver
	logger   *slog.Logger

	delivered atomic.Int64
	dropped   atomic.Int64
}

func NewDispatcher(registry *presence.Registry, resolver PartyResolver, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, resolver: resolver, logger: logger}
}

// Publish looks up the booking's parties and forwards the event to them.
func (d *Dispatcher) Publish(ctx context.Context, bookingID uuid.UUID, event booking.Event, payload any) error {
	b, err := d.resolver.FindSummaryByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrBookingNotFound)
		}
		return err
	}
	d.NotifyParties(ctx, commands.PartiesOf(b), event, payload)
	return nil
}

func (d *Dispatcher) NotifyParties(ctx context.Context, parties commands.Parties, event booking.Event, payload any) {
	env, err := realtime.NewEnvelope(event.String(), payload)
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to encode event", slog.String("event", event.String()), slog.Any("error", err))
		return
	}

	d.deliver(ctx, parties.CustomerID, user.RoleCustomer, env)
	if parties.ProviderID != nil {
		d.deliver(ctx, *parties.ProviderID, user.RoleServiceProvider, env)
	}
}

// SendTo delivers to one user's session if it is registered under role.
func (d *Dispatcher) SendTo(ctx context.Context, userID uuid.UUID, role user.Role, event booking.Event, payload any) bool {
	env, err := realtime.NewEnvelope(event.String(), payload)
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to encode event", slog.String("event", event.String()), slog.Any("error", err))
		return false
	}
	return d.deliver(ctx, userID, role, env)
}

func (d *Dispatcher) BroadcastToAvailableProviders(ctx context.Context, event booking.Event, payload any) {
	env, err := realtime.NewEnvelope(event.String(), payload)
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to encode event", slog.String("event", event.String()), slog.Any("error", err))
		return
	}
	for _, s := range d.registry.AvailableProviders() {
		if err := s.Send(env); err != nil {
			d.drop(ctx, env.Event, s.ID(), err.Error())
			continue
		}
		d.delivered.Add(1)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, userID uuid.UUID, role user.Role, env realtime.Envelope) bool {
	session, rec, ok := d.registry.Lookup(userID)
	if !ok {
		d.drop(ctx, env.Event, userID.String(), "not connected")
		return false
	}
	if rec.Role != role {
		d.drop(ctx, env.Event, userID.String(), "registered under another role")
		return false
	}
	if err := session.Send(env); err != nil {
		d.drop(ctx, env.Event, userID.String(), err.Error())
		return false
	}
	d.delivered.Add(1)
	return true
}

func (d *Dispatcher) drop(ctx context.Context, event, target, reason string) {
	d.dropped.Add(1)
	d.logger.DebugContext(ctx, "event not delivered",
		slog.String("event", event),
		slog.String("target", target),
		slog.String("reason", reason))
}

func (d *Dispatcher) Delivered() int64 { return d.delivered.Load() }
func (d *Dispatcher) Dropped() int64   { return d.dropped.Load() }
