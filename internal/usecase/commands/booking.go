package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/domain/user"
	"ghar-ko-sathi/internal/infra"
	"ghar-ko-sathi/internal/pkg/clock"
	"ghar-ko-sathi/internal/pkg/config"
	"ghar-ko-sathi/internal/pkg/errs"
	"ghar-ko-sathi/internal/pkg/geo"
	"ghar-ko-sathi/internal/pkg/keylock"
	"ghar-ko-sathi/internal/usecase/readmodel"
	"ghar-ko-sathi/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound    = errs.New("booking not found")
	ErrDuplicateBooking   = errs.New("booking already exists")
	ErrConcurrentUpdate   = errs.New("booking was modified concurrently")
	ErrInvalidCompletedBy = errs.New("completedBy must match the caller's role")
)

type BookingCommands interface {
	RequestBooking(ctx context.Context, actor user.Actor, req RequestBookingRequest) (*readmodel.BookingRM, error)
	AcceptBooking(ctx context.Context, actor user.Actor, req AcceptBookingRequest) (*readmodel.BookingRM, error)
	DeclineBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID, reason string) (*readmodel.BookingRM, error)
	ConfirmBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*readmodel.BookingRM, error)
	StartJob(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*readmodel.BookingRM, error)
	CompleteJob(ctx context.Context, actor user.Actor, req CompleteJobRequest) (*readmodel.BookingRM, error)
	SubmitPayment(ctx context.Context, actor user.Actor, bookingID uuid.UUID, method string) (*readmodel.BookingRM, error)
	SubmitReview(ctx context.Context, actor user.Actor, req SubmitReviewRequest) (*readmodel.BookingRM, error)
	SkipReview(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*readmodel.BookingRM, error)
	CancelBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID, reason string) (*readmodel.BookingRM, error)
	ExpireBooking(ctx context.Context, bookingID uuid.UUID) (*readmodel.BookingRM, error)
}

type RequestBookingRequest struct {
	ProviderID  *uuid.UUID
	ServiceType string
	Description string
	ScheduledAt *time.Time
	Lat         float64
	Lng         float64
}

type AcceptBookingRequest struct {
	BookingID   uuid.UUID
	ProviderLat float64
	ProviderLng float64
	// ETAMinutes falls back to a distance based estimate when nil.
	ETAMinutes *int
}

type MaterialRequest struct {
	Name string
	Cost float64
}

type CompleteJobRequest struct {
	BookingID        uuid.UUID
	CompletedBy      user.Role
	DurationHours    int
	Materials        []MaterialRequest
	AdditionalCharge float64
	ExpectedTotal    *float64
}

type SubmitReviewRequest struct {
	BookingID uuid.UUID
	Rating    int
	Comment   string
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	clock          clock.Clock
	calc           booking.PriceCalculator
	notifier       Notifier
	timeouts       PendingTimeouts
	locks          *keylock.KeyLock[uuid.UUID]
	pendingTimeout time.Duration
	logger         *slog.Logger
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	clk clock.Clock,
	calc booking.PriceCalculator,
	notifier Notifier,
	timeouts PendingTimeouts,
	cfg config.Config,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		clock:          clk,
		calc:           calc,
		notifier:       notifier,
		timeouts:       timeouts,
		locks:          keylock.New[uuid.UUID](),
		pendingTimeout: cfg.Booking.PendingTimeout,
		logger:         logger,
	}
}

func (c *bookingCommandsImpl) RequestBooking(ctx context.Context, actor user.Actor, req RequestBookingRequest) (*readmodel.BookingRM, error) {
	loc, err := booking.NewLocation(req.Lat, req.Lng)
	if err != nil {
		return nil, err
	}

	b, tr, err := booking.NewBooking(actor, booking.RequestInput{
		CustomerID:       actor.ID,
		ProviderID:       req.ProviderID,
		ServiceType:      req.ServiceType,
		Description:      req.Description,
		ScheduledAt:      req.ScheduledAt,
		CustomerLocation: loc,
	}, c.clock.Now())
	if err != nil {
		return nil, err
	}

	c.locks.Lock(b.ID())
	defer c.locks.Unlock(b.ID())

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Bookings().Create(ctx, tx.DB(), b); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrDuplicateBooking)
			}
			return err
		}
		if err := tx.Bookings().AppendTransition(ctx, tx.DB(), b.ID(), tr); err != nil {
			return err
		}
		return c.enqueueEvent(ctx, tx, b, tr)
	})
	if err != nil {
		return nil, err
	}

	c.timeouts.Schedule(b.ID(), b.RequestedAt().Add(c.pendingTimeout))
	rm := c.publish(ctx, b, tr)
	return &rm, nil
}

func (c *bookingCommandsImpl) AcceptBooking(ctx context.Context, actor user.Actor, req AcceptBookingRequest) (*readmodel.BookingRM, error) {
	loc, err := booking.NewLocation(req.ProviderLat, req.ProviderLng)
	if err != nil {
		return nil, err
	}
	return c.apply(ctx, req.BookingID, func(b *booking.Booking, now time.Time) (booking.Transition, error) {
		eta := geo.ETAMinutes(geo.HaversineKm(loc.Point(), b.CustomerLocation().Point()))
		if req.ETAMinutes != nil {
			eta = *req.ETAMinutes
		}
		return b.Accept(actor, loc, eta, now)
	})
}

func (c *bookingCommandsImpl) DeclineBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID, reason string) (*readmodel.BookingRM, error) {
	return c.apply(ctx, bookingID, func(b *booking.Booking, now time.Time) (booking.Transition, error) {
		return b.Decline(actor, reason, now)
	})
}

func (c *bookingCommandsImpl) ConfirmBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*readmodel.BookingRM, error) {
	return c.apply(ctx, bookingID, func(b *booking.Booking, now time.Time) (booking.Transition, error) {
		return b.Confirm(actor, now)
	})
}

func (c *bookingCommandsImpl) StartJob(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*readmodel.BookingRM, error) {
	return c.apply(ctx, bookingID, func(b *booking.Booking, now time.Time) (booking.Transition, error) {
		return b.Start(actor, now)
	})
}

// CompleteJob routes to the provider or customer side of the two-sided completion.
func (c *bookingCommandsImpl) CompleteJob(ctx context.Context, actor user.Actor, req CompleteJobRequest) (*readmodel.BookingRM, error) {
	if req.CompletedBy != "" && req.CompletedBy != actor.Role {
		return nil, ErrInvalidCompletedBy
	}

	if !actor.IsProvider() {
		return c.apply(ctx, req.BookingID, func(b *booking.Booking, now time.Time) (booking.Transition, error) {
			return b.CompleteByUser(actor, now)
		})
	}

	in, err := toCompletionInput(req)
	if err != nil {
		return nil, err
	}
	return c.apply(ctx, req.BookingID, func(b *booking.Booking, now time.Time) (booking.Transition, error) {
		return b.CompleteByProvider(actor, in, c.calc, now)
	})
}

func toCompletionInput(req CompleteJobRequest) (booking.CompletionInput, error) {
	in := booking.CompletionInput{DurationHours: req.DurationHours}

	for _, m := range req.Materials {
		cost, err := booking.MoneyFromRupees(m.Cost)
		if err != nil {
			return booking.CompletionInput{}, err
		}
		mat, err := booking.NewMaterial(m.Name, cost)
		if err != nil {
			return booking.CompletionInput{}, err
		}
		in.Materials = append(in.Materials, mat)
	}

	extra, err := booking.MoneyFromRupees(req.AdditionalCharge)
	if err != nil {
		return booking.CompletionInput{}, err
	}
	in.AdditionalCharge = extra

	if req.ExpectedTotal != nil {
		expected, err := booking.MoneyFromRupees(*req.ExpectedTotal)
		if err != nil {
			return booking.CompletionInput{}, err
		}
		in.ExpectedTotal = &expected
	}
	return in, nil
}

func (c *bookingCommandsImpl) SubmitPayment(ctx context.Context, actor user.Actor, bookingID uuid.UUID, method string) (*readmodel.BookingRM, error) {
	pm, err := booking.ParsePaymentMethod(method)
	if err != nil {
		return nil, err
	}
	return c.apply(ctx, bookingID, func(b *booking.Booking, now time.Time) (booking.Transition, error) {
		return b.Pay(actor, pm, now)
	})
}

func (c *bookingCommandsImpl) SubmitReview(ctx context.Context, actor user.Actor, req SubmitReviewRequest) (*readmodel.BookingRM, error) {
	return c.apply(ctx, req.BookingID, func(b *booking.Booking, now time.Time) (booking.Transition, error) {
		return b.SubmitReview(actor, req.Rating, req.Comment, now)
	})
}

func (c *bookingCommandsImpl) SkipReview(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*readmodel.BookingRM, error) {
	return c.apply(ctx, bookingID, func(b *booking.Booking, now time.Time) (booking.Transition, error) {
		return b.SkipReview(actor, now)
	})
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID, reason string) (*readmodel.BookingRM, error) {
	return c.apply(ctx, bookingID, func(b *booking.Booking, now time.Time) (booking.Transition, error) {
		return b.Cancel(actor, reason, now)
	})
}

func (c *bookingCommandsImpl) ExpireBooking(ctx context.Context, bookingID uuid.UUID) (*readmodel.BookingRM, error) {
	return c.apply(ctx, bookingID, func(b *booking.Booking, now time.Time) (booking.Transition, error) {
		return b.Expire(user.SystemActor(), now)
	})
}

type transitionFunc func(b *booking.Booking, now time.Time) (booking.Transition, error)

// apply holds the booking's lock from load through dispatch so events leave in commit order.
func (c *bookingCommandsImpl) apply(ctx context.Context, bookingID uuid.UUID, fn transitionFunc) (*readmodel.BookingRM, error) {
	c.locks.Lock(bookingID)
	defer c.locks.Unlock(bookingID)

	var (
		committed *booking.Booking
		tr        booking.Transition
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindForUpdate(ctx, tx.DB(), bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		expected := b.Version()
		t, err := fn(b, c.clock.Now())
		if err != nil {
			return err
		}

		if err := tx.Bookings().Update(ctx, tx.DB(), b, expected); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrConcurrentUpdate)
			}
			return err
		}
		if err := tx.Bookings().AppendTransition(ctx, tx.DB(), b.ID(), t); err != nil {
			return err
		}
		if err := c.enqueueEvent(ctx, tx, b, t); err != nil {
			return err
		}

		committed, tr = b, t
		return nil
	})
	if err != nil {
		return nil, err
	}

	if tr.From == booking.StatusPending {
		c.timeouts.Cancel(bookingID)
	}
	rm := c.publish(ctx, committed, tr)
	return &rm, nil
}

// EventMessage is the outbox payload relayed to downstream consumers.
type EventMessage struct {
	Event      string              `json:"event"`
	BookingID  uuid.UUID           `json:"bookingId"`
	From       string              `json:"from,omitempty"`
	To         string              `json:"to"`
	ActorID    uuid.UUID           `json:"actorId"`
	ActorRole  string              `json:"actorRole"`
	OccurredAt time.Time           `json:"occurredAt"`
	Booking    readmodel.BookingRM `json:"booking"`
}

func (c *bookingCommandsImpl) enqueueEvent(ctx context.Context, tx shared.Tx, b *booking.Booking, t booking.Transition) error {
	msg := EventMessage{
		Event:      t.Event.String(),
		BookingID:  b.ID(),
		From:       t.From.String(),
		To:         t.To.String(),
		ActorID:    t.ActorID,
		ActorRole:  t.ActorRole.String(),
		OccurredAt: t.OccurredAt,
		Booking:    snapshotOf(b),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return errs.Wrap(err, "failed to encode booking event")
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), shared.NotificationKindBookingEvent, t.Event.String(), payload, t.OccurredAt)
}

func (c *bookingCommandsImpl) publish(ctx context.Context, b *booking.Booking, t booking.Transition) readmodel.BookingRM {
	rm := snapshotOf(b)
	parties := PartiesOf(b)

	c.notifier.NotifyParties(ctx, parties, t.Event, rm)
	if t.Event == booking.EventNewBookingRequest && b.IsOpen() {
		c.notifier.BroadcastToAvailableProviders(ctx, t.Event, rm)
	}

	c.logger.Info("booking transition committed",
		slog.String("booking_id", b.ID().String()),
		slog.String("action", t.Action.String()),
		slog.String("from", t.From.String()),
		slog.String("to", t.To.String()),
		slog.String("actor_role", t.ActorRole.String()))
	return rm
}

// snapshotOf is the pushed booking state; history is served over REST only.
func snapshotOf(b *booking.Booking) readmodel.BookingRM {
	rm := readmodel.FromBooking(b)
	rm.History = nil
	return rm
}
