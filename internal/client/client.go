// Package client is the booking SDK used by customer and provider apps. It
// renders from a local cache, sends actions over an injected connection and
// queues them while the connection is down.
package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"ghar-ko-sathi/internal/client/cache"
	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/domain/user"
	reqdto "ghar-ko-sathi/internal/handler/dto/request"
	"ghar-ko-sathi/internal/pkg/errs"
	"ghar-ko-sathi/internal/realtime"
	"ghar-ko-sathi/internal/usecase/readmodel"

	"github.com/google/uuid"
)

var ErrTransportUnavailable = errs.New("transport unavailable")

const (
	eventActionRejected = "actionRejected"
	eventRegister       = "register"
)

// Conn is the duplex channel to the server. Send returns an error marked
// with ErrTransportUnavailable while disconnected.
type Conn interface {
	Send(ctx context.Context, env realtime.Envelope) error
}

// Fetcher reads authoritative state over REST.
type Fetcher interface {
	FetchBooking(ctx context.Context, id uuid.UUID) (*readmodel.BookingRM, error)
}

type Delivery int

const (
	Sent Delivery = iota
	Queued
)

func (d Delivery) String() string {
	if d == Queued {
		return "queued"
	}
	return "sent"
}

// Rejection is an actionRejected push from the server.
type Rejection struct {
	RequestEvent string `json:"requestEvent"`
	BookingID    string `json:"bookingId,omitempty"`
	Code         string `json:"code"`
	Message      string `json:"message"`
}

type Options struct {
	// OnRejected is called after the rejected booking has been re-fetched.
	OnRejected func(Rejection)
	// OnEvent sees every push, including ones the cache ignores.
	OnEvent func(realtime.Envelope)
}

type BookingClient struct {
	self    user.Actor
	conn    Conn
	cache   *cache.Cache
	fetcher Fetcher
	logger  *slog.Logger
	opts    Options

	// flushMu keeps queued and fresh actions in submission order.
	flushMu sync.Mutex
}

func New(self user.Actor, conn Conn, c *cache.Cache, fetcher Fetcher, logger *slog.Logger, opts Options) *BookingClient {
	return &BookingClient{
		self:    self,
		conn:    conn,
		cache:   c,
		fetcher: fetcher,
		logger:  logger,
		opts:    opts,
	}
}

func (c *BookingClient) Cache() *cache.Cache { return c.cache }

// Register binds the connection to this client's identity. It is never queued.
func (c *BookingClient) Register(ctx context.Context, available *bool) error {
	env, err := realtime.NewEnvelope(eventRegister, reqdto.RegisterRequest{
		UserID:    c.self.ID,
		Role:      c.self.Role.String(),
		Available: available,
	})
	if err != nil {
		return err
	}
	return c.conn.Send(ctx, env)
}

func (c *BookingClient) RequestBooking(ctx context.Context, req reqdto.SendBookingRequest) (Delivery, error) {
	return c.submit(ctx, "sendBookingRequest", nil, req)
}

func (c *BookingClient) AcceptBooking(ctx context.Context, req reqdto.AcceptBookingRequest) (Delivery, error) {
	return c.submit(ctx, "acceptBooking", &req.BookingID, req)
}

func (c *BookingClient) DeclineBooking(ctx context.Context, bookingID uuid.UUID, reason string) (Delivery, error) {
	return c.submit(ctx, "declineBooking", &bookingID, reqdto.DeclineBookingRequest{BookingID: bookingID, Reason: reason})
}

func (c *BookingClient) ConfirmBooking(ctx context.Context, bookingID uuid.UUID) (Delivery, error) {
	return c.submit(ctx, "confirmBooking", &bookingID, reqdto.BookingRef{BookingID: bookingID})
}

func (c *BookingClient) StartJob(ctx context.Context, bookingID uuid.UUID) (Delivery, error) {
	return c.submit(ctx, "startJob", &bookingID, reqdto.BookingRef{BookingID: bookingID})
}

func (c *BookingClient) CompleteJob(ctx context.Context, req reqdto.CompleteJobRequest) (Delivery, error) {
	return c.submit(ctx, "completeJob", &req.BookingID, req)
}

func (c *BookingClient) SubmitPayment(ctx context.Context, bookingID uuid.UUID, method string) (Delivery, error) {
	return c.submit(ctx, "submitPayment", &bookingID, reqdto.SubmitPaymentRequest{BookingID: bookingID, Method: method})
}

func (c *BookingClient) SubmitReview(ctx context.Context, req reqdto.SubmitReviewRequest) (Delivery, error) {
	return c.submit(ctx, "submitReview", &req.BookingID, req)
}

func (c *BookingClient) SkipReview(ctx context.Context, bookingID uuid.UUID) (Delivery, error) {
	return c.submit(ctx, "skipReview", &bookingID, reqdto.BookingRef{BookingID: bookingID})
}

func (c *BookingClient) CancelBooking(ctx context.Context, bookingID uuid.UUID, reason string) (Delivery, error) {
	return c.submit(ctx, "cancelBooking", &bookingID, reqdto.CancelBookingRequest{
		BookingID:   bookingID,
		Reason:      reason,
		CancelledBy: c.self.Role.String(),
	})
}

// UpdateLocation is fire and forget; a stale position is worthless, so it is
// not queued.
func (c *BookingClient) UpdateLocation(ctx context.Context, lat, lng float64) error {
	id := c.self.ID
	env, err := realtime.NewEnvelope("updateLocation", reqdto.UpdateLocationRequest{
		UserID:   &id,
		Location: reqdto.LocationDTO{Lat: lat, Lng: lng},
	})
	if err != nil {
		return err
	}
	return c.conn.Send(ctx, env)
}

func (c *BookingClient) submit(ctx context.Context, event string, bookingID *uuid.UUID, payload any) (Delivery, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Sent, err
	}
	if bookingID != nil {
		c.applyOptimistic(ctx, event, *bookingID)
	}

	c.flushMu.Lock()
	defer c.flushMu.Unlock()

	// anything queued earlier must reach the server first
	if len(c.cache.PendingActions()) == 0 {
		err := c.conn.Send(ctx, realtime.Envelope{Event: event, Data: data})
		if err == nil {
			return Sent, nil
		}
		if !errs.Is(err, ErrTransportUnavailable) {
			return Sent, err
		}
	}

	if _, err := c.cache.EnqueuePending(ctx, event, bookingID, data); err != nil {
		return Queued, err
	}
	c.logger.Debug("action queued until reconnect", slog.String("event", event))
	return Queued, nil
}

func (c *BookingClient) applyOptimistic(ctx context.Context, event string, bookingID uuid.UUID) {
	cur, ok := c.cache.Get(bookingID)
	if !ok {
		return
	}
	status, ok := optimisticStatus(event, c.self.Role, cur.Booking.Status)
	if !ok {
		return
	}
	// UpdatedAt and Version stay at the server's values; the cache reconciles on Version
	next := cur.Booking
	next.Status = status
	if _, err := c.cache.PutOptimistic(ctx, next); err != nil {
		c.logger.Warn("optimistic write failed", slog.String("booking_id", bookingID.String()), slog.Any("error", err))
	}
}

// Resync runs after a reconnect: queued actions go out in order, then every
// booking touched locally is re-read from the server.
func (c *BookingClient) Resync(ctx context.Context) error {
	c.flushMu.Lock()
	touched := map[uuid.UUID]struct{}{}
	for _, a := range c.cache.PendingActions() {
		if err := c.conn.Send(ctx, realtime.Envelope{Event: a.Event, Data: a.Data}); err != nil {
			c.flushMu.Unlock()
			return err
		}
		if err := c.cache.AckPending(ctx, a.ID); err != nil {
			c.flushMu.Unlock()
			return err
		}
		if a.BookingID != nil {
			touched[*a.BookingID] = struct{}{}
		}
	}
	c.flushMu.Unlock()

	for _, e := range c.cache.List(cache.Filter{}) {
		if e.Optimistic || !booking.Status(e.Booking.Status).IsTerminal() {
			touched[e.Booking.ID] = struct{}{}
		}
	}
	for id := range touched {
		if err := c.refetch(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (c *BookingClient) refetch(ctx context.Context, id uuid.UUID) error {
	rm, err := c.fetcher.FetchBooking(ctx, id)
	if err != nil {
		return errs.Wrapf(err, "refetch booking %s", id)
	}
	return c.cache.Overwrite(ctx, *rm)
}

// HandleEnvelope folds one server push into the cache.
func (c *BookingClient) HandleEnvelope(ctx context.Context, env realtime.Envelope) error {
	if c.opts.OnEvent != nil {
		defer c.opts.OnEvent(env)
	}

	if env.Event == eventActionRejected {
		var rej Rejection
		if err := json.Unmarshal(env.Data, &rej); err != nil {
			return errs.Wrap(err, "decode actionRejected")
		}
		if id, err := uuid.Parse(rej.BookingID); err == nil {
			if err := c.refetch(ctx, id); err != nil {
				return err
			}
		}
		if c.opts.OnRejected != nil {
			c.opts.OnRejected(rej)
		}
		return nil
	}

	if !isBookingEvent(env.Event) {
		return nil
	}
	var rm readmodel.BookingRM
	if err := json.Unmarshal(env.Data, &rm); err != nil {
		return errs.Wrapf(err, "decode %s", env.Event)
	}
	if rm.ID == uuid.Nil {
		return nil
	}
	_, err := c.cache.Put(ctx, rm)
	return err
}

func isBookingEvent(event string) bool {
	switch booking.Event(event) {
	case booking.EventNewBookingRequest,
		booking.EventBookingAccepted,
		booking.EventBookingDeclined,
		booking.EventBookingConfirmedByUser,
		booking.EventJobStarted,
		booking.EventProviderCompletedJob,
		booking.EventUserCompletedJob,
		booking.EventJobCompleted,
		booking.EventPaymentSuccess,
		booking.EventReviewSubmitted,
		booking.EventBookingCancelled,
		booking.EventBookingTimedOut:
		return true
	default:
		return false
	}
}
