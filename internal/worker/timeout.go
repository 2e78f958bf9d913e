package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/pkg/clock"
	"ghar-ko-sathi/internal/pkg/errs"
	"ghar-ko-sathi/internal/usecase/readmodel"
	"ghar-ko-sathi/internal/usecase/shared"

	"github.com/google/uuid"
)

// Expirer moves an unanswered pending booking to timed-out.
type Expirer interface {
	ExpireBooking(ctx context.Context, bookingID uuid.UUID) (*readmodel.BookingRM, error)
}

// PendingLister finds pending bookings left over from a previous process.
type PendingLister interface {
	ListPendingRequestedBefore(ctx context.Context, before time.Time) ([]shared.PendingBooking, error)
}

// TimeoutScheduler fires one timer per pending booking. Deadlines scheduled
// before Start are held and armed once an expirer is attached.
type TimeoutScheduler struct {
	clock   clock.Clock
	timeout time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	expirer Expirer
	timers  map[uuid.UUID]*time.Timer
	held    map[uuid.UUID]time.Time
	stopped bool
}

func NewTimeoutScheduler(clk clock.Clock, timeout time.Duration, logger *slog.Logger) *TimeoutScheduler {
	return &TimeoutScheduler{
		clock:   clk,
		timeout: timeout,
		logger:  logger,
		timers:  make(map[uuid.UUID]*time.Timer),
		held:    make(map[uuid.UUID]time.Time),
	}
}

// Start attaches the expirer, arms held deadlines and sweeps pending rows
// that survived a restart.
func (s *TimeoutScheduler) Start(ctx context.Context, expirer Expirer, lister PendingLister) error {
	s.mu.Lock()
	s.expirer = expirer
	held := s.held
	s.held = make(map[uuid.UUID]time.Time)
	s.mu.Unlock()

	for id, at := range held {
		s.Schedule(id, at)
	}

	if lister == nil {
		return nil
	}
	pending, err := lister.ListPendingRequestedBefore(ctx, s.clock.Now())
	if err != nil {
		return errs.Wrap(err, "failed to load pending bookings")
	}
	for _, p := range pending {
		s.Schedule(p.ID, p.RequestedAt.Add(s.timeout))
	}
	s.logger.Info("pending booking timeouts armed", slog.Int("count", len(pending)))
	return nil
}

func (s *TimeoutScheduler) Schedule(bookingID uuid.UUID, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if s.expirer == nil {
		s.held[bookingID] = at
		return
	}
	if t, ok := s.timers[bookingID]; ok {
		t.Stop()
	}

	delay := at.Sub(s.clock.Now())
	if delay < 0 {
		delay = 0
	}
	s.timers[bookingID] = time.AfterFunc(delay, func() { s.fire(bookingID) })
}

func (s *TimeoutScheduler) Cancel(bookingID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.held, bookingID)
	if t, ok := s.timers[bookingID]; ok {
		t.Stop()
		delete(s.timers, bookingID)
	}
}

func (s *TimeoutScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers) + len(s.held)
}

func (s *TimeoutScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *TimeoutScheduler) fire(bookingID uuid.UUID) {
	s.mu.Lock()
	delete(s.timers, bookingID)
	expirer := s.expirer
	stopped := s.stopped
	s.mu.Unlock()

	if stopped || expirer == nil {
		return
	}

	_, err := expirer.ExpireBooking(context.Background(), bookingID)
	if err == nil {
		s.logger.Info("pending booking timed out", slog.String("booking_id", bookingID.String()))
		return
	}

	// the booking moved on before the deadline; nothing to expire
	var te *booking.TransitionError
	if errs.As(err, &te) {
		return
	}
	s.logger.Error("failed to expire booking",
		slog.String("booking_id", bookingID.String()),
		slog.Any("error", err))
}
