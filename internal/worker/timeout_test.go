//go:build unit

package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/pkg/clock"
	"ghar-ko-sathi/internal/usecase/readmodel"
	"ghar-ko-sathi/internal/usecase/shared"
	"ghar-ko-sathi/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpirer struct {
	mu      sync.Mutex
	expired []uuid.UUID
	err     error
	fired   chan uuid.UUID
}

func newFakeExpirer() *fakeExpirer {
	return &fakeExpirer{fired: make(chan uuid.UUID, 16)}
}

func (f *fakeExpirer) ExpireBooking(_ context.Context, id uuid.UUID) (*readmodel.BookingRM, error) {
	f.mu.Lock()
	f.expired = append(f.expired, id)
	err := f.err
	f.mu.Unlock()
	f.fired <- id
	if err != nil {
		return nil, err
	}
	return &readmodel.BookingRM{ID: id, Status: booking.StatusTimedOut.String()}, nil
}

type fakeLister struct {
	pending []shared.PendingBooking
}

func (f fakeLister) ListPendingRequestedBefore(context.Context, time.Time) ([]shared.PendingBooking, error) {
	return f.pending, nil
}

func waitFired(t *testing.T, ch <-chan uuid.UUID) uuid.UUID {
	t.Helper()
	select {
	case id := <-ch:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("timeout never fired")
		return uuid.Nil
	}
}

func TestTimeoutScheduler(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("expires a booking at its deadline", func(t *testing.T) {
		s := worker.NewTimeoutScheduler(clock.NewMockClock(now), 10*time.Minute, discardLogger())
		exp := newFakeExpirer()
		require.NoError(t, s.Start(context.Background(), exp, nil))
		defer s.Stop()

		id := uuid.New()
		s.Schedule(id, now.Add(20*time.Millisecond))
		assert.Equal(t, id, waitFired(t, exp.fired))
	})

	t.Run("cancel stops the timer", func(t *testing.T) {
		s := worker.NewTimeoutScheduler(clock.NewMockClock(now), 10*time.Minute, discardLogger())
		exp := newFakeExpirer()
		require.NoError(t, s.Start(context.Background(), exp, nil))
		defer s.Stop()

		id := uuid.New()
		s.Schedule(id, now.Add(30*time.Millisecond))
		s.Cancel(id)
		assert.Zero(t, s.Pending())

		select {
		case <-exp.fired:
			t.Fatal("cancelled booking was expired")
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("deadlines scheduled before start are held", func(t *testing.T) {
		s := worker.NewTimeoutScheduler(clock.NewMockClock(now), 10*time.Minute, discardLogger())
		id := uuid.New()
		s.Schedule(id, now)
		assert.Equal(t, 1, s.Pending())

		exp := newFakeExpirer()
		require.NoError(t, s.Start(context.Background(), exp, nil))
		defer s.Stop()
		assert.Equal(t, id, waitFired(t, exp.fired))
	})

	t.Run("startup sweep arms overdue pending bookings", func(t *testing.T) {
		s := worker.NewTimeoutScheduler(clock.NewMockClock(now), 10*time.Minute, discardLogger())
		exp := newFakeExpirer()
		overdue := shared.PendingBooking{ID: uuid.New(), RequestedAt: now.Add(-11 * time.Minute)}
		require.NoError(t, s.Start(context.Background(), exp, fakeLister{pending: []shared.PendingBooking{overdue}}))
		defer s.Stop()

		assert.Equal(t, overdue.ID, waitFired(t, exp.fired))
	})

	t.Run("booking that already moved on is ignored", func(t *testing.T) {
		s := worker.NewTimeoutScheduler(clock.NewMockClock(now), 10*time.Minute, discardLogger())
		exp := newFakeExpirer()
		exp.err = &booking.TransitionError{Action: booking.ActionExpire, From: booking.StatusAccepted}
		require.NoError(t, s.Start(context.Background(), exp, nil))
		defer s.Stop()

		s.Schedule(uuid.New(), now)
		waitFired(t, exp.fired)
		assert.Zero(t, s.Pending())
	})
}
