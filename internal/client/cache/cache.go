package cache

import (
	"cmp"
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"ghar-ko-sathi/internal/pkg/clock"
	"ghar-ko-sathi/internal/pkg/errs"
	"ghar-ko-sathi/internal/usecase/readmodel"

	"github.com/google/uuid"
)

var ErrNotHydrated = errs.New("cache used before hydration")

// Entry is one cached booking. Optimistic entries were written locally ahead
// of any server acknowledgement.
type Entry struct {
	Booking    readmodel.BookingRM
	Optimistic bool
}

// PendingAction is an outbound event that could not be sent and waits for
// the next reconnect.
type PendingAction struct {
	ID        uuid.UUID
	Seq       int64
	Event     string
	BookingID *uuid.UUID
	Data      json.RawMessage
	QueuedAt  time.Time
}

type DurableStore interface {
	LoadEntries(ctx context.Context) ([]Entry, error)
	LoadPending(ctx context.Context) ([]PendingAction, error)
	SaveEntry(ctx context.Context, e Entry) error
	SavePending(ctx context.Context, a PendingAction) error
	DeletePending(ctx context.Context, id uuid.UUID) error
}

// Filter selects cached bookings. Zero fields match everything.
type Filter struct {
	CustomerID *uuid.UUID
	ProviderID *uuid.UUID
	Statuses   []string
}

func (f Filter) match(b readmodel.BookingRM) bool {
	if f.CustomerID != nil && b.CustomerID != *f.CustomerID {
		return false
	}
	if f.ProviderID != nil && (b.ProviderID == nil || *b.ProviderID != *f.ProviderID) {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, b.Status) {
		return false
	}
	return true
}

// Cache mirrors booking state in memory and writes through to a DurableStore.
type Cache struct {
	store DurableStore
	clock clock.Clock

	mu       sync.RWMutex
	hydrated bool
	entries  map[uuid.UUID]Entry
	pending  []PendingAction
	seq      int64
}

func New(store DurableStore, clk clock.Clock) *Cache {
	return &Cache{
		store:   store,
		clock:   clk,
		entries: make(map[uuid.UUID]Entry),
	}
}

// Hydrate loads everything the durable store holds. Call it before the first
// network round trip so the UI renders from the last known state.
func (c *Cache) Hydrate(ctx context.Context) error {
	entries, err := c.store.LoadEntries(ctx)
	if err != nil {
		return errs.Wrap(err, "load cached bookings")
	}
	pending, err := c.store.LoadPending(ctx)
	if err != nil {
		return errs.Wrap(err, "load pending actions")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range entries {
		if cur, ok := c.entries[e.Booking.ID]; ok && !supersedes(e, cur) {
			continue
		}
		c.entries[e.Booking.ID] = e
	}
	slices.SortFunc(pending, func(a, b PendingAction) int { return cmp.Compare(a.Seq, b.Seq) })
	c.pending = pending
	for _, a := range pending {
		c.seq = max(c.seq, a.Seq)
	}
	c.hydrated = true
	return nil
}

// supersedes reports whether next replaces cur. An optimistic entry keeps the
// UpdatedAt and Version of the server copy it was derived from, so the server
// clock is the only clock ever compared:
//   - authoritative over authoritative: newer UpdatedAt wins, then higher Version.
//   - authoritative over optimistic: any Version past the optimistic base wins.
//   - optimistic over anything: applies unless cur is already past its base.
func supersedes(next, cur Entry) bool {
	switch {
	case next.Optimistic:
		return next.Booking.Version >= cur.Booking.Version
	case cur.Optimistic:
		return next.Booking.Version > cur.Booking.Version
	case next.Booking.UpdatedAt.After(cur.Booking.UpdatedAt):
		return true
	case next.Booking.UpdatedAt.Before(cur.Booking.UpdatedAt):
		return false
	default:
		return next.Booking.Version > cur.Booking.Version
	}
}

// Put merges an authoritative snapshot. It reports whether the snapshot was applied.
func (c *Cache) Put(ctx context.Context, b readmodel.BookingRM) (bool, error) {
	return c.merge(ctx, Entry{Booking: b})
}

// PutOptimistic records a local guess at the booking's next state. b must keep
// the UpdatedAt and Version of the snapshot the guess was made from.
func (c *Cache) PutOptimistic(ctx context.Context, b readmodel.BookingRM) (bool, error) {
	return c.merge(ctx, Entry{Booking: b, Optimistic: true})
}

// Overwrite stores an authoritative snapshot unconditionally. Used after a
// rejection, when the local optimistic state is known to be wrong even if
// its timestamp is newer.
func (c *Cache) Overwrite(ctx context.Context, b readmodel.BookingRM) error {
	e := Entry{Booking: b}
	if err := c.store.SaveEntry(ctx, e); err != nil {
		return errs.Wrap(err, "persist booking")
	}
	c.mu.Lock()
	c.entries[b.ID] = e
	c.mu.Unlock()
	return nil
}

func (c *Cache) merge(ctx context.Context, next Entry) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hydrated {
		return false, ErrNotHydrated
	}
	if cur, ok := c.entries[next.Booking.ID]; ok && !supersedes(next, cur) {
		return false, nil
	}
	if err := c.store.SaveEntry(ctx, next); err != nil {
		return false, errs.Wrap(err, "persist booking")
	}
	c.entries[next.Booking.ID] = next
	return true, nil
}

func (c *Cache) Get(id uuid.UUID) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[id]
	return e, ok
}

// List returns matching entries, most recently requested first.
func (c *Cache) List(f Filter) []Entry {
	c.mu.RLock()
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if f.match(e.Booking) {
			out = append(out, e)
		}
	}
	c.mu.RUnlock()

	slices.SortFunc(out, func(a, b Entry) int {
		if d := b.Booking.RequestedAt.Compare(a.Booking.RequestedAt); d != 0 {
			return d
		}
		return slices.Compare(b.Booking.ID[:], a.Booking.ID[:])
	})
	return out
}

// EnqueuePending persists an unsent action; it is never dropped until acknowledged.
func (c *Cache) EnqueuePending(ctx context.Context, event string, bookingID *uuid.UUID, data json.RawMessage) (PendingAction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a := PendingAction{
		ID:        uuid.New(),
		Seq:       c.seq + 1,
		Event:     event,
		BookingID: bookingID,
		Data:      data,
		QueuedAt:  c.clock.Now(),
	}
	if err := c.store.SavePending(ctx, a); err != nil {
		return PendingAction{}, errs.Wrap(err, "persist pending action")
	}
	c.seq = a.Seq
	c.pending = append(c.pending, a)
	return a, nil
}

// PendingActions returns queued actions in the order they were queued.
func (c *Cache) PendingActions() []PendingAction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.pending)
}

func (c *Cache) AckPending(ctx context.Context, id uuid.UUID) error {
	if err := c.store.DeletePending(ctx, id); err != nil {
		return errs.Wrap(err, "delete pending action")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = slices.DeleteFunc(c.pending, func(a PendingAction) bool { return a.ID == id })
	return nil
}
