package presence

import (
	"sync"
	"time"

	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/domain/user"
	"ghar-ko-sathi/internal/pkg/clock"
	"ghar-ko-sathi/internal/pkg/errs"
	"ghar-ko-sathi/internal/realtime"

	"github.com/google/uuid"
)

var (
	ErrNotRegistered = errs.New("connection is not registered")
	ErrNotProvider   = errs.New("only provider connections may do this")
)

// Record is the presence of one user. It lives in memory only.
type Record struct {
	UserID            uuid.UUID
	Role              user.Role
	ConnectionID      string
	LastKnownLocation *booking.Location
	LastSeenAt        time.Time
	Available         bool
}

type entry struct {
	record  Record
	session realtime.Session
}

// Registry maps each user to their single active connection.
type Registry struct {
	clock clock.Clock

	mu     sync.RWMutex
	byUser map[uuid.UUID]*entry
	byConn map[string]uuid.UUID
}

func NewRegistry(clk clock.Clock) *Registry {
	return &Registry{
		clock:  clk,
		byUser: make(map[uuid.UUID]*entry),
		byConn: make(map[string]uuid.UUID),
	}
}

// Register binds session to userID, replacing any earlier binding for that user.
// The replaced session is returned detached but still open; the caller owns it.
func (r *Registry) Register(session realtime.Session, userID uuid.UUID, role user.Role, available bool) realtime.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	// a connection re-registering under another identity drops its old binding
	if prevUser, ok := r.byConn[session.ID()]; ok && prevUser != userID {
		delete(r.byUser, prevUser)
	}

	var replaced realtime.Session
	rec := Record{
		UserID:       userID,
		Role:         role,
		ConnectionID: session.ID(),
		LastSeenAt:   r.clock.Now(),
		Available:    available && role == user.RoleServiceProvider,
	}
	if prev, ok := r.byUser[userID]; ok {
		rec.LastKnownLocation = prev.record.LastKnownLocation
		if prev.session.ID() != session.ID() {
			replaced = prev.session
			delete(r.byConn, prev.session.ID())
		}
	}

	r.byUser[userID] = &entry{record: rec, session: session}
	r.byConn[session.ID()] = userID
	return replaced
}

// Unregister removes the binding owned by connID. A connection that was
// already replaced by a newer one leaves the newer binding untouched.
func (r *Registry) Unregister(connID string) (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.byConn[connID]
	if !ok {
		return Record{}, false
	}
	delete(r.byConn, connID)

	e, ok := r.byUser[userID]
	if !ok || e.session.ID() != connID {
		return Record{}, false
	}
	delete(r.byUser, userID)
	return e.record, true
}

func (r *Registry) Lookup(userID uuid.UUID) (realtime.Session, Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byUser[userID]
	if !ok {
		return nil, Record{}, false
	}
	return e.session, e.record, true
}

func (r *Registry) Record(userID uuid.UUID) (Record, bool) {
	_, rec, ok := r.Lookup(userID)
	return rec, ok
}

func (r *Registry) ByConnection(connID string) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.byConn[connID]
	if !ok {
		return Record{}, false
	}
	return r.byUser[userID].record, true
}

// AvailableProviders returns the sessions of providers who accept new requests.
func (r *Registry) AvailableProviders() []realtime.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]realtime.Session, 0)
	for _, e := range r.byUser {
		if e.record.Role == user.RoleServiceProvider && e.record.Available {
			out = append(out, e.session)
		}
	}
	return out
}

func (r *Registry) SetAvailable(connID string, available bool) error {
	return r.update(connID, func(rec *Record) error {
		if rec.Role != user.RoleServiceProvider {
			return ErrNotProvider
		}
		rec.Available = available
		return nil
	})
}

func (r *Registry) Touch(connID string) {
	_ = r.update(connID, func(*Record) error { return nil })
}

func (r *Registry) SetLocation(connID string, loc booking.Location) error {
	return r.update(connID, func(rec *Record) error {
		l := loc
		rec.LastKnownLocation = &l
		return nil
	})
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser)
}

func (r *Registry) update(connID string, fn func(*Record) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.byConn[connID]
	if !ok {
		return ErrNotRegistered
	}
	e := r.byUser[userID]
	if err := fn(&e.record); err != nil {
		return err
	}
	e.record.LastSeenAt = r.clock.Now()
	return nil
}
