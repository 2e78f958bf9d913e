package booking

import (
	"fmt"
	"time"

	"ghar-ko-sathi/internal/domain/review"
	"ghar-ko-sathi/internal/domain/user"

	"github.com/google/uuid"
)

// bookingNamespace scopes name-based booking IDs.
var bookingNamespace = uuid.MustParse("6f1d3c2a-8a57-4f0e-9d0b-5b8f2f6f4e11")

// NewBookingID derives the booking identifier from its parties and request time.
// Identical inputs yield the same ID, so a resubmitted request collides instead of duplicating.
func NewBookingID(customerID uuid.UUID, providerID *uuid.UUID, requestedAt time.Time) uuid.UUID {
	provider := "open"
	if providerID != nil {
		provider = providerID.String()
	}
	name := fmt.Sprintf("%s:%s:%d", customerID, provider, requestedAt.UnixNano())
	return uuid.NewSHA1(bookingNamespace, []byte(name))
}

// Transition is one committed state change, kept for audit.
type Transition struct {
	Action     Action
	From       Status
	To         Status
	Event      Event
	ActorID    uuid.UUID
	ActorRole  user.Role
	Reason     string
	OccurredAt time.Time
}

type RequestInput struct {
	CustomerID       uuid.UUID
	ProviderID       *uuid.UUID
	ServiceType      string
	Description      string
	ScheduledAt      *time.Time
	CustomerLocation Location
}

type Booking struct {
	id               uuid.UUID
	customerID       uuid.UUID
	providerID       *uuid.UUID
	status           Status
	serviceType      ServiceType
	description      Description
	scheduledAt      time.Time
	customerLocation Location
	providerLocation *Location
	etaMinutes       *int
	charges          *Charges
	paymentMethod    PaymentMethod
	review           *review.Review
	reviewSkipped    bool
	declineReason    string
	cancelReason     string
	cancelledBy      user.Role
	requestedAt      time.Time
	startedAt        *time.Time
	completedAt      *time.Time
	paidAt           *time.Time
	updatedAt        time.Time
	version          int64
	history          []Transition
}

// NewBooking is the customer's "request booking" action; the booking starts pending.
func NewBooking(actor user.Actor, in RequestInput, now time.Time) (*Booking, Transition, error) {
	if !actor.IsCustomer() || actor.ID != in.CustomerID {
		return nil, Transition{}, &AuthorizationError{Action: ActionRequest, Reason: "only the customer can request a booking for themselves"}
	}
	if in.ProviderID != nil && *in.ProviderID == in.CustomerID {
		return nil, Transition{}, ErrInvalidParties
	}

	serviceType, err := NewServiceType(in.ServiceType)
	if err != nil {
		return nil, Transition{}, err
	}
	description, err := NewDescription(in.Description)
	if err != nil {
		return nil, Transition{}, err
	}

	scheduledAt := now
	if in.ScheduledAt != nil && !in.ScheduledAt.IsZero() {
		scheduledAt = *in.ScheduledAt
	}

	var providerID *uuid.UUID
	if in.ProviderID != nil {
		id := *in.ProviderID
		providerID = &id
	}

	b := &Booking{
		id:               NewBookingID(in.CustomerID, providerID, now),
		customerID:       in.CustomerID,
		providerID:       providerID,
		status:           StatusPending,
		serviceType:      serviceType,
		description:      description,
		scheduledAt:      scheduledAt,
		customerLocation: in.CustomerLocation,
		requestedAt:      now,
		updatedAt:        now,
		version:          1,
	}

	t := Transition{
		Action:     ActionRequest,
		From:       "",
		To:         StatusPending,
		Event:      EventNewBookingRequest,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		OccurredAt: now,
	}
	b.history = append(b.history, t)

	return b, t, nil
}

// BookingState carries every persisted field; used to rebuild an aggregate from storage.
type BookingState struct {
	ID               uuid.UUID
	CustomerID       uuid.UUID
	ProviderID       *uuid.UUID
	Status           Status
	ServiceType      ServiceType
	Description      Description
	ScheduledAt      time.Time
	CustomerLocation Location
	ProviderLocation *Location
	ETAMinutes       *int
	Charges          *Charges
	PaymentMethod    PaymentMethod
	Review           *review.Review
	ReviewSkipped    bool
	DeclineReason    string
	CancelReason     string
	CancelledBy      user.Role
	RequestedAt      time.Time
	StartedAt        *time.Time
	CompletedAt      *time.Time
	PaidAt           *time.Time
	UpdatedAt        time.Time
	Version          int64
	History          []Transition
}

func ReconstructBooking(s BookingState) (*Booking, error) {
	if !s.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if s.Charges != nil {
		if err := s.Charges.Validate(); err != nil {
			return nil, err
		}
	}
	return &Booking{
		id:               s.ID,
		customerID:       s.CustomerID,
		providerID:       s.ProviderID,
		status:           s.Status,
		serviceType:      s.ServiceType,
		description:      s.Description,
		scheduledAt:      s.ScheduledAt,
		customerLocation: s.CustomerLocation,
		providerLocation: s.ProviderLocation,
		etaMinutes:       s.ETAMinutes,
		charges:          s.Charges,
		paymentMethod:    s.PaymentMethod,
		review:           s.Review,
		reviewSkipped:    s.ReviewSkipped,
		declineReason:    s.DeclineReason,
		cancelReason:     s.CancelReason,
		cancelledBy:      s.CancelledBy,
		requestedAt:      s.RequestedAt,
		startedAt:        s.StartedAt,
		completedAt:      s.CompletedAt,
		paidAt:           s.PaidAt,
		updatedAt:        s.UpdatedAt,
		version:          s.Version,
		history:          s.History,
	}, nil
}

// State returns a copy of every field, the inverse of ReconstructBooking.
func (b *Booking) State() BookingState {
	history := make([]Transition, len(b.history))
	copy(history, b.history)
	return BookingState{
		ID:               b.id,
		CustomerID:       b.customerID,
		ProviderID:       b.providerID,
		Status:           b.status,
		ServiceType:      b.serviceType,
		Description:      b.description,
		ScheduledAt:      b.scheduledAt,
		CustomerLocation: b.customerLocation,
		ProviderLocation: b.providerLocation,
		ETAMinutes:       b.etaMinutes,
		Charges:          b.charges,
		PaymentMethod:    b.paymentMethod,
		Review:           b.review,
		ReviewSkipped:    b.reviewSkipped,
		DeclineReason:    b.declineReason,
		CancelReason:     b.cancelReason,
		CancelledBy:      b.cancelledBy,
		RequestedAt:      b.requestedAt,
		StartedAt:        b.startedAt,
		CompletedAt:      b.completedAt,
		PaidAt:           b.paidAt,
		UpdatedAt:        b.updatedAt,
		Version:          b.version,
		History:          history,
	}
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) CustomerID() uuid.UUID        { return b.customerID }
func (b *Booking) ProviderID() *uuid.UUID       { return b.providerID }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) ServiceType() ServiceType     { return b.serviceType }
func (b *Booking) Description() Description     { return b.description }
func (b *Booking) ScheduledAt() time.Time       { return b.scheduledAt }
func (b *Booking) CustomerLocation() Location   { return b.customerLocation }
func (b *Booking) ProviderLocation() *Location  { return b.providerLocation }
func (b *Booking) ETAMinutes() *int             { return b.etaMinutes }
func (b *Booking) Charges() *Charges            { return b.charges }
func (b *Booking) PaymentMethod() PaymentMethod { return b.paymentMethod }
func (b *Booking) Review() *review.Review       { return b.review }
func (b *Booking) ReviewSkipped() bool          { return b.reviewSkipped }
func (b *Booking) DeclineReason() string        { return b.declineReason }
func (b *Booking) CancelReason() string         { return b.cancelReason }
func (b *Booking) CancelledBy() user.Role       { return b.cancelledBy }
func (b *Booking) RequestedAt() time.Time       { return b.requestedAt }
func (b *Booking) StartedAt() *time.Time        { return b.startedAt }
func (b *Booking) CompletedAt() *time.Time      { return b.completedAt }
func (b *Booking) PaidAt() *time.Time           { return b.paidAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
func (b *Booking) Version() int64               { return b.version }

func (b *Booking) History() []Transition {
	out := make([]Transition, len(b.history))
	copy(out, b.history)
	return out
}

func (b *Booking) IsOpen() bool {
	return b.providerID == nil
}

func (b *Booking) IsParty(userID uuid.UUID) bool {
	if userID == b.customerID {
		return true
	}
	return b.providerID != nil && *b.providerID == userID
}
