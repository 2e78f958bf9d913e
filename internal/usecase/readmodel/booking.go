package readmodel

import (
	"time"

	"ghar-ko-sathi/internal/domain/booking"

	"github.com/google/uuid"
)

type LocationRM struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type MaterialRM struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// ChargesRM amounts are rupees.
type ChargesRM struct {
	HourlyRate       float64      `json:"hourlyRate"`
	DurationHours    int          `json:"duration"`
	ServiceCharge    float64      `json:"serviceCharge"`
	Materials        []MaterialRM `json:"materials"`
	MaterialCost     float64      `json:"materialCost"`
	AdditionalCharge float64      `json:"additionalCharge"`
	TotalCharge      float64      `json:"totalCharge"`
}

type ReviewRM struct {
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type TransitionRM struct {
	Action     string    `json:"action"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to"`
	Event      string    `json:"event"`
	ActorID    uuid.UUID `json:"actorId"`
	ActorRole  string    `json:"actorRole"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type BookingRM struct {
	ID               uuid.UUID      `json:"bookingId"`
	CustomerID       uuid.UUID      `json:"customerId"`
	ProviderID       *uuid.UUID     `json:"providerId,omitempty"`
	Status           string         `json:"status"`
	ServiceType      string         `json:"serviceType"`
	Description      string         `json:"description,omitempty"`
	ScheduledAt      time.Time      `json:"scheduledAt"`
	CustomerLocation LocationRM     `json:"customerLocation"`
	ProviderLocation *LocationRM    `json:"providerLocation,omitempty"`
	ETAMinutes       *int           `json:"eta,omitempty"`
	Charges          *ChargesRM     `json:"charges,omitempty"`
	PaymentMethod    string         `json:"paymentMethod,omitempty"`
	Review           *ReviewRM      `json:"review,omitempty"`
	ReviewSkipped    bool           `json:"reviewSkipped,omitempty"`
	DeclineReason    string         `json:"declineReason,omitempty"`
	CancelReason     string         `json:"cancelReason,omitempty"`
	CancelledBy      string         `json:"cancelledBy,omitempty"`
	RequestedAt      time.Time      `json:"requestedAt"`
	StartedAt        *time.Time     `json:"startedAt,omitempty"`
	CompletedAt      *time.Time     `json:"completedAt,omitempty"`
	PaidAt           *time.Time     `json:"paidAt,omitempty"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	Version          int64          `json:"version"`
	History          []TransitionRM `json:"history,omitempty"`
}

type BookingListItemRM struct {
	ID          uuid.UUID  `json:"bookingId"`
	CustomerID  uuid.UUID  `json:"customerId"`
	ProviderID  *uuid.UUID `json:"providerId,omitempty"`
	Status      string     `json:"status"`
	ServiceType string     `json:"serviceType"`
	ScheduledAt time.Time  `json:"scheduledAt"`
	TotalCharge *float64   `json:"totalCharge,omitempty"`
	RequestedAt time.Time  `json:"requestedAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type ProviderLocationRM struct {
	BookingID  uuid.UUID  `json:"bookingId"`
	ProviderID uuid.UUID  `json:"providerId"`
	Location   LocationRM `json:"location"`
	ETAMinutes *int       `json:"eta,omitempty"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func FromBooking(b *booking.Booking) BookingRM {
	s := b.State()

	rm := BookingRM{
		ID:               s.ID,
		CustomerID:       s.CustomerID,
		ProviderID:       s.ProviderID,
		Status:           s.Status.String(),
		ServiceType:      s.ServiceType.String(),
		Description:      s.Description.String(),
		ScheduledAt:      s.ScheduledAt,
		CustomerLocation: fromLocation(s.CustomerLocation),
		ETAMinutes:       s.ETAMinutes,
		PaymentMethod:    s.PaymentMethod.String(),
		ReviewSkipped:    s.ReviewSkipped,
		DeclineReason:    s.DeclineReason,
		CancelReason:     s.CancelReason,
		CancelledBy:      s.CancelledBy.String(),
		RequestedAt:      s.RequestedAt,
		StartedAt:        s.StartedAt,
		CompletedAt:      s.CompletedAt,
		PaidAt:           s.PaidAt,
		UpdatedAt:        s.UpdatedAt,
		Version:          s.Version,
	}
	if s.ProviderLocation != nil {
		loc := fromLocation(*s.ProviderLocation)
		rm.ProviderLocation = &loc
	}
	if s.Charges != nil {
		c := FromCharges(*s.Charges)
		rm.Charges = &c
	}
	if s.Review != nil {
		rm.Review = &ReviewRM{
			Rating:      s.Review.Rating().Value(),
			Comment:     s.Review.Comment().String(),
			SubmittedAt: s.Review.SubmittedAt(),
		}
	}
	for _, t := range s.History {
		rm.History = append(rm.History, FromTransition(t))
	}
	return rm
}

func ToListItem(b *booking.Booking) BookingListItemRM {
	item := BookingListItemRM{
		ID:          b.ID(),
		CustomerID:  b.CustomerID(),
		ProviderID:  b.ProviderID(),
		Status:      b.Status().String(),
		ServiceType: b.ServiceType().String(),
		ScheduledAt: b.ScheduledAt(),
		RequestedAt: b.RequestedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
	if c := b.Charges(); c != nil {
		total := c.TotalCharge().Rupees()
		item.TotalCharge = &total
	}
	return item
}

func FromCharges(c booking.Charges) ChargesRM {
	rm := ChargesRM{
		HourlyRate:       c.HourlyRate().Rupees(),
		DurationHours:    c.DurationHours(),
		ServiceCharge:    c.ServiceCharge().Rupees(),
		Materials:        []MaterialRM{},
		MaterialCost:     c.MaterialCost().Rupees(),
		AdditionalCharge: c.AdditionalCharge().Rupees(),
		TotalCharge:      c.TotalCharge().Rupees(),
	}
	for _, m := range c.Materials() {
		rm.Materials = append(rm.Materials, MaterialRM{Name: m.Name(), Cost: m.Cost().Rupees()})
	}
	return rm
}

func FromTransition(t booking.Transition) TransitionRM {
	return TransitionRM{
		Action:     t.Action.String(),
		From:       t.From.String(),
		To:         t.To.String(),
		Event:      t.Event.String(),
		ActorID:    t.ActorID,
		ActorRole:  t.ActorRole.String(),
		Reason:     t.Reason,
		OccurredAt: t.OccurredAt,
	}
}

func fromLocation(l booking.Location) LocationRM {
	return LocationRM{Lat: l.Lat(), Lng: l.Lng()}
}
