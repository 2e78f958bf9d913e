//go:build unit || e2e

package builder

import (
	"fmt"
	"time"

	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/domain/user"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	CustomerID    uuid.UUID
	ProviderID    *uuid.UUID
	ServiceType   string
	Description   string
	CustomerLat   float64
	CustomerLng   float64
	ProviderLat   float64
	ProviderLng   float64
	DurationHours int
	Materials     []booking.Material
	Additional    booking.Money
	RequestedAt   time.Time
	Calc          booking.PriceCalculator
}

func NewBookingBuilder() *BookingBuilder {
	providerID := uuid.New()
	return &BookingBuilder{
		CustomerID:    uuid.New(),
		ProviderID:    &providerID,
		ServiceType:   "plumbing",
		Description:   "kitchen sink leaking",
		CustomerLat:   27.7172,
		CustomerLng:   85.3240,
		ProviderLat:   27.6710,
		ProviderLng:   85.4298,
		DurationHours: 2,
		RequestedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Calc:          booking.NewDefaultPriceCalculator(booking.MustMoneyFromPaisa(20000)),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Open leaves the request unassigned so any provider may claim it.
func (b *BookingBuilder) Open() *BookingBuilder {
	b.ProviderID = nil
	return b
}

func (b *BookingBuilder) Customer() user.Actor {
	return user.Actor{ID: b.CustomerID, Role: user.RoleCustomer}
}

func (b *BookingBuilder) Provider() user.Actor {
	if b.ProviderID == nil {
		return user.Actor{}
	}
	return user.Actor{ID: *b.ProviderID, Role: user.RoleServiceProvider}
}

// BuildDomain drives a fresh booking through the real transitions up to status.
// Each step advances the clock by a minute.
func (b *BookingBuilder) BuildDomain(status booking.Status) (*booking.Booking, error) {
	now := b.RequestedAt
	customerLoc, err := booking.NewLocation(b.CustomerLat, b.CustomerLng)
	if err != nil {
		return nil, err
	}
	bk, _, err := booking.NewBooking(b.Customer(), booking.RequestInput{
		CustomerID:       b.CustomerID,
		ProviderID:       b.ProviderID,
		ServiceType:      b.ServiceType,
		Description:      b.Description,
		CustomerLocation: customerLoc,
	}, now)
	if err != nil {
		return nil, err
	}

	path, ok := pathTo[status]
	if !ok {
		return nil, fmt.Errorf("builder: no path to %s", status)
	}

	providerID := uuid.New()
	if b.ProviderID != nil {
		providerID = *b.ProviderID
	}
	provider := user.Actor{ID: providerID, Role: user.RoleServiceProvider}
	customer := b.Customer()

	for _, step := range path {
		now = now.Add(time.Minute)
		switch step {
		case booking.ActionAccept:
			loc, lerr := booking.NewLocation(b.ProviderLat, b.ProviderLng)
			if lerr != nil {
				return nil, lerr
			}
			_, err = bk.Accept(provider, loc, 15, now)
		case booking.ActionDecline:
			_, err = bk.Decline(provider, "not available", now)
		case booking.ActionConfirm:
			_, err = bk.Confirm(customer, now)
		case booking.ActionStart:
			_, err = bk.Start(provider, now)
		case booking.ActionCompleteByProvider:
			_, err = bk.CompleteByProvider(provider, booking.CompletionInput{
				DurationHours:    b.DurationHours,
				Materials:        b.Materials,
				AdditionalCharge: b.Additional,
			}, b.Calc, now)
		case booking.ActionCompleteByUser:
			_, err = bk.CompleteByUser(customer, now)
		case booking.ActionPay:
			_, err = bk.Pay(customer, booking.PaymentCash, now)
		case booking.ActionReview:
			_, err = bk.SubmitReview(customer, 5, "great work", now)
		case booking.ActionCancel:
			_, err = bk.Cancel(customer, "changed plans", now)
		case booking.ActionExpire:
			_, err = bk.Expire(user.SystemActor(), now)
		}
		if err != nil {
			return nil, fmt.Errorf("builder: %s: %w", step, err)
		}
	}
	return bk, nil
}

func (b *BookingBuilder) MustBuildDomain(status booking.Status) *booking.Booking {
	bk, err := b.BuildDomain(status)
	if err != nil {
		panic(err)
	}
	return bk
}

var pathTo = map[booking.Status][]booking.Action{
	booking.StatusPending:             nil,
	booking.StatusAccepted:            {booking.ActionAccept},
	booking.StatusDeclined:            {booking.ActionDecline},
	booking.StatusConfirmed:           {booking.ActionAccept, booking.ActionConfirm},
	booking.StatusInProgress:          {booking.ActionAccept, booking.ActionConfirm, booking.ActionStart},
	booking.StatusCompletedByProvider: {booking.ActionAccept, booking.ActionConfirm, booking.ActionStart, booking.ActionCompleteByProvider},
	booking.StatusCompletedByUser:     {booking.ActionAccept, booking.ActionConfirm, booking.ActionStart, booking.ActionCompleteByUser},
	booking.StatusCompleted:           {booking.ActionAccept, booking.ActionConfirm, booking.ActionStart, booking.ActionCompleteByProvider, booking.ActionCompleteByUser},
	booking.StatusPaid:                {booking.ActionAccept, booking.ActionConfirm, booking.ActionStart, booking.ActionCompleteByProvider, booking.ActionCompleteByUser, booking.ActionPay},
	booking.StatusReviewed:            {booking.ActionAccept, booking.ActionConfirm, booking.ActionStart, booking.ActionCompleteByProvider, booking.ActionCompleteByUser, booking.ActionPay, booking.ActionReview},
	booking.StatusCancelled:           {booking.ActionCancel},
	booking.StatusTimedOut:            {booking.ActionExpire},
}
