package booking

import (
	"time"

	"ghar-ko-sathi/internal/domain/review"
	"ghar-ko-sathi/internal/domain/user"
)

type party int

const (
	partyCustomer party = iota
	partyProvider
	partyEither
	partySystem
)

type rule struct {
	from []Status
	by   party
}

// rules is the single authority on which actions are legal from which states.
var rules = map[Action]rule{
	ActionAccept:             {from: []Status{StatusPending}, by: partyProvider},
	ActionDecline:            {from: []Status{StatusPending}, by: partyProvider},
	ActionConfirm:            {from: []Status{StatusAccepted}, by: partyCustomer},
	ActionStart:              {from: []Status{StatusConfirmed}, by: partyProvider},
	ActionCompleteByProvider: {from: []Status{StatusInProgress, StatusCompletedByUser}, by: partyProvider},
	ActionCompleteByUser:     {from: []Status{StatusInProgress, StatusCompletedByProvider}, by: partyCustomer},
	ActionPay:                {from: []Status{StatusCompleted}, by: partyCustomer},
	ActionReview:             {from: []Status{StatusPaid}, by: partyCustomer},
	ActionSkipReview:         {from: []Status{StatusPaid}, by: partyCustomer},
	ActionCancel:             {from: []Status{StatusPending, StatusAccepted, StatusConfirmed, StatusInProgress}, by: partyEither},
	ActionExpire:             {from: []Status{StatusPending}, by: partySystem},
}

// CanApply reports whether action is legal from status, ignoring who performs it.
func CanApply(action Action, from Status) bool {
	r, ok := rules[action]
	if !ok {
		return false
	}
	for _, s := range r.from {
		if s == from {
			return true
		}
	}
	return false
}

// TransitionActions lists every action driven through the state machine after creation.
func TransitionActions() []Action {
	return []Action{
		ActionAccept, ActionDecline, ActionConfirm, ActionStart,
		ActionCompleteByProvider, ActionCompleteByUser, ActionPay,
		ActionReview, ActionSkipReview, ActionCancel, ActionExpire,
	}
}

func (b *Booking) authorize(action Action, actor user.Actor) error {
	r, ok := rules[action]
	if !ok {
		return &TransitionError{Action: action, From: b.status}
	}

	switch r.by {
	case partySystem:
		if !actor.IsSystem() {
			return &AuthorizationError{Action: action, Reason: "reserved for the system"}
		}
	case partyCustomer:
		if !actor.IsCustomer() || actor.ID != b.customerID {
			return &AuthorizationError{Action: action, Reason: "only the booking's customer may do this"}
		}
	case partyProvider:
		if !actor.IsProvider() {
			return &AuthorizationError{Action: action, Reason: "only a service provider may do this"}
		}
		if b.providerID == nil {
			// an open request can be claimed by any provider, nothing else
			if action != ActionAccept {
				return &AuthorizationError{Action: action, Reason: "booking has no assigned provider"}
			}
			return nil
		}
		if *b.providerID != actor.ID {
			return &AuthorizationError{Action: action, Reason: "only the assigned provider may do this"}
		}
	case partyEither:
		switch {
		case actor.IsAdmin():
		case actor.IsCustomer() && actor.ID == b.customerID:
		case actor.IsProvider() && b.providerID != nil && *b.providerID == actor.ID:
		default:
			return &AuthorizationError{Action: action, Reason: "only a party to the booking may do this"}
		}
	}
	return nil
}

// check runs authorization then legality; nothing is mutated on failure.
func (b *Booking) check(action Action, actor user.Actor) error {
	if err := b.authorize(action, actor); err != nil {
		return err
	}
	if !CanApply(action, b.status) {
		return &TransitionError{Action: action, From: b.status}
	}
	return nil
}

func (b *Booking) commit(action Action, to Status, event Event, actor user.Actor, reason string, now time.Time) Transition {
	t := Transition{
		Action:     action,
		From:       b.status,
		To:         to,
		Event:      event,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Reason:     reason,
		OccurredAt: now,
	}
	b.status = to
	b.updatedAt = now
	b.version++
	b.history = append(b.history, t)
	return t
}

func (b *Booking) Accept(actor user.Actor, providerLocation Location, etaMinutes int, now time.Time) (Transition, error) {
	if err := b.check(ActionAccept, actor); err != nil {
		return Transition{}, err
	}
	if etaMinutes < 0 || etaMinutes > MaxETAMinutes {
		return Transition{}, ErrInvalidETA
	}

	if b.providerID == nil {
		id := actor.ID
		b.providerID = &id
	}
	loc := providerLocation
	b.providerLocation = &loc
	eta := etaMinutes
	b.etaMinutes = &eta

	return b.commit(ActionAccept, StatusAccepted, EventBookingAccepted, actor, "", now), nil
}

func (b *Booking) Decline(actor user.Actor, reason string, now time.Time) (Transition, error) {
	if err := b.check(ActionDecline, actor); err != nil {
		return Transition{}, err
	}
	r := truncateReason(reason)
	b.declineReason = r
	return b.commit(ActionDecline, StatusDeclined, EventBookingDeclined, actor, r, now), nil
}

func (b *Booking) Confirm(actor user.Actor, now time.Time) (Transition, error) {
	if err := b.check(ActionConfirm, actor); err != nil {
		return Transition{}, err
	}
	return b.commit(ActionConfirm, StatusConfirmed, EventBookingConfirmedByUser, actor, "", now), nil
}

// Start records the server clock as the start time; client supplied times are display only.
func (b *Booking) Start(actor user.Actor, now time.Time) (Transition, error) {
	if err := b.check(ActionStart, actor); err != nil {
		return Transition{}, err
	}
	started := now
	b.startedAt = &started
	return b.commit(ActionStart, StatusInProgress, EventJobStarted, actor, "", now), nil
}

type CompletionInput struct {
	DurationHours    int
	Materials        []Material
	AdditionalCharge Money
	// ExpectedTotal is what the provider's screen showed; nil skips the comparison.
	ExpectedTotal *Money
}

func (b *Booking) CompleteByProvider(actor user.Actor, in CompletionInput, calc PriceCalculator, now time.Time) (Transition, error) {
	if err := b.check(ActionCompleteByProvider, actor); err != nil {
		return Transition{}, err
	}

	charges, err := ComputeCharges(calc, b.serviceType, in.DurationHours, in.Materials, in.AdditionalCharge)
	if err != nil {
		return Transition{}, err
	}
	if in.ExpectedTotal != nil && *in.ExpectedTotal != charges.TotalCharge() {
		return Transition{}, &TotalMismatchError{Expected: *in.ExpectedTotal, Computed: charges.TotalCharge()}
	}

	b.charges = &charges

	if b.status == StatusCompletedByUser {
		b.markCompleted(now)
		return b.commit(ActionCompleteByProvider, StatusCompleted, EventJobCompleted, actor, "", now), nil
	}
	return b.commit(ActionCompleteByProvider, StatusCompletedByProvider, EventProviderCompletedJob, actor, "", now), nil
}

func (b *Booking) CompleteByUser(actor user.Actor, now time.Time) (Transition, error) {
	if err := b.check(ActionCompleteByUser, actor); err != nil {
		return Transition{}, err
	}
	if b.status == StatusCompletedByProvider {
		b.markCompleted(now)
		return b.commit(ActionCompleteByUser, StatusCompleted, EventJobCompleted, actor, "", now), nil
	}
	return b.commit(ActionCompleteByUser, StatusCompletedByUser, EventUserCompletedJob, actor, "", now), nil
}

func (b *Booking) markCompleted(now time.Time) {
	completed := now
	b.completedAt = &completed
}

func (b *Booking) Pay(actor user.Actor, method PaymentMethod, now time.Time) (Transition, error) {
	if err := b.check(ActionPay, actor); err != nil {
		return Transition{}, err
	}
	if _, err := ParsePaymentMethod(method.String()); err != nil {
		return Transition{}, err
	}
	if b.charges == nil {
		// completed always carries charges; a row without them is corrupt
		return Transition{}, ErrInconsistentTotal
	}
	paid := now
	b.paidAt = &paid
	b.paymentMethod = method
	return b.commit(ActionPay, StatusPaid, EventPaymentSuccess, actor, "", now), nil
}

func (b *Booking) SubmitReview(actor user.Actor, rating int, comment string, now time.Time) (Transition, error) {
	if err := b.check(ActionReview, actor); err != nil {
		return Transition{}, err
	}
	rv, err := review.NewReview(rating, comment, now)
	if err != nil {
		return Transition{}, err
	}
	b.review = &rv
	return b.commit(ActionReview, StatusReviewed, EventReviewSubmitted, actor, "", now), nil
}

// SkipReview closes a paid booking without a rating.
func (b *Booking) SkipReview(actor user.Actor, now time.Time) (Transition, error) {
	if err := b.check(ActionSkipReview, actor); err != nil {
		return Transition{}, err
	}
	b.reviewSkipped = true
	return b.commit(ActionSkipReview, StatusReviewed, EventReviewSubmitted, actor, "", now), nil
}

func (b *Booking) Cancel(actor user.Actor, reason string, now time.Time) (Transition, error) {
	if err := b.check(ActionCancel, actor); err != nil {
		return Transition{}, err
	}
	r := truncateReason(reason)
	b.cancelReason = r
	b.cancelledBy = actor.Role
	return b.commit(ActionCancel, StatusCancelled, EventBookingCancelled, actor, r, now), nil
}

// Expire moves an unanswered request to timed-out.
func (b *Booking) Expire(actor user.Actor, now time.Time) (Transition, error) {
	if err := b.check(ActionExpire, actor); err != nil {
		return Transition{}, err
	}
	return b.commit(ActionExpire, StatusTimedOut, EventBookingTimedOut, actor, "no provider response", now), nil
}
