package client

import (
	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/domain/user"
)

var eventActions = map[string]booking.Action{
	"acceptBooking":  booking.ActionAccept,
	"declineBooking": booking.ActionDecline,
	"confirmBooking": booking.ActionConfirm,
	"startJob":       booking.ActionStart,
	"submitPayment":  booking.ActionPay,
	"submitReview":   booking.ActionReview,
	"skipReview":     booking.ActionSkipReview,
	"cancelBooking":  booking.ActionCancel,
}

var actionTargets = map[booking.Action]booking.Status{
	booking.ActionAccept:     booking.StatusAccepted,
	booking.ActionDecline:    booking.StatusDeclined,
	booking.ActionConfirm:    booking.StatusConfirmed,
	booking.ActionStart:      booking.StatusInProgress,
	booking.ActionPay:        booking.StatusPaid,
	booking.ActionReview:     booking.StatusReviewed,
	booking.ActionSkipReview: booking.StatusReviewed,
	booking.ActionCancel:     booking.StatusCancelled,
}

// optimisticStatus guesses the status the server will commit for event. It
// returns false when the action is not legal from current, in which case the
// local copy is left alone and the server's answer decides.
func optimisticStatus(event string, role user.Role, current string) (string, bool) {
	from, err := booking.ParseStatus(current)
	if err != nil {
		return "", false
	}

	if event == "completeJob" {
		return completionStatus(role, from)
	}

	action, ok := eventActions[event]
	if !ok || !booking.CanApply(action, from) {
		return "", false
	}
	return actionTargets[action].String(), true
}

func completionStatus(role user.Role, from booking.Status) (string, bool) {
	switch role {
	case user.RoleServiceProvider:
		if !booking.CanApply(booking.ActionCompleteByProvider, from) {
			return "", false
		}
		if from == booking.StatusCompletedByUser {
			return booking.StatusCompleted.String(), true
		}
		return booking.StatusCompletedByProvider.String(), true
	case user.RoleCustomer:
		if !booking.CanApply(booking.ActionCompleteByUser, from) {
			return "", false
		}
		if from == booking.StatusCompletedByProvider {
			return booking.StatusCompleted.String(), true
		}
		return booking.StatusCompletedByUser.String(), true
	default:
		return "", false
	}
}
