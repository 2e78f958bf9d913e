package booking

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrNotAuthorizedForAction = errors.New("not authorized for action")
	ErrInconsistentTotal      = errors.New("inconsistent total")

	ErrInvalidStatus        = errors.New("invalid booking status")
	ErrInvalidDuration      = errors.New("duration must be a whole number of hours between 1 and 720")
	ErrInvalidMaterial      = errors.New("material needs a name and a non-negative cost")
	ErrInvalidAmount        = errors.New("amount must be a finite non-negative number no larger than Rs 10000000")
	ErrInvalidLocation      = errors.New("invalid location")
	ErrInvalidServiceType   = errors.New("service type is required")
	ErrDescriptionTooLong   = errors.New("problem description exceeds maximum length")
	ErrInvalidParties       = errors.New("customer and provider must be distinct users")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidETA           = errors.New("eta must be between 0 and 1440 minutes")
)

// TransitionError names the rejected action and the state it was attempted from.
type TransitionError struct {
	Action Action
	From   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition: cannot %s a booking that is %s", e.Action, e.From)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// AuthorizationError names the action and the role that attempted it.
type AuthorizationError struct {
	Action Action
	Reason string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("not authorized to %s: %s", e.Action, e.Reason)
}

func (e *AuthorizationError) Is(target error) bool {
	return target == ErrNotAuthorizedForAction
}

// TotalMismatchError is returned when an expected total does not match the computed one.
type TotalMismatchError struct {
	Expected Money
	Computed Money
}

func (e *TotalMismatchError) Error() string {
	return fmt.Sprintf("inconsistent total: expected %s, computed %s", e.Expected, e.Computed)
}

func (e *TotalMismatchError) Is(target error) bool {
	return target == ErrInconsistentTotal
}
