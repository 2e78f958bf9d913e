package booking

type Status string

const (
	StatusPending             Status = "pending"
	StatusAccepted            Status = "accepted"
	StatusDeclined            Status = "declined"
	StatusConfirmed           Status = "confirmed"
	StatusInProgress          Status = "in-progress"
	StatusCompletedByProvider Status = "completed-by-provider"
	StatusCompletedByUser     Status = "completed-by-user"
	StatusCompleted           Status = "completed"
	StatusPaid                Status = "paid"
	StatusReviewed            Status = "reviewed"
	StatusCancelled           Status = "cancelled"
	StatusTimedOut            Status = "timed-out"
)

var allStatuses = []Status{
	StatusPending,
	StatusAccepted,
	StatusDeclined,
	StatusConfirmed,
	StatusInProgress,
	StatusCompletedByProvider,
	StatusCompletedByUser,
	StatusCompleted,
	StatusPaid,
	StatusReviewed,
	StatusCancelled,
	StatusTimedOut,
}

func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	for _, v := range allStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDeclined, StatusCancelled, StatusReviewed, StatusTimedOut:
		return true
	default:
		return false
	}
}

// IsActive is true while the provider is bound to the job and location sharing matters.
func (s Status) IsActive() bool {
	switch s {
	case StatusAccepted, StatusConfirmed, StatusInProgress:
		return true
	default:
		return false
	}
}

type Action string

const (
	ActionRequest            Action = "request"
	ActionAccept             Action = "accept"
	ActionDecline            Action = "decline"
	ActionConfirm            Action = "confirm"
	ActionStart              Action = "start"
	ActionCompleteByProvider Action = "completeByProvider"
	ActionCompleteByUser     Action = "completeByUser"
	ActionPay                Action = "pay"
	ActionReview             Action = "review"
	ActionSkipReview         Action = "skipReview"
	ActionCancel             Action = "cancel"
	ActionExpire             Action = "expire"
)

func (a Action) String() string {
	return string(a)
}

// Event names pushed to sessions. They mirror the transport vocabulary the
// web and mobile clients already listen for.
type Event string

const (
	EventNewBookingRequest      Event = "newBookingRequest"
	EventBookingAccepted        Event = "bookingAccepted"
	EventBookingDeclined        Event = "bookingDeclined"
	EventBookingConfirmedByUser Event = "bookingConfirmedByUser"
	EventJobStarted             Event = "jobStarted"
	EventProviderCompletedJob   Event = "providerCompletedJob"
	EventUserCompletedJob       Event = "userCompletedJob"
	EventJobCompleted           Event = "jobCompleted"
	EventPaymentSuccess         Event = "paymentSuccess"
	EventReviewSubmitted        Event = "reviewSubmitted"
	EventBookingCancelled       Event = "bookingCancelled"
	EventBookingTimedOut        Event = "bookingTimedOut"
	EventLocationUpdate         Event = "location-update"
)

func (e Event) String() string {
	return string(e)
}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentEsewa  PaymentMethod = "esewa"
	PaymentKhalti PaymentMethod = "khalti"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case PaymentCash, PaymentEsewa, PaymentKhalti:
		return m, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

func (m PaymentMethod) String() string {
	return string(m)
}
