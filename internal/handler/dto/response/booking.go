package response

import (
	"time"

	"ghar-ko-sathi/internal/usecase/queries"
	"ghar-ko-sathi/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type MaterialResponse struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

type ChargesResponse struct {
	HourlyRate       float64            `json:"hourlyRate"`
	DurationHours    int                `json:"duration"`
	ServiceCharge    float64            `json:"serviceCharge"`
	Materials        []MaterialResponse `json:"materials"`
	MaterialCost     float64            `json:"materialCost"`
	AdditionalCharge float64            `json:"additionalCharge"`
	TotalCharge      float64            `json:"totalCharge"`
}

type ReviewResponse struct {
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type TransitionResponse struct {
	Action     string    `json:"action"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to"`
	Event      string    `json:"event"`
	ActorID    uuid.UUID `json:"actorId"`
	ActorRole  string    `json:"actorRole"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type BookingResponse struct {
	ID               uuid.UUID            `json:"bookingId"`
	CustomerID       uuid.UUID            `json:"customerId"`
	ProviderID       *uuid.UUID           `json:"providerId,omitempty"`
	Status           string               `json:"status"`
	ServiceType      string               `json:"serviceType"`
	Description      string               `json:"description,omitempty"`
	ScheduledAt      time.Time            `json:"scheduledAt"`
	CustomerLocation LocationResponse     `json:"customerLocation"`
	ProviderLocation *LocationResponse    `json:"providerLocation,omitempty"`
	ETAMinutes       *int                 `json:"eta,omitempty"`
	Charges          *ChargesResponse     `json:"charges,omitempty"`
	PaymentMethod    string               `json:"paymentMethod,omitempty"`
	Review           *ReviewResponse      `json:"review,omitempty"`
	ReviewSkipped    bool                 `json:"reviewSkipped,omitempty"`
	DeclineReason    string               `json:"declineReason,omitempty"`
	CancelReason     string               `json:"cancelReason,omitempty"`
	CancelledBy      string               `json:"cancelledBy,omitempty"`
	RequestedAt      time.Time            `json:"requestedAt"`
	StartedAt        *time.Time           `json:"startedAt,omitempty"`
	CompletedAt      *time.Time           `json:"completedAt,omitempty"`
	PaidAt           *time.Time           `json:"paidAt,omitempty"`
	UpdatedAt        time.Time            `json:"updatedAt"`
	Version          int64                `json:"version"`
	History          []TransitionResponse `json:"history,omitempty"`
}

type BookingListItemResponse struct {
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

type BookingListResponse struct {
	Items      []BookingListItemResponse `json:"items"`
	NextCursor string                    `json:"nextCursor,omitempty"`
}

type ProviderLocationResponse struct {
	BookingID  uuid.UUID        `json:"bookingId"`
	ProviderID uuid.UUID        `json:"providerId"`
	Location   LocationResponse `json:"location"`
	ETAMinutes *int             `json:"eta,omitempty"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

var deepCopy = copier.Option{DeepCopy: true}

func FromBookingRM(rm *readmodel.BookingRM) (*BookingResponse, error) {
	var resp BookingResponse
	if err := copier.CopyWithOption(&resp, rm, deepCopy); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromBookingList(res *queries.BookingListResult) (*BookingListResponse, error) {
	resp := BookingListResponse{
		Items:      make([]BookingListItemResponse, 0, len(res.Items)),
		NextCursor: res.NextCursor,
	}
	if err := copier.CopyWithOption(&resp.Items, res.Items, deepCopy); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromProviderLocationRM(rm *readmodel.ProviderLocationRM) (*ProviderLocationResponse, error) {
	var resp ProviderLocationResponse
	if err := copier.CopyWithOption(&resp, rm, deepCopy); err != nil {
		return nil, err
	}
	return &resp, nil
}
