package request

import (
	"time"

	"ghar-ko-sathi/internal/domain/user"
	"ghar-ko-sathi/internal/usecase/commands"

	"github.com/google/uuid"
)

// Payloads of inbound websocket events. Validation runs through gin's binding
// validator, the same one used for REST bodies.

type LocationDTO struct {
	Lat float64 `json:"lat" binding:"min=-90,max=90"`
	Lng float64 `json:"lng" binding:"min=-180,max=180"`
}

type RegisterRequest struct {
	UserID    uuid.UUID `json:"userId" binding:"required"`
	Role      string    `json:"role" binding:"required,oneof=customer serviceProvider admin"`
	Available *bool     `json:"available"`
}

// IsAvailable defaults providers to available when the flag is omitted.
func (r RegisterRequest) IsAvailable() bool {
	if r.Available == nil {
		return r.Role == user.RoleServiceProvider.String()
	}
	return *r.Available
}

type SendBookingRequest struct {
	ProviderID  *uuid.UUID  `json:"providerId"`
	ServiceType string      `json:"serviceType" binding:"required,max=100"`
	Description string      `json:"description" binding:"max=2000"`
	ScheduledAt *time.Time  `json:"scheduledAt"`
	Location    LocationDTO `json:"location" binding:"required"`
}

func (r SendBookingRequest) ToCommand() commands.RequestBookingRequest {
	return commands.RequestBookingRequest{
		ProviderID:  r.ProviderID,
		ServiceType: r.ServiceType,
		Description: r.Description,
		ScheduledAt: r.ScheduledAt,
		Lat:         r.Location.Lat,
		Lng:         r.Location.Lng,
	}
}

type BookingRef struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
}

type AcceptBookingRequest struct {
	BookingID        uuid.UUID   `json:"bookingId" binding:"required"`
	ProviderLocation LocationDTO `json:"providerLocation" binding:"required"`
	ETA              *int        `json:"eta" binding:"omitempty,min=0,max=1440"`
}

func (r AcceptBookingRequest) ToCommand() commands.AcceptBookingRequest {
	return commands.AcceptBookingRequest{
		BookingID:   r.BookingID,
		ProviderLat: r.ProviderLocation.Lat,
		ProviderLng: r.ProviderLocation.Lng,
		ETAMinutes:  r.ETA,
	}
}

type DeclineBookingRequest struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
	Reason    string    `json:"reason"`
}

type MaterialDTO struct {
	Name string  `json:"name" binding:"required"`
	Cost float64 `json:"cost" binding:"min=0,max=10000000"`
}

type CompleteJobRequest struct {
	BookingID        uuid.UUID     `json:"bookingId" binding:"required"`
	CompletedBy      string        `json:"completedBy" binding:"omitempty,oneof=user customer provider serviceProvider"`
	Duration         int           `json:"duration" binding:"omitempty,min=1,max=720"`
	Materials        []MaterialDTO `json:"materials" binding:"omitempty,dive"`
	AdditionalCharge float64       `json:"additionalCharge" binding:"min=0,max=10000000"`
	// TotalCharge is what the client displayed; the server recomputes it.
	TotalCharge *float64 `json:"totalCharge" binding:"omitempty,min=0,max=10000000"`
}

func (r CompleteJobRequest) ToCommand() commands.CompleteJobRequest {
	materials := make([]commands.MaterialRequest, 0, len(r.Materials))
	for _, m := range r.Materials {
		materials = append(materials, commands.MaterialRequest{Name: m.Name, Cost: m.Cost})
	}
	return commands.CompleteJobRequest{
		BookingID:        r.BookingID,
		CompletedBy:      completedByRole(r.CompletedBy),
		DurationHours:    r.Duration,
		Materials:        materials,
		AdditionalCharge: r.AdditionalCharge,
		ExpectedTotal:    r.TotalCharge,
	}
}

func completedByRole(s string) user.Role {
	switch s {
	case "user", "customer":
		return user.RoleCustomer
	case "provider", "serviceProvider":
		return user.RoleServiceProvider
	default:
		return ""
	}
}

type SubmitPaymentRequest struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
	Method    string    `json:"method" binding:"required"`
}

type SubmitReviewRequest struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Comment   string    `json:"comment" binding:"max=1000"`
}

func (r SubmitReviewRequest) ToCommand() commands.SubmitReviewRequest {
	return commands.SubmitReviewRequest{BookingID: r.BookingID, Rating: r.Rating, Comment: r.Comment}
}

// CancelBookingRequest.CancelledBy is informational; the canceller is the
// authenticated identity.
type CancelBookingRequest struct {
	BookingID   uuid.UUID `json:"bookingId" binding:"required"`
	Reason      string    `json:"reason"`
	CancelledBy string    `json:"cancelledBy"`
}

type UpdateLocationRequest struct {
	UserID   *uuid.UUID  `json:"userId"`
	Location LocationDTO `json:"location" binding:"required"`
}

type SetAvailabilityRequest struct {
	Available bool `json:"available"`
}

type ListBookingsQuery struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
