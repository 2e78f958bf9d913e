package shared

import (
	"time"

	"github.com/google/uuid"
)

type PendingBooking struct {
	ID          uuid.UUID
	RequestedAt time.Time
}

type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int
	RunAt    time.Time
}

const (
	NotificationKindBookingEvent = "booking_event"

	JobStatusQueued = "queued"
	JobStatusSent   = "sent"
	JobStatusFailed = "failed"
)

// ProviderLocation is the last position a provider reported over the live channel.
type ProviderLocation struct {
	ProviderID uuid.UUID `json:"providerId"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	RecordedAt time.Time `json:"recordedAt"`
}
