//go:build unit

package converter_test

import (
	"testing"

	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/infra/repository/converter"
	sqlc "ghar-ko-sathi/internal/infra/sqlc/generated"
	"ghar-ko-sathi/internal/usecase/readmodel"
	"ghar-ko-sathi/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rowOf is what postgres holds after Create followed by Update.
func rowOf(t *testing.T, b *booking.Booking) sqlc.Bookings {
	t.Helper()

	c := converter.BookingToCreateParams(b)
	u, err := converter.BookingToUpdateParams(b, b.Version()-1)
	require.NoError(t, err)

	return sqlc.Bookings{
		ID:                    c.ID,
		CustomerID:            c.CustomerID,
		ProviderID:            u.ProviderID,
		Status:                u.Status,
		ServiceType:           c.ServiceType,
		Description:           c.Description,
		ScheduledAt:           c.ScheduledAt,
		CustomerLat:           c.CustomerLat,
		CustomerLng:           c.CustomerLng,
		ProviderLat:           u.ProviderLat,
		ProviderLng:           u.ProviderLng,
		EtaMinutes:            u.EtaMinutes,
		HourlyRatePaisa:       u.HourlyRatePaisa,
		DurationHours:         u.DurationHours,
		ServiceChargePaisa:    u.ServiceChargePaisa,
		Materials:             u.Materials,
		MaterialCostPaisa:     u.MaterialCostPaisa,
		AdditionalChargePaisa: u.AdditionalChargePaisa,
		TotalChargePaisa:      u.TotalChargePaisa,
		PaymentMethod:         u.PaymentMethod,
		ReviewRating:          u.ReviewRating,
		ReviewComment:         u.ReviewComment,
		ReviewedAt:            u.ReviewedAt,
		ReviewSkipped:         u.ReviewSkipped,
		DeclineReason:         u.DeclineReason,
		CancelReason:          u.CancelReason,
		CancelledBy:           u.CancelledBy,
		RequestedAt:           c.RequestedAt,
		StartedAt:             u.StartedAt,
		CompletedAt:           u.CompletedAt,
		PaidAt:                u.PaidAt,
		UpdatedAt:             u.UpdatedAt,
		Version:               u.Version,
	}
}

func TestBookingRowRoundTrip(t *testing.T) {
	wire, err := booking.NewMaterial("wire", booking.MustMoneyFromPaisa(12550))
	require.NoError(t, err)

	cases := []struct {
		name   string
		open   bool
		status booking.Status
	}{
		{name: "pending", status: booking.StatusPending},
		{name: "open request", open: true, status: booking.StatusPending},
		{name: "accepted", status: booking.StatusAccepted},
		{name: "declined", status: booking.StatusDeclined},
		{name: "awaiting customer completion", status: booking.StatusCompletedByProvider},
		{name: "paid", status: booking.StatusPaid},
		{name: "reviewed", status: booking.StatusReviewed},
		{name: "cancelled", status: booking.StatusCancelled},
		{name: "timed out", status: booking.StatusTimedOut},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bb := builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) {
				bb.Materials = []booking.Material{wire}
				bb.Additional = booking.MustMoneyFromPaisa(5000)
			})
			if tc.open {
				bb.Open()
			}
			orig := bb.MustBuildDomain(tc.status)

			back, err := converter.BookingFromRow(rowOf(t, orig), orig.History())
			require.NoError(t, err)

			if diff := cmp.Diff(readmodel.FromBooking(orig), readmodel.FromBooking(back)); diff != "" {
				t.Errorf("booking changed across the row mapping (-want +got):\n%s", diff)
			}
			assert.Equal(t, orig.Version(), back.Version())
		})
	}
}

func TestBookingFromRowRejectsCorruptCharges(t *testing.T) {
	b := builder.NewBookingBuilder().MustBuildDomain(booking.StatusCompleted)
	row := rowOf(t, b)
	row.TotalChargePaisa.Int64++

	_, err := converter.BookingFromRow(row, nil)
	require.ErrorIs(t, err, booking.ErrInconsistentTotal)
}

func TestBookingFromRowRejectsUnknownStatus(t *testing.T) {
	b := builder.NewBookingBuilder().MustBuildDomain(booking.StatusPending)
	row := rowOf(t, b)
	row.Status = "archived"

	_, err := converter.BookingFromRow(row, nil)
	require.Error(t, err)
}

func TestTransitionRoundTrip(t *testing.T) {
	b := builder.NewBookingBuilder().MustBuildDomain(booking.StatusConfirmed)

	for _, tr := range b.History() {
		p := converter.TransitionToParams(b.ID(), tr)
		got := converter.TransitionFromRow(sqlc.BookingTransitions{
			BookingID:  p.BookingID,
			Action:     p.Action,
			FromStatus: p.FromStatus,
			ToStatus:   p.ToStatus,
			Event:      p.Event,
			ActorID:    p.ActorID,
			ActorRole:  p.ActorRole,
			Reason:     p.Reason,
			OccurredAt: p.OccurredAt,
		})
		if diff := cmp.Diff(tr, got); diff != "" {
			t.Errorf("transition %s (-want +got):\n%s", tr.Action, diff)
		}
	}
}
