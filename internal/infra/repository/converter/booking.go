package converter

import (
	"encoding/json"

	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/domain/review"
	"ghar-ko-sathi/internal/domain/user"
	sqlc "ghar-ko-sathi/internal/infra/sqlc/generated"
	"ghar-ko-sathi/internal/pkg/errs"
	"ghar-ko-sathi/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type materialRow struct {
	Name      string `json:"name"`
	CostPaisa int64  `json:"costPaisa"`
}

func BookingToCreateParams(b *booking.Booking) sqlc.CreateBookingParams {
	return sqlc.CreateBookingParams{
		ID:          b.ID(),
		CustomerID:  b.CustomerID(),
		ProviderID:  pgconv.UUIDPtrToPgtype(b.ProviderID()),
		Status:      b.Status().String(),
		ServiceType: b.ServiceType().String(),
		Description: b.Description().String(),
		ScheduledAt: pgconv.TimeToPgtype(b.ScheduledAt()),
		CustomerLat: b.CustomerLocation().Lat(),
		CustomerLng: b.CustomerLocation().Lng(),
		RequestedAt: pgconv.TimeToPgtype(b.RequestedAt()),
		UpdatedAt:   pgconv.TimeToPgtype(b.UpdatedAt()),
		Version:     b.Version(),
	}
}

func BookingToUpdateParams(b *booking.Booking, expectedVersion int64) (sqlc.UpdateBookingParams, error) {
	s := b.State()

	p := sqlc.UpdateBookingParams{
		ProviderID:      pgconv.UUIDPtrToPgtype(s.ProviderID),
		Status:          s.Status.String(),
		Materials:       []byte("[]"),
		ReviewSkipped:   s.ReviewSkipped,
		DeclineReason:   pgconv.StringToPgtype(s.DeclineReason),
		CancelReason:    pgconv.StringToPgtype(s.CancelReason),
		CancelledBy:     pgconv.StringToPgtype(s.CancelledBy.String()),
		PaymentMethod:   pgconv.StringToPgtype(s.PaymentMethod.String()),
		StartedAt:       pgconv.TimePtrToPgtype(s.StartedAt),
		CompletedAt:     pgconv.TimePtrToPgtype(s.CompletedAt),
		PaidAt:          pgconv.TimePtrToPgtype(s.PaidAt),
		UpdatedAt:       pgconv.TimeToPgtype(s.UpdatedAt),
		Version:         s.Version,
		ID:              s.ID,
		ExpectedVersion: expectedVersion,
	}

	if s.ProviderLocation != nil {
		p.ProviderLat = pgtype.Float8{Float64: s.ProviderLocation.Lat(), Valid: true}
		p.ProviderLng = pgtype.Float8{Float64: s.ProviderLocation.Lng(), Valid: true}
	}
	if s.ETAMinutes != nil {
		p.EtaMinutes = pgtype.Int4{Int32: int32(*s.ETAMinutes), Valid: true} // #nosec G115 -- Accept caps eta at MaxETAMinutes
	}

	if c := s.Charges; c != nil {
		rows := make([]materialRow, 0, len(c.Materials()))
		for _, m := range c.Materials() {
			rows = append(rows, materialRow{Name: m.Name(), CostPaisa: m.Cost().Paisa()})
		}
		raw, err := json.Marshal(rows)
		if err != nil {
			return sqlc.UpdateBookingParams{}, errs.Wrap(err, "failed to encode materials")
		}
		p.Materials = raw
		p.HourlyRatePaisa = paisa(c.HourlyRate())
		p.DurationHours = pgtype.Int4{Int32: int32(c.DurationHours()), Valid: true} // #nosec G115 -- capped at MaxDurationHours
		p.ServiceChargePaisa = paisa(c.ServiceCharge())
		p.MaterialCostPaisa = paisa(c.MaterialCost())
		p.AdditionalChargePaisa = paisa(c.AdditionalCharge())
		p.TotalChargePaisa = paisa(c.TotalCharge())
	}

	if r := s.Review; r != nil {
		p.ReviewRating = pgtype.Int4{Int32: int32(r.Rating().Value()), Valid: true} // #nosec G115
		p.ReviewComment = pgtype.Text{String: r.Comment().String(), Valid: true}
		p.ReviewedAt = pgconv.TimeToPgtype(r.SubmittedAt())
	}

	return p, nil
}

func paisa(m booking.Money) pgtype.Int8 {
	return pgtype.Int8{Int64: m.Paisa(), Valid: true}
}

func moneyFrom(v pgtype.Int8) (booking.Money, error) {
	if !v.Valid {
		return booking.Money{}, nil
	}
	return booking.MoneyFromPaisa(v.Int64)
}

// BookingFromRow rebuilds the aggregate; history is attached separately.
func BookingFromRow(row sqlc.Bookings, history []booking.Transition) (*booking.Booking, error) {
	status, err := booking.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}
	customerLoc, err := booking.NewLocation(row.CustomerLat, row.CustomerLng)
	if err != nil {
		return nil, err
	}
	description, err := booking.NewDescription(row.Description)
	if err != nil {
		return nil, err
	}

	s := booking.BookingState{
		ID:               row.ID,
		CustomerID:       row.CustomerID,
		ProviderID:       pgconv.UUIDPtrFromPgtype(row.ProviderID),
		Status:           status,
		ServiceType:      booking.ServiceType(row.ServiceType),
		Description:      description,
		ScheduledAt:      pgconv.TimeFromPgtype(row.ScheduledAt),
		CustomerLocation: customerLoc,
		ReviewSkipped:    row.ReviewSkipped,
		DeclineReason:    pgconv.StringFromPgtype(row.DeclineReason),
		CancelReason:     pgconv.StringFromPgtype(row.CancelReason),
		CancelledBy:      user.Role(pgconv.StringFromPgtype(row.CancelledBy)),
		PaymentMethod:    booking.PaymentMethod(pgconv.StringFromPgtype(row.PaymentMethod)),
		RequestedAt:      pgconv.TimeFromPgtype(row.RequestedAt),
		StartedAt:        pgconv.TimePtrFromPgtype(row.StartedAt),
		CompletedAt:      pgconv.TimePtrFromPgtype(row.CompletedAt),
		PaidAt:           pgconv.TimePtrFromPgtype(row.PaidAt),
		UpdatedAt:        pgconv.TimeFromPgtype(row.UpdatedAt),
		Version:          row.Version,
		History:          history,
	}

	if row.ProviderLat.Valid && row.ProviderLng.Valid {
		loc, err := booking.NewLocation(row.ProviderLat.Float64, row.ProviderLng.Float64)
		if err != nil {
			return nil, err
		}
		s.ProviderLocation = &loc
	}
	if row.EtaMinutes.Valid {
		eta := int(row.EtaMinutes.Int32)
		s.ETAMinutes = &eta
	}

	if row.TotalChargePaisa.Valid {
		charges, err := chargesFromRow(row)
		if err != nil {
			return nil, err
		}
		s.Charges = &charges
	}

	if row.ReviewRating.Valid {
		rv, err := review.NewReview(int(row.ReviewRating.Int32), pgconv.StringFromPgtype(row.ReviewComment), pgconv.TimeFromPgtype(row.ReviewedAt))
		if err != nil {
			return nil, err
		}
		s.Review = &rv
	}

	return booking.ReconstructBooking(s)
}

func chargesFromRow(row sqlc.Bookings) (booking.Charges, error) {
	var rows []materialRow
	if len(row.Materials) > 0 {
		if err := json.Unmarshal(row.Materials, &rows); err != nil {
			return booking.Charges{}, errs.Wrap(err, "failed to decode materials")
		}
	}
	materials := make([]booking.Material, 0, len(rows))
	for _, r := range rows {
		cost, err := booking.MoneyFromPaisa(r.CostPaisa)
		if err != nil {
			return booking.Charges{}, err
		}
		m, err := booking.NewMaterial(r.Name, cost)
		if err != nil {
			return booking.Charges{}, err
		}
		materials = append(materials, m)
	}

	amounts := make([]booking.Money, 0, 5)
	for _, v := range []pgtype.Int8{row.HourlyRatePaisa, row.ServiceChargePaisa, row.MaterialCostPaisa, row.AdditionalChargePaisa, row.TotalChargePaisa} {
		m, err := moneyFrom(v)
		if err != nil {
			return booking.Charges{}, err
		}
		amounts = append(amounts, m)
	}

	return booking.ReconstructCharges(
		amounts[0],
		int(row.DurationHours.Int32),
		amounts[1],
		materials,
		amounts[2],
		amounts[3],
		amounts[4],
	)
}

func TransitionToParams(bookingID uuid.UUID, t booking.Transition) sqlc.CreateBookingTransitionParams {
	return sqlc.CreateBookingTransitionParams{
		BookingID:  bookingID,
		Action:     t.Action.String(),
		FromStatus: pgconv.StringToPgtype(t.From.String()),
		ToStatus:   t.To.String(),
		Event:      t.Event.String(),
		ActorID:    t.ActorID,
		ActorRole:  t.ActorRole.String(),
		Reason:     t.Reason,
		OccurredAt: pgconv.TimeToPgtype(t.OccurredAt),
	}
}

func TransitionFromRow(row sqlc.BookingTransitions) booking.Transition {
	return booking.Transition{
		Action:     booking.Action(row.Action),
		From:       booking.Status(pgconv.StringFromPgtype(row.FromStatus)),
		To:         booking.Status(row.ToStatus),
		Event:      booking.Event(row.Event),
		ActorID:    row.ActorID,
		ActorRole:  user.Role(row.ActorRole),
		Reason:     row.Reason,
		OccurredAt: pgconv.TimeFromPgtype(row.OccurredAt),
	}
}
