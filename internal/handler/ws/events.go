package ws

import (
	"context"
	"encoding/json"

	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/domain/user"
	reqdto "ghar-ko-sathi/internal/handler/dto/request"
	"ghar-ko-sathi/internal/handler/httperr"
	"ghar-ko-sathi/internal/pkg/errs"
	"ghar-ko-sathi/internal/realtime"

	"github.com/gin-gonic/gin/binding"
)

type eventHandler func(ctx context.Context, s realtime.Session, actor user.Actor, data json.RawMessage) error

// eventError carries a transport level rejection code.
type eventError struct {
	code string
	msg  string
}

func (e *eventError) Error() string { return e.code + ": " + e.msg }

func asEventError(err error, target **eventError) bool {
	return errs.As(err, target)
}

func errMalformed(err error) error {
	msg := "envelope must be a JSON object with an event name"
	if err != nil {
		msg = err.Error()
	}
	return &eventError{code: httperr.CodeMalformedEnvelope, msg: msg}
}

func decode[T any](data json.RawMessage) (T, error) {
	var v T
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errMalformed(err)
	}
	if err := binding.Validator.ValidateStruct(&v); err != nil {
		return v, &eventError{code: httperr.CodeValidation, msg: err.Error()}
	}
	return v, nil
}

func (h *Handler) eventRoutes() map[string]eventHandler {
	return map[string]eventHandler{
		"register":           h.onRegister,
		"setAvailability":    h.onSetAvailability,
		"updateLocation":     h.onUpdateLocation,
		"sendBookingRequest": h.onSendBookingRequest,
		"acceptBooking":      h.onAcceptBooking,
		"declineBooking":     h.onDeclineBooking,
		"confirmBooking":     h.onConfirmBooking,
		"startJob":           h.onStartJob,
		"completeJob":        h.onCompleteJob,
		"submitPayment":      h.onSubmitPayment,
		"submitReview":       h.onSubmitReview,
		"skipReview":         h.onSkipReview,
		"cancelBooking":      h.onCancelBooking,
	}
}

type registeredPayload struct {
	UserID       string `json:"userId"`
	Role         string `json:"role"`
	ConnectionID string `json:"connectionId"`
	Available    bool   `json:"available"`
}

// onRegister binds the connection to the token's identity. The claimed
// identity must match the token.
func (h *Handler) onRegister(_ context.Context, s realtime.Session, actor user.Actor, data json.RawMessage) error {
	req, err := decode[reqdto.RegisterRequest](data)
	if err != nil {
		return err
	}
	if req.UserID != actor.ID || req.Role != actor.Role.String() {
		return &eventError{code: httperr.CodeIdentityMismatch, msg: "register must match the authenticated identity"}
	}

	if replaced := h.registry.Register(s, actor.ID, actor.Role, req.IsAvailable()); replaced != nil {
		h.logger.Info("registration moved to a new connection",
			"user_id", actor.ID.String(), "old_conn_id", replaced.ID(), "new_conn_id", s.ID())
	}
	rec, _ := h.registry.ByConnection(s.ID())
	return sendTo(s, EventRegistered, registeredPayload{
		UserID:       actor.ID.String(),
		Role:         actor.Role.String(),
		ConnectionID: s.ID(),
		Available:    rec.Available,
	})
}

func (h *Handler) onSetAvailability(_ context.Context, s realtime.Session, _ user.Actor, data json.RawMessage) error {
	req, err := decode[reqdto.SetAvailabilityRequest](data)
	if err != nil {
		return err
	}
	if err := h.registry.SetAvailable(s.ID(), req.Available); err != nil {
		return err
	}
	return sendTo(s, EventAvailabilityUpdated, map[string]bool{"available": req.Available})
}

// onUpdateLocation streams a provider's position; a customer's position is
// only remembered for ETA estimates.
func (h *Handler) onUpdateLocation(ctx context.Context, s realtime.Session, actor user.Actor, data json.RawMessage) error {
	req, err := decode[reqdto.UpdateLocationRequest](data)
	if err != nil {
		return err
	}
	if req.UserID != nil && *req.UserID != actor.ID {
		return &eventError{code: httperr.CodeIdentityMismatch, msg: "location updates are only accepted for yourself"}
	}
	loc, err := booking.NewLocation(req.Location.Lat, req.Location.Lng)
	if err != nil {
		return err
	}

	if !actor.IsProvider() {
		return h.registry.SetLocation(s.ID(), loc)
	}
	_, err = h.broadcaster.UpdateLocation(ctx, s.ID(), loc)
	return err
}

func (h *Handler) onSendBookingRequest(ctx context.Context, _ realtime.Session, actor user.Actor, data json.RawMessage) error {
	req, err := decode[reqdto.SendBookingRequest](data)
	if err != nil {
		return err
	}
	_, err = h.commands.RequestBooking(ctx, actor, req.ToCommand())
	return err
}

func (h *Handler) onAcceptBooking(ctx context.Context, _ realtime.Session, actor user.Actor, data json.RawMessage) error {
	req, err := decode[reqdto.AcceptBookingRequest](data)
	if err != nil {
		return err
	}
	_, err = h.commands.AcceptBooking(ctx, actor, req.ToCommand())
	return err
}

func (h *Handler) onDeclineBooking(ctx context.Context, _ realtime.Session, actor user.Actor, data json.RawMessage) error {
	req, err := decode[reqdto.DeclineBookingRequest](data)
	if err != nil {
		return err
	}
	_, err = h.commands.DeclineBooking(ctx, actor, req.BookingID, req.Reason)
	return err
}

func (h *Handler) onConfirmBooking(ctx context.Context, _ realtime.Session, actor user.Actor, data json.RawMessage) error {
	req, err := decode[reqdto.BookingRef](data)
	if err != nil {
		return err
	}
	_, err = h.commands.ConfirmBooking(ctx, actor, req.BookingID)
	return err
}

func (h *Handler) onStartJob(ctx context.Context, _ realtime.Session, actor user.Actor, data json.RawMessage) error {
	req, err := decode[reqdto.BookingRef](data)
	if err != nil {
		return err
	}
	_, err = h.commands.StartJob(ctx, actor, req.BookingID)
	return err
}

func (h *Handler) onCompleteJob(ctx context.Context, _ realtime.Session, actor user.Actor, data json.RawMessage) error {
	req, err := decode[reqdto.CompleteJobRequest](data)
	if err != nil {
		return err
	}
	_, err = h.commands.CompleteJob(ctx, actor, req.ToCommand())
	return err
}

func (h *Handler) onSubmitPayment(ctx context.Context, _ realtime.Session, actor user.Actor, data json.RawMessage) error {
	req, err := decode[reqdto.SubmitPaymentRequest](data)
	if err != nil {
		return err
	}
	_, err = h.commands.SubmitPayment(ctx, actor, req.BookingID, req.Method)
	return err
}

func (h *Handler) onSubmitReview(ctx context.Context, _ realtime.Session, actor user.Actor, data json.RawMessage) error {
	req, err := decode[reqdto.SubmitReviewRequest](data)
	if err != nil {
		return err
	}
	_, err = h.commands.SubmitReview(ctx, actor, req.ToCommand())
	return err
}

func (h *Handler) onSkipReview(ctx context.Context, _ realtime.Session, actor user.Actor, data json.RawMessage) error {
	req, err := decode[reqdto.BookingRef](data)
	if err != nil {
		return err
	}
	_, err = h.commands.SkipReview(ctx, actor, req.BookingID)
	return err
}

func (h *Handler) onCancelBooking(ctx context.Context, _ realtime.Session, actor user.Actor, data json.RawMessage) error {
	req, err := decode[reqdto.CancelBookingRequest](data)
	if err != nil {
		return err
	}
	_, err = h.commands.CancelBooking(ctx, actor, req.BookingID, req.Reason)
	return err
}

func sendTo(s realtime.Session, event string, payload any) error {
	env, err := realtime.NewEnvelope(event, payload)
	if err != nil {
		return err
	}
	return s.Send(env)
}
