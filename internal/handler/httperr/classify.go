package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/domain/review"
	"ghar-ko-sathi/internal/domain/user"
	"ghar-ko-sathi/internal/pkg/errs"
	"ghar-ko-sathi/internal/realtime/presence"
	"ghar-ko-sathi/internal/usecase/commands"
	"ghar-ko-sathi/internal/usecase/queries"
)

// Error codes shared by REST responses and actionRejected envelopes.
const (
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeNotAuthorized     = "NOT_AUTHORIZED_FOR_ACTION"
	CodeInconsistentTotal = "INCONSISTENT_TOTAL"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeValidation        = "VALIDATION_FAILED"
	CodeNotRegistered     = "NOT_REGISTERED"
	CodeInternal          = "INTERNAL"
	CodeUnknownEvent      = "UNKNOWN_EVENT"
	CodeMalformedEnvelope = "MALFORMED_REQUEST"
	CodeIdentityMismatch  = "IDENTITY_MISMATCH"
	CodeTransportOverflow = "SEND_BUFFER_FULL"
)

type Classified struct {
	Status  int
	Code    string
	Message string
}

var validationErrors = []error{
	booking.ErrInvalidDuration,
	booking.ErrInvalidMaterial,
	booking.ErrInvalidAmount,
	booking.ErrInvalidLocation,
	booking.ErrInvalidServiceType,
	booking.ErrDescriptionTooLong,
	booking.ErrInvalidParties,
	booking.ErrInvalidPaymentMethod,
	booking.ErrInvalidETA,
	review.ErrInvalidRating,
	review.ErrCommentTooLong,
	user.ErrInvalidActor,
	commands.ErrInvalidCompletedBy,
	queries.ErrInvalidCursor,
}

// Classify maps an error from the use case layer onto a status, a stable code
// and a message that is safe to show to the caller.
func Classify(err error) Classified {
	switch {
	case errs.Is(err, booking.ErrInvalidTransition):
		return Classified{http.StatusConflict, CodeInvalidTransition, err.Error()}
	case errs.Is(err, booking.ErrNotAuthorizedForAction):
		return Classified{http.StatusForbidden, CodeNotAuthorized, err.Error()}
	case errs.Is(err, booking.ErrInconsistentTotal):
		return Classified{http.StatusUnprocessableEntity, CodeInconsistentTotal, err.Error()}
	case errs.Is(err, commands.ErrBookingNotFound), errs.Is(err, queries.ErrBookingNotFound):
		return Classified{http.StatusNotFound, CodeNotFound, "booking not found"}
	case errs.Is(err, queries.ErrProviderLocationNotFound):
		return Classified{http.StatusNotFound, CodeNotFound, "no provider location known for booking"}
	case errs.Is(err, commands.ErrConcurrentUpdate):
		return Classified{http.StatusConflict, CodeConflict, "booking was modified concurrently, fetch and retry"}
	case errs.Is(err, commands.ErrDuplicateBooking):
		return Classified{http.StatusConflict, CodeConflict, "booking already exists"}
	case errs.Is(err, presence.ErrNotRegistered):
		return Classified{http.StatusPreconditionRequired, CodeNotRegistered, "register before sending events"}
	case errs.Is(err, presence.ErrNotProvider):
		return Classified{http.StatusForbidden, CodeNotAuthorized, err.Error()}
	}
	for _, v := range validationErrors {
		if errs.Is(err, v) {
			return Classified{http.StatusBadRequest, CodeValidation, v.Error()}
		}
	}
	return Classified{http.StatusInternalServerError, CodeInternal, "Internal server error"}
}

// Abort classifies err and aborts the request with the matching status.
func Abort(c *gin.Context, err error) {
	cl := Classify(err)
	AbortWithError(c, cl.Status, err, cl.Message, gin.H{"code": cl.Code})
}
