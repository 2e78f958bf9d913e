//go:build e2e

package booking_test

import (
	"net/http"
	"testing"
	"time"

	"ghar-ko-sathi/internal/domain/user"
	resdto "ghar-ko-sathi/internal/handler/dto/response"
	"ghar-ko-sathi/internal/handler/httperr"
	"ghar-ko-sathi/internal/handler/ws"
	"ghar-ko-sathi/internal/realtime/presence"
	"ghar-ko-sathi/internal/usecase/readmodel"
	"ghar-ko-sathi/tests/common/authtest"
	"ghar-ko-sathi/tests/common/dbtest"
	"ghar-ko-sathi/tests/common/httptest"
	"ghar-ko-sathi/tests/e2e"
	"ghar-ko-sathi/tests/e2e/common/helper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type BookingE2ETestSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func TestBookingE2ETestSuite(t *testing.T) {
	suite.Run(t, new(BookingE2ETestSuite))
}

func (s *BookingE2ETestSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

type parties struct {
	customer      *helper.WSClient
	customerToken string
	provider      *helper.WSClient
	providerToken string
}

func (s *BookingE2ETestSuite) connect() parties {
	t := s.T()
	customer, customerToken := helper.NewActor(t, s.jwt, user.RoleCustomer)
	provider, providerToken := helper.NewActor(t, s.jwt, user.RoleServiceProvider)

	p := parties{
		customer:      helper.Dial(t, s.WSURL(), customerToken, customer),
		customerToken: customerToken,
		provider:      helper.Dial(t, s.WSURL(), providerToken, provider),
		providerToken: providerToken,
	}
	p.customer.Register()
	p.provider.Register()
	return p
}

// request sends a booking addressed to the party's provider and returns the
// pushed snapshot both sides received.
func (s *BookingE2ETestSuite) request(p parties) readmodel.BookingRM {
	p.customer.Send("sendBookingRequest", map[string]any{
		"providerId":  p.provider.Actor.ID,
		"serviceType": "plumbing",
		"description": "kitchen sink leaking",
		"location":    map[string]float64{"lat": 27.7172, "lng": 85.3240},
	})
	created := helper.Decode[readmodel.BookingRM](s.T(), p.customer.Expect("newBookingRequest"))
	pushed := helper.Decode[readmodel.BookingRM](s.T(), p.provider.Expect("newBookingRequest"))
	s.Equal(created.ID, pushed.ID)
	s.Equal("pending", created.Status)
	return created
}

func (s *BookingE2ETestSuite) TestFullLifecycle() {
	p := s.connect()
	b := s.request(p)
	ref := map[string]any{"bookingId": b.ID}

	p.provider.Send("acceptBooking", map[string]any{
		"bookingId":        b.ID,
		"providerLocation": map[string]float64{"lat": 27.6710, "lng": 85.4298},
	})
	accepted := helper.Decode[readmodel.BookingRM](s.T(), p.customer.Expect("bookingAccepted"))
	p.provider.Expect("bookingAccepted")
	s.Require().NotNil(accepted.ETAMinutes)
	s.Positive(*accepted.ETAMinutes)

	p.customer.Send("confirmBooking", ref)
	p.provider.Expect("bookingConfirmedByUser")
	p.customer.Expect("bookingConfirmedByUser")

	p.provider.Send("updateLocation", map[string]any{"location": map[string]float64{"lat": 27.70, "lng": 85.33}})
	loc := helper.Decode[presence.LocationUpdate](s.T(), p.customer.Expect("location-update"))
	s.Equal(b.ID, loc.BookingID)
	s.InDelta(27.70, loc.Lat, 1e-9)

	p.provider.Send("startJob", ref)
	started := helper.Decode[readmodel.BookingRM](s.T(), p.customer.Expect("jobStarted"))
	p.provider.Expect("jobStarted")
	s.NotNil(started.StartedAt)

	p.provider.Send("completeJob", map[string]any{
		"bookingId":        b.ID,
		"duration":         2,
		"materials":        []map[string]any{{"name": "pipe", "cost": 150}},
		"additionalCharge": 50,
		"totalCharge":      600,
	})
	half := helper.Decode[readmodel.BookingRM](s.T(), p.customer.Expect("providerCompletedJob"))
	p.provider.Expect("providerCompletedJob")
	s.Equal("completed-by-provider", half.Status)
	s.Require().NotNil(half.Charges)
	s.InDelta(600.0, half.Charges.TotalCharge, 1e-9)

	p.customer.Send("completeJob", ref)
	p.provider.Expect("jobCompleted")
	p.customer.Expect("jobCompleted")

	p.customer.Send("submitPayment", map[string]any{"bookingId": b.ID, "method": "esewa"})
	p.provider.Expect("paymentSuccess")
	p.customer.Expect("paymentSuccess")

	p.customer.Send("submitReview", map[string]any{"bookingId": b.ID, "rating": 5, "comment": "quick and tidy"})
	reviewed := helper.Decode[readmodel.BookingRM](s.T(), p.provider.Expect("reviewSubmitted"))
	p.customer.Expect("reviewSubmitted")
	s.Equal("reviewed", reviewed.Status)

	s.Equal("reviewed", dbtest.BookingStatus(s.T(), s.DB, b.ID))
	s.Equal(8, dbtest.CountTransitions(s.T(), s.DB, b.ID))
	s.Equal([]string{
		"newBookingRequest", "bookingAccepted", "bookingConfirmedByUser", "jobStarted",
		"providerCompletedJob", "jobCompleted", "paymentSuccess", "reviewSubmitted",
	}, dbtest.OutboxTopics(s.T(), s.DB))

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/bookings/"+b.ID.String(), nil, p.customerToken)
	var got resdto.BookingResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
	s.Equal("reviewed", got.Status)
	s.Len(got.History, 8)
}

func (s *BookingE2ETestSuite) TestIllegalActionIsRejected() {
	p := s.connect()
	b := s.request(p)

	// starting before accept and confirm
	p.provider.Send("startJob", map[string]any{"bookingId": b.ID})
	rej := helper.Decode[ws.ActionRejected](s.T(), p.provider.Expect("actionRejected"))
	s.Equal(httperr.CodeInvalidTransition, rej.Code)
	s.Equal(b.ID.String(), rej.BookingID)
	p.customer.ExpectNone("jobStarted", 300*time.Millisecond)

	// a customer cannot accept their own request
	p.customer.Send("acceptBooking", map[string]any{
		"bookingId":        b.ID,
		"providerLocation": map[string]float64{"lat": 27.6, "lng": 85.4},
	})
	rej = helper.Decode[ws.ActionRejected](s.T(), p.customer.Expect("actionRejected"))
	s.Equal(httperr.CodeNotAuthorized, rej.Code)

	s.Equal("pending", dbtest.BookingStatus(s.T(), s.DB, b.ID))
}

func (s *BookingE2ETestSuite) TestPendingRequestTimesOut() {
	p := s.connect()
	b := s.request(p)

	timedOut := helper.Decode[readmodel.BookingRM](s.T(), p.customer.Expect("bookingTimedOut"))
	p.provider.Expect("bookingTimedOut")
	s.Equal(b.ID, timedOut.ID)
	s.Equal("timed-out", dbtest.BookingStatus(s.T(), s.DB, b.ID))
}

func (s *BookingE2ETestSuite) TestCancelAfterAccept() {
	p := s.connect()
	b := s.request(p)

	p.provider.Send("acceptBooking", map[string]any{
		"bookingId":        b.ID,
		"providerLocation": map[string]float64{"lat": 27.6710, "lng": 85.4298},
		"eta":              12,
	})
	p.customer.Expect("bookingAccepted")

	p.customer.Send("cancelBooking", map[string]any{"bookingId": b.ID, "reason": "found someone closer"})
	cancelled := helper.Decode[readmodel.BookingRM](s.T(), p.provider.Expect("bookingCancelled"))
	s.Equal("cancelled", cancelled.Status)
	s.Equal("found someone closer", cancelled.CancelReason)
	s.Equal("customer", cancelled.CancelledBy)

	// terminal: a late confirm is refused
	p.customer.Send("confirmBooking", map[string]any{"bookingId": b.ID})
	rej := helper.Decode[ws.ActionRejected](s.T(), p.customer.Expect("actionRejected"))
	s.Equal(httperr.CodeInvalidTransition, rej.Code)
}

func (s *BookingE2ETestSuite) TestRESTAccess() {
	p := s.connect()
	b := s.request(p)

	s.Run("customer lists own bookings", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			"/api/bookings/user/"+p.customer.Actor.ID.String(), nil, p.customerToken)
		var list resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &list)
		s.Require().Len(list.Items, 1)
		s.Equal(b.ID, list.Items[0].ID)
	})

	s.Run("stranger cannot read the booking", func() {
		_, token := helper.NewActor(s.T(), s.jwt, user.RoleCustomer)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/bookings/"+b.ID.String(), nil, token)
		httptest.AssertErrorCode(s.T(), w, http.StatusForbidden, httperr.CodeNotAuthorized)
	})

	s.Run("unknown booking is 404", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/bookings/"+uuid.NewString(), nil, p.customerToken)
		httptest.AssertErrorCode(s.T(), w, http.StatusNotFound, httperr.CodeNotFound)
	})

	s.Run("expired token is refused", func() {
		token := s.jwt.CreateExpiredToken(s.T(), p.customer.Actor.ID, user.RoleCustomer)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/bookings/"+b.ID.String(), nil, token)
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}
