//go:build unit

package api_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/domain/user"
	"ghar-ko-sathi/internal/handler/api"
	resdto "ghar-ko-sathi/internal/handler/dto/response"
	"ghar-ko-sathi/internal/handler/httperr"
	"ghar-ko-sathi/internal/usecase/queries"
	"ghar-ko-sathi/internal/usecase/readmodel"
	"ghar-ko-sathi/tests/common/builder"
	"ghar-ko-sathi/tests/common/httptest"
	queriesmock "ghar-ko-sathi/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockBookingQueries
	handler     *api.BookingHandler
	actor       user.Actor
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockQueries)
	s.actor = user.Actor{ID: uuid.New(), Role: user.RoleCustomer}

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.actor.ID)
		c.Set("user_role", s.actor.Role)
		c.Next()
	}

	s.router.GET("/bookings/user/:id", authMiddleware, s.handler.ListByUser)
	s.router.GET("/bookings/provider/:id", authMiddleware, s.handler.ListByProvider)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.Get)
	s.router.GET("/bookings/:id/provider-location", authMiddleware, s.handler.ProviderLocation)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail struct {
		Code string `json:"code"`
	} `json:"detail"`
}

func (s *BookingHandlerTestSuite) decodeError(body []byte) errorBody {
	var e errorBody
	s.Require().NoError(json.Unmarshal(body, &e))
	return e
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	b := builder.NewBookingBuilder().MustBuildDomain(booking.StatusCompleted)
	rm := readmodel.FromBooking(b)
	url := "/bookings/" + b.ID().String()

	s.Run("success: returns the booking with charges in rupees", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), b.ID(), s.actor).Return(&rm, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(b.ID(), resp.ID)
		s.Equal("completed", resp.Status)
		s.Require().NotNil(resp.Charges)
		s.Equal(b.Charges().TotalCharge().Rupees(), resp.Charges.TotalCharge)
		s.Len(resp.History, len(b.History()))
	})

	s.Run("error: invalid id returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking id")
	})

	s.Run("error: unauthenticated returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: missing booking returns 404 NOT_FOUND", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), b.ID(), s.actor).Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		s.Equal(http.StatusNotFound, rec.Code)
		s.Equal(httperr.CodeNotFound, s.decodeError(rec.Body.Bytes()).Detail.Code)
	})

	s.Run("error: non-party returns 403 NOT_AUTHORIZED_FOR_ACTION", func() {
		denied := &booking.AuthorizationError{Action: "view", Reason: "not a party to this booking"}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), b.ID(), s.actor).Return(nil, denied).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		s.Equal(http.StatusForbidden, rec.Code)
		s.Equal(httperr.CodeNotAuthorized, s.decodeError(rec.Body.Bytes()).Detail.Code)
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestList() {
	owner := s.actor.ID
	b := builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) { bb.CustomerID = owner }).MustBuildDomain(booking.StatusPending)
	page := &queries.BookingListResult{
		Items:      []readmodel.BookingListItemRM{readmodel.ToListItem(b)},
		NextCursor: queries.EncodeCursor(b.RequestedAt(), b.ID()),
	}

	s.Run("success: customer listing passes cursor and limit through", func() {
		s.mockQueries.EXPECT().ListByCustomer(gomock.Any(), owner, s.actor, "abc", 10).Return(page, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/user/"+owner.String()+"?cursor=abc&limit=10", nil, "bearer-token")

		var resp resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Require().Len(resp.Items, 1)
		s.Equal(b.ID(), resp.Items[0].ID)
		s.Equal(page.NextCursor, resp.NextCursor)
	})

	s.Run("success: provider listing uses the provider query", func() {
		providerID := uuid.New()
		s.mockQueries.EXPECT().ListByProvider(gomock.Any(), providerID, s.actor, "", 0).
			Return(&queries.BookingListResult{Items: []readmodel.BookingListItemRM{}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/provider/"+providerID.String(), nil, "bearer-token")

		var resp resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Empty(resp.Items)
	})

	s.Run("error: limit above 100 returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/user/"+owner.String()+"?limit=101", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})

	s.Run("error: malformed cursor returns 400 VALIDATION_FAILED", func() {
		s.mockQueries.EXPECT().ListByCustomer(gomock.Any(), owner, s.actor, "%%%", 0).Return(nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/user/"+owner.String()+"?cursor=%25%25%25", nil, "bearer-token")

		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal(httperr.CodeValidation, s.decodeError(rec.Body.Bytes()).Detail.Code)
	})
}

// ================================================================================
// TestProviderLocation
// ================================================================================

func (s *BookingHandlerTestSuite) TestProviderLocation() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/provider-location"
	eta := 12
	rm := &readmodel.ProviderLocationRM{
		BookingID:  bookingID,
		ProviderID: uuid.New(),
		Location:   readmodel.LocationRM{Lat: 27.7, Lng: 85.3},
		ETAMinutes: &eta,
		UpdatedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	s.Run("success: returns last known location", func() {
		s.mockQueries.EXPECT().LastKnownProviderLocation(gomock.Any(), bookingID, s.actor).Return(rm, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp resdto.ProviderLocationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(27.7, resp.Location.Lat)
		s.Require().NotNil(resp.ETAMinutes)
		s.Equal(12, *resp.ETAMinutes)
	})

	s.Run("error: nothing recorded returns 404", func() {
		s.mockQueries.EXPECT().LastKnownProviderLocation(gomock.Any(), bookingID, s.actor).
			Return(nil, queries.ErrProviderLocationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "no provider location")
	})
}
