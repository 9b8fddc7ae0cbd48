//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"rentwheels/internal/handler/api"
	resdto "rentwheels/internal/handler/dto/response"
	"rentwheels/internal/pkg/errs"
	"rentwheels/internal/usecase"
	"rentwheels/tests/common/httptest"
	usecasemock "rentwheels/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *usecasemock.MockBookingQueries
	userID      uuid.UUID
	handler     *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = usecasemock.NewMockBookingQueries(s.mockCtrl)
	s.userID = uuid.New()
	s.handler = api.NewBookingHandler(s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Next()
	}

	bookings := s.router.Group("/bookings", authMiddleware)
	bookings.GET("", s.handler.GetUserBookings)
	bookings.GET("/:id", s.handler.GetBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *BookingHandlerTestSuite) bookingView(userID uuid.UUID) *usecase.BookingView {
	return &usecase.BookingView{
		ID:            uuid.New(),
		UserID:        userID,
		VehicleID:     uuid.New(),
		VehicleName:   "Maruti Swift",
		PickupDate:    time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC),
		DropoffDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Days:          2,
		BasePrice:     2600,
		Surcharge:     400,
		Total:         3000,
		PaymentMethod: "cash_on_delivery",
		PaymentStatus: "pending",
		Status:        "confirmed",
	}
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	view := s.bookingView(s.userID)
	s.mockQueries.EXPECT().Get(gomock.Any(), view.ID).Return(view, nil)

	w := httptest.PerformRequest(s.T(), s.router, "GET", "/bookings/"+view.ID.String(), nil, testToken)

	var resp resdto.BookingResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Equal(view.ID, resp.ID)
	s.Equal(int64(3000), resp.Breakdown.Total)
	s.Equal("confirmed", resp.Status)
}

func (s *BookingHandlerTestSuite) TestGetBookingNotFound() {
	id := uuid.New()
	s.mockQueries.EXPECT().Get(gomock.Any(), id).Return(nil, errs.ErrBookingNotFound)

	w := httptest.PerformRequest(s.T(), s.router, "GET", "/bookings/"+id.String(), nil, testToken)
	httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking not found")
}

func (s *BookingHandlerTestSuite) TestGetBookingOwnedByAnotherUser() {
	// Other users' bookings look identical to missing ones.
	view := s.bookingView(uuid.New())
	s.mockQueries.EXPECT().Get(gomock.Any(), view.ID).Return(view, nil)

	w := httptest.PerformRequest(s.T(), s.router, "GET", "/bookings/"+view.ID.String(), nil, testToken)
	httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking not found")
}

func (s *BookingHandlerTestSuite) TestGetBookingRequiresAuth() {
	w := httptest.PerformRequest(s.T(), s.router, "GET", "/bookings/"+uuid.NewString(), nil, "")
	httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Unauthorized")
}

func (s *BookingHandlerTestSuite) TestGetUserBookings() {
	items := []*usecase.BookingListItem{
		{
			ID:          uuid.New(),
			VehicleID:   uuid.New(),
			VehicleName: "Maruti Swift",
			PickupDate:  time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC),
			DropoffDate: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			Total:       3000,
			Status:      "confirmed",
		},
	}
	s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).Return(items, nil)

	w := httptest.PerformRequest(s.T(), s.router, "GET", "/bookings", nil, testToken)

	var resp []resdto.BookingListResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Require().Len(resp, 1)
	s.Equal(int64(3000), resp[0].Total)
}

func TestBookingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}
