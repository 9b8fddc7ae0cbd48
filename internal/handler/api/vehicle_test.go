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
	"rentwheels/tests/common/builder"
	"rentwheels/tests/common/httptest"
	usecasemock "rentwheels/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type VehicleHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *usecasemock.MockVehicleQueries
	handler     *api.VehicleHandler
}

func (s *VehicleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = usecasemock.NewMockVehicleQueries(s.mockCtrl)
	s.handler = api.NewVehicleHandler(s.mockQueries)

	s.router.GET("/vehicles", s.handler.ListVehicles)
	s.router.GET("/vehicles/:id", s.handler.GetVehicle)
	s.router.GET("/vehicles/:id/availability", s.handler.CheckAvailability)
}

func (s *VehicleHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *VehicleHandlerTestSuite) TestListVehicles() {
	view := builder.NewDraftBuilder().BuildVehicleView()
	s.mockQueries.EXPECT().
		List(gomock.Any(), usecase.VehicleFilter{City: "Bengaluru", MinSeats: 5}).
		Return([]*usecase.VehicleView{view}, nil)

	w := httptest.PerformRequest(s.T(), s.router, "GET", "/vehicles?city=Bengaluru&min_seats=5", nil, "")

	var resp []resdto.VehicleResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Require().Len(resp, 1)
	s.Equal(view.ID, resp[0].ID)
	s.Equal(view.Name, resp[0].Name)
}

func (s *VehicleHandlerTestSuite) TestListVehiclesEmpty() {
	s.mockQueries.EXPECT().List(gomock.Any(), usecase.VehicleFilter{}).Return(nil, nil)

	w := httptest.PerformRequest(s.T(), s.router, "GET", "/vehicles", nil, "")

	var resp []resdto.VehicleResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Empty(resp)
}

func (s *VehicleHandlerTestSuite) TestGetVehicle() {
	view := builder.NewDraftBuilder().BuildVehicleView()
	s.mockQueries.EXPECT().Get(gomock.Any(), view.ID).Return(view, nil)

	w := httptest.PerformRequest(s.T(), s.router, "GET", "/vehicles/"+view.ID.String(), nil, "")

	var resp resdto.VehicleResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Equal(view.RatePerDay, resp.RatePerDay)
}

func (s *VehicleHandlerTestSuite) TestGetVehicleNotFound() {
	id := uuid.New()
	s.mockQueries.EXPECT().Get(gomock.Any(), id).Return(nil, errs.ErrVehicleNotFound)

	w := httptest.PerformRequest(s.T(), s.router, "GET", "/vehicles/"+id.String(), nil, "")
	httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Vehicle not found")
}

func (s *VehicleHandlerTestSuite) TestGetVehicleBadID() {
	w := httptest.PerformRequest(s.T(), s.router, "GET", "/vehicles/not-a-uuid", nil, "")
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid vehicle ID")
}

func (s *VehicleHandlerTestSuite) TestCheckAvailabilityFree() {
	id := uuid.New()
	s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), id, gomock.Any()).
		Return(usecase.Availability{Available: true}, nil)

	w := httptest.PerformRequest(s.T(), s.router, "GET",
		"/vehicles/"+id.String()+"/availability?pickup_date=2024-12-29&dropoff_date=2024-12-31", nil, "")

	var resp resdto.AvailabilityResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.True(resp.Available)
	s.Nil(resp.NextAvailable)
}

func (s *VehicleHandlerTestSuite) TestCheckAvailabilityConflict() {
	id := uuid.New()
	next := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), id, gomock.Any()).
		Return(usecase.Availability{Available: false, NextAvailable: &next}, nil)

	w := httptest.PerformRequest(s.T(), s.router, "GET",
		"/vehicles/"+id.String()+"/availability?pickup_date=2024-12-29&dropoff_date=2024-12-31", nil, "")

	var resp resdto.AvailabilityResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.False(resp.Available)
	s.Require().NotNil(resp.NextAvailable)
	s.Equal(next, *resp.NextAvailable)
}

func (s *VehicleHandlerTestSuite) TestCheckAvailabilityReversedDates() {
	id := uuid.New()

	w := httptest.PerformRequest(s.T(), s.router, "GET",
		"/vehicles/"+id.String()+"/availability?pickup_date=2024-12-31&dropoff_date=2024-12-29", nil, "")
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Drop-off date must not be before")
}

func (s *VehicleHandlerTestSuite) TestCheckAvailabilityMissingDates() {
	id := uuid.New()

	w := httptest.PerformRequest(s.T(), s.router, "GET",
		"/vehicles/"+id.String()+"/availability", nil, "")
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid query parameters")
}

func TestVehicleHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(VehicleHandlerTestSuite))
}
