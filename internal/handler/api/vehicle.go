package api

import (
	"errors"
	"net/http"

	"rentwheels/internal/domain/booking"
	reqdto "rentwheels/internal/handler/dto/request"
	resdto "rentwheels/internal/handler/dto/response"
	"rentwheels/internal/pkg/errs"
	"rentwheels/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VehicleHandler struct {
	vehicleQueries usecase.VehicleQueries
}

func NewVehicleHandler(vehicleQueries usecase.VehicleQueries) *VehicleHandler {
	return &VehicleHandler{
		vehicleQueries: vehicleQueries,
	}
}

// @Summary List vehicles
// @Description List rentable vehicles, optionally filtered by city, state and seat count
// @Tags vehicles
// @Produce json
// @Param city query string false "Filter by city"
// @Param state query string false "Filter by state"
// @Param min_seats query int false "Minimum seat count"
// @Success 200 {array} resdto.VehicleResponse
// @Failure 400 {object} map[string]string
// @Router /vehicles [get]
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	var q reqdto.VehicleListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	vehicles, err := h.vehicleQueries.List(c.Request.Context(), usecase.VehicleFilter{
		City:     q.City,
		State:    q.State,
		MinSeats: q.MinSeats,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		response[i] = resdto.FromVehicleView(v)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get vehicle
// @Description Get a vehicle by ID
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} resdto.VehicleResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid vehicle ID format",
		})
		return
	}

	v, err := h.vehicleQueries.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrVehicleNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Vehicle not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromVehicleView(v))
}

// @Summary Check vehicle availability
// @Description Check whether a vehicle is free for a date window. Advisory only: submission re-checks.
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param pickup_date query string true "Pickup date (YYYY-MM-DD)"
// @Param dropoff_date query string true "Drop-off date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vehicles/{id}/availability [get]
func (h *VehicleHandler) CheckAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid vehicle ID format",
		})
		return
	}

	var q reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	rng, err := booking.NewDateRange(q.PickupDate, q.DropoffDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Drop-off date must not be before pickup date",
		})
		return
	}

	avail, err := h.vehicleQueries.CheckAvailability(c.Request.Context(), id, rng)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrVehicleNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Vehicle not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailability(avail))
}
