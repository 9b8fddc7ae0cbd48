package response

import (
	"time"

	"rentwheels/internal/usecase"

	"github.com/google/uuid"
)

type VehicleResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	RatePerDay   int64     `json:"ratePerDay"`
	Seats        int       `json:"seats"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Registration string    `json:"registration"`
}

func FromVehicleView(v *usecase.VehicleView) *VehicleResponse {
	return &VehicleResponse{
		ID:           v.ID,
		Name:         v.Name,
		RatePerDay:   v.RatePerDay,
		Seats:        v.Seats,
		City:         v.City,
		State:        v.State,
		Registration: v.Registration,
	}
}

type AvailabilityResponse struct {
	Available     bool       `json:"available"`
	NextAvailable *time.Time `json:"nextAvailable,omitempty"`
}

func FromAvailability(a usecase.Availability) *AvailabilityResponse {
	return &AvailabilityResponse{
		Available:     a.Available,
		NextAvailable: a.NextAvailable,
	}
}
