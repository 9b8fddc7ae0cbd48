package request

import "time"

// VehicleListQuery binds the catalog filter query string.
type VehicleListQuery struct {
	City     string `form:"city"`
	State    string `form:"state"`
	MinSeats int    `form:"min_seats" binding:"omitempty,min=1"`
}

// AvailabilityQuery binds the browse-time availability probe.
type AvailabilityQuery struct {
	PickupDate  time.Time `form:"pickup_date" binding:"required" time_format:"2006-01-02"`
	DropoffDate time.Time `form:"dropoff_date" binding:"required" time_format:"2006-01-02"`
}
