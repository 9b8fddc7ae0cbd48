package request

import (
	"strings"
	"time"

	"rentwheels/internal/session"
)

type ResumeSessionRequest struct {
	DraftID string `json:"draft_id" binding:"required,uuid"`
}

type SelectVehicleRequest struct {
	VehicleID string `json:"vehicle_id" binding:"required,uuid"`
}

type TripDetailsRequest struct {
	PickupLocation  string    `json:"pickup_location" binding:"required"`
	DropoffLocation string    `json:"dropoff_location" binding:"required"`
	PickupCity      string    `json:"pickup_city"`
	DropoffCity     string    `json:"dropoff_city"`
	PickupState     string    `json:"pickup_state"`
	DropoffState    string    `json:"dropoff_state"`
	PickupDate      time.Time `json:"pickup_date" binding:"required"`
	DropoffDate     time.Time `json:"dropoff_date" binding:"required"`
	PickupTime      string    `json:"pickup_time"`
	DropoffTime     string    `json:"dropoff_time"`
}

// ToInput maps the request onto a trip edit. State names pass through
// verbatim: pricing compares them without trimming or case folding.
func (r TripDetailsRequest) ToInput() session.TripDetails {
	return session.TripDetails{
		PickupLocation:  strings.TrimSpace(r.PickupLocation),
		DropoffLocation: strings.TrimSpace(r.DropoffLocation),
		PickupCity:      strings.TrimSpace(r.PickupCity),
		DropoffCity:     strings.TrimSpace(r.DropoffCity),
		PickupState:     r.PickupState,
		DropoffState:    r.DropoffState,
		PickupDate:      r.PickupDate,
		DropoffDate:     r.DropoffDate,
		PickupTime:      r.PickupTime,
		DropoffTime:     r.DropoffTime,
	}
}

type PersonalInfoRequest struct {
	FullName  string `json:"full_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	LicenseNo string `json:"license_no"`
}

func (r PersonalInfoRequest) ToInput() session.PersonalInfo {
	return session.PersonalInfo{
		FullName:  strings.TrimSpace(r.FullName),
		Phone:     strings.TrimSpace(r.Phone),
		Email:     strings.TrimSpace(r.Email),
		LicenseNo: strings.TrimSpace(r.LicenseNo),
	}
}

type PaymentMethodRequest struct {
	Method string `json:"method" binding:"required"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

func (r ApplyCouponRequest) TrimmedCode() string {
	return strings.TrimSpace(r.Code)
}
