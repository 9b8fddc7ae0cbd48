package response

import (
	"time"

	"rentwheels/internal/usecase"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID              uuid.UUID         `json:"id"`
	VehicleID       uuid.UUID         `json:"vehicleId"`
	VehicleName     string            `json:"vehicleName"`
	PickupLocation  string            `json:"pickupLocation"`
	DropoffLocation string            `json:"dropoffLocation"`
	PickupCity      string            `json:"pickupCity,omitempty"`
	DropoffCity     string            `json:"dropoffCity,omitempty"`
	PickupState     string            `json:"pickupState,omitempty"`
	DropoffState    string            `json:"dropoffState,omitempty"`
	PickupDate      time.Time         `json:"pickupDate"`
	DropoffDate     time.Time         `json:"dropoffDate"`
	PickupTime      string            `json:"pickupTime,omitempty"`
	DropoffTime     string            `json:"dropoffTime,omitempty"`
	Breakdown       BreakdownResponse `json:"breakdown"`
	PaymentMethod   string            `json:"paymentMethod"`
	PaymentStatus   string            `json:"paymentStatus"`
	PaymentRef      string            `json:"paymentRef,omitempty"`
	Status          string            `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`
}

type BreakdownResponse struct {
	Days                int   `json:"days"`
	BasePrice           int64 `json:"basePrice"`
	InterstateSurcharge int64 `json:"interstateSurcharge"`
	ServiceFee          int64 `json:"serviceFee"`
	Discount            int64 `json:"discount"`
	Total               int64 `json:"total"`
}

func FromBookingView(v *usecase.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:              v.ID,
		VehicleID:       v.VehicleID,
		VehicleName:     v.VehicleName,
		PickupLocation:  v.PickupLocation,
		DropoffLocation: v.DropoffLocation,
		PickupCity:      v.PickupCity,
		DropoffCity:     v.DropoffCity,
		PickupState:     v.PickupState,
		DropoffState:    v.DropoffState,
		PickupDate:      v.PickupDate,
		DropoffDate:     v.DropoffDate,
		PickupTime:      v.PickupTime,
		DropoffTime:     v.DropoffTime,
		Breakdown: BreakdownResponse{
			Days:                v.Days,
			BasePrice:           v.BasePrice,
			InterstateSurcharge: v.Surcharge,
			ServiceFee:          v.ServiceFee,
			Discount:            v.Discount,
			Total:               v.Total,
		},
		PaymentMethod: v.PaymentMethod,
		PaymentStatus: v.PaymentStatus,
		PaymentRef:    v.PaymentRef,
		Status:        v.Status,
		CreatedAt:     v.CreatedAt,
	}
}

type BookingListResponse struct {
	ID          uuid.UUID `json:"id"`
	VehicleID   uuid.UUID `json:"vehicleId"`
	VehicleName string    `json:"vehicleName"`
	PickupDate  time.Time `json:"pickupDate"`
	DropoffDate time.Time `json:"dropoffDate"`
	Total       int64     `json:"total"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromBookingListItem(v *usecase.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:          v.ID,
		VehicleID:   v.VehicleID,
		VehicleName: v.VehicleName,
		PickupDate:  v.PickupDate,
		DropoffDate: v.DropoffDate,
		Total:       v.Total,
		Status:      v.Status,
		CreatedAt:   v.CreatedAt,
	}
}
