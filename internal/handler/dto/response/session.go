package response

import (
	"time"

	"rentwheels/internal/domain/draft"
	"rentwheels/internal/pkg/ptr"

	"github.com/google/uuid"
)

// SessionResponse is the full wizard state returned after every session
// mutation, so the client never has to diff steps itself.
type SessionResponse struct {
	SessionID *uuid.UUID `json:"sessionId,omitempty"`
	DraftID   uuid.UUID  `json:"draftId"`
	Step      string     `json:"step"`

	VehicleID   *uuid.UUID `json:"vehicleId,omitempty"`
	VehicleName string     `json:"vehicleName,omitempty"`
	RatePerDay  int64      `json:"ratePerDay,omitempty"`

	PickupLocation  string     `json:"pickupLocation,omitempty"`
	DropoffLocation string     `json:"dropoffLocation,omitempty"`
	PickupCity      string     `json:"pickupCity,omitempty"`
	DropoffCity     string     `json:"dropoffCity,omitempty"`
	PickupState     string     `json:"pickupState,omitempty"`
	DropoffState    string     `json:"dropoffState,omitempty"`
	PickupDate      *time.Time `json:"pickupDate,omitempty"`
	DropoffDate     *time.Time `json:"dropoffDate,omitempty"`
	PickupTime      string     `json:"pickupTime,omitempty"`
	DropoffTime     string     `json:"dropoffTime,omitempty"`

	FullName  string `json:"fullName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	LicenseNo string `json:"licenseNo,omitempty"`

	PaymentMethod string `json:"paymentMethod,omitempty"`
	CouponCode    string `json:"couponCode,omitempty"`

	Breakdown BreakdownResponse `json:"breakdown"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDraft renders a draft snapshot. sessionID may be uuid.Nil when the
// draft is viewed outside a live session (the drafts listing).
func FromDraft(sessionID uuid.UUID, d draft.Draft) *SessionResponse {
	resp := &SessionResponse{
		DraftID:         d.ID,
		Step:            d.Step.String(),
		VehicleName:     d.VehicleName,
		RatePerDay:      d.RatePerDay,
		PickupLocation:  d.PickupLocation,
		DropoffLocation: d.DropoffLocation,
		PickupCity:      d.PickupCity,
		DropoffCity:     d.DropoffCity,
		PickupState:     d.PickupState,
		DropoffState:    d.DropoffState,
		PickupTime:      d.PickupTime,
		DropoffTime:     d.DropoffTime,
		FullName:        d.FullName,
		Phone:           d.Phone,
		Email:           d.Email,
		LicenseNo:       d.LicenseNo,
		PaymentMethod:   string(d.PaymentMethod),
		CouponCode:      d.CouponCode,
		Breakdown: BreakdownResponse{
			Days:                d.Breakdown.Days,
			BasePrice:           d.Breakdown.BasePrice,
			InterstateSurcharge: d.Breakdown.InterstateSurcharge,
			ServiceFee:          d.Breakdown.ServiceFee,
			Discount:            d.Breakdown.Discount,
			Total:               d.Breakdown.Total,
		},
		UpdatedAt: d.UpdatedAt,
	}

	if sessionID != uuid.Nil {
		resp.SessionID = ptr.To(sessionID)
	}
	if d.HasVehicle() {
		resp.VehicleID = ptr.To(d.VehicleID)
	}
	if !d.PickupDate.IsZero() {
		resp.PickupDate = ptr.To(d.PickupDate)
	}
	if !d.DropoffDate.IsZero() {
		resp.DropoffDate = ptr.To(d.DropoffDate)
	}

	return resp
}

// DraftListResponse is the resumable-drafts listing: enough to render a
// "continue where you left off" card without loading the full draft.
type DraftListResponse struct {
	DraftID     uuid.UUID  `json:"draftId"`
	Step        string     `json:"step"`
	VehicleName string     `json:"vehicleName,omitempty"`
	PickupDate  *time.Time `json:"pickupDate,omitempty"`
	DropoffDate *time.Time `json:"dropoffDate,omitempty"`
	Total       int64      `json:"total"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func FromDraftListItem(d *draft.Draft) *DraftListResponse {
	resp := &DraftListResponse{
		DraftID:     d.ID,
		Step:        d.Step.String(),
		VehicleName: d.VehicleName,
		Total:       d.Breakdown.Total,
		UpdatedAt:   d.UpdatedAt,
	}
	if !d.PickupDate.IsZero() {
		resp.PickupDate = ptr.To(d.PickupDate)
	}
	if !d.DropoffDate.IsZero() {
		resp.DropoffDate = ptr.To(d.DropoffDate)
	}
	return resp
}
