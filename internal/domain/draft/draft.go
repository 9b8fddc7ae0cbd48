package draft

import (
	"errors"
	"time"

	"rentwheels/internal/domain/booking"
	"rentwheels/internal/domain/pricing"

	"github.com/google/uuid"
)

// ValidationError reports a failed step gate. It is user-correctable and
// never escapes the session layer as a generic error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

var (
	ErrNoVehicleSelected = errors.New("no vehicle selected")
	ErrNoPaymentMethod   = errors.New("no payment method selected")
)

// Draft is the booking under construction. It is owned by exactly one user,
// serialized whole on every save (last write wins on the same id), and
// either discarded explicitly or completed into a Booking.
//
// Fields are exported because the draft crosses the persistence boundary as
// JSON; every mutation still goes through the session machine.
type Draft struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`
	Step   Step      `json:"step"`

	VehicleID   uuid.UUID `json:"vehicleId,omitempty"`
	VehicleName string    `json:"vehicleName,omitempty"`
	RatePerDay  int64     `json:"ratePerDay,omitempty"`

	PickupLocation  string    `json:"pickupLocation,omitempty"`
	DropoffLocation string    `json:"dropoffLocation,omitempty"`
	PickupCity      string    `json:"pickupCity,omitempty"`
	DropoffCity     string    `json:"dropoffCity,omitempty"`
	PickupState     string    `json:"pickupState,omitempty"`
	DropoffState    string    `json:"dropoffState,omitempty"`
	PickupDate      time.Time `json:"pickupDate,omitempty"`
	DropoffDate     time.Time `json:"dropoffDate,omitempty"`
	PickupTime      string    `json:"pickupTime,omitempty"`
	DropoffTime     string    `json:"dropoffTime,omitempty"`

	FullName  string `json:"fullName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	LicenseNo string `json:"licenseNo,omitempty"`

	PaymentMethod booking.PaymentMethod `json:"paymentMethod,omitempty"`
	CouponCode    string                `json:"couponCode,omitempty"`

	Breakdown pricing.Breakdown `json:"breakdown"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func New(userID uuid.UUID, now time.Time) *Draft {
	return &Draft{
		ID:        uuid.New(),
		UserID:    userID,
		Step:      StepSelectingVehicle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (d *Draft) HasVehicle() bool {
	return d.VehicleID != uuid.Nil
}

// DateRange builds the requested rental window from the trip fields.
func (d *Draft) DateRange() (booking.DateRange, error) {
	return booking.NewDateRange(d.PickupDate, d.DropoffDate)
}

// ValidateStep checks the gate for advancing past the given step. A nil
// return means the step's data is complete.
func (d *Draft) ValidateStep(step Step) error {
	switch step {
	case StepSelectingVehicle:
		if !d.HasVehicle() {
			return ValidationError{Field: "vehicle", Reason: "select a vehicle to continue"}
		}
	case StepEnteringTripDetails:
		if d.PickupLocation == "" {
			return ValidationError{Field: "pickupLocation", Reason: "pickup location is required"}
		}
		if d.DropoffLocation == "" {
			return ValidationError{Field: "dropoffLocation", Reason: "drop-off location is required"}
		}
		if d.PickupDate.IsZero() || d.DropoffDate.IsZero() {
			return ValidationError{Field: "dates", Reason: "pickup and drop-off dates are required"}
		}
		if d.DropoffDate.Before(d.PickupDate) {
			return ValidationError{Field: "dropoffDate", Reason: "drop-off date must not be before pickup date"}
		}
	case StepEnteringPersonalInfo:
		if d.FullName == "" {
			return ValidationError{Field: "fullName", Reason: "name is required"}
		}
		if d.Phone == "" {
			return ValidationError{Field: "phone", Reason: "phone number is required"}
		}
	case StepReviewingPayment:
		if !d.HasVehicle() {
			return ErrNoVehicleSelected
		}
		if !d.PaymentMethod.IsValid() {
			return ErrNoPaymentMethod
		}
	}
	return nil
}

// Trip assembles the immutable trip record for booking creation.
func (d *Draft) Trip() (booking.Trip, error) {
	rng, err := d.DateRange()
	if err != nil {
		return booking.Trip{}, err
	}

	return booking.Trip{
		PickupLocation:  d.PickupLocation,
		DropoffLocation: d.DropoffLocation,
		PickupCity:      d.PickupCity,
		DropoffCity:     d.DropoffCity,
		PickupState:     d.PickupState,
		DropoffState:    d.DropoffState,
		Range:           rng,
		PickupTime:      d.PickupTime,
		DropoffTime:     d.DropoffTime,
	}, nil
}

// PricingMode mirrors the product's two flows: interstate trips are quoted
// with the allowance only, local trips carry the flat service fee.
func (d *Draft) PricingMode() pricing.Mode {
	if d.PickupState != "" && d.DropoffState != "" && d.PickupState != d.DropoffState {
		return pricing.ModeInterstateOnly
	}
	return pricing.ModeStandard
}
