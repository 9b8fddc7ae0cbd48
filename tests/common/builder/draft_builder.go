//go:build unit

package builder

import (
	"time"

	"rentwheels/internal/domain/booking"
	"rentwheels/internal/domain/draft"
	"rentwheels/internal/usecase"

	"github.com/google/uuid"
)

// DraftBuilder assembles booking drafts at any wizard step. Defaults describe
// a two-day interstate trip from Bengaluru to Chennai.
type DraftBuilder struct {
	UserID        uuid.UUID
	VehicleID     uuid.UUID
	VehicleName   string
	RatePerDay    int64
	Seats         int
	PickupCity    string
	DropoffCity   string
	PickupState   string
	DropoffState  string
	PickupDate    time.Time
	DropoffDate   time.Time
	FullName      string
	Phone         string
	PaymentMethod booking.PaymentMethod
	CouponCode    string
	Now           time.Time
}

func NewDraftBuilder() *DraftBuilder {
	now := time.Date(2024, 12, 28, 10, 0, 0, 0, time.UTC)
	return &DraftBuilder{
		UserID:        uuid.New(),
		VehicleID:     uuid.New(),
		VehicleName:   "Maruti Swift",
		RatePerDay:    1300,
		Seats:         5,
		PickupCity:    "Bengaluru",
		DropoffCity:   "Chennai",
		PickupState:   "Karnataka",
		DropoffState:  "Tamil Nadu",
		PickupDate:    time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC),
		DropoffDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		FullName:      "Asha Rao",
		Phone:         "9876543210",
		PaymentMethod: booking.PaymentCashOnDelivery,
		Now:           now,
	}
}

// Fluent builder methods
func (b *DraftBuilder) WithUserID(id uuid.UUID) *DraftBuilder {
	b.UserID = id
	return b
}

func (b *DraftBuilder) WithVehicleID(id uuid.UUID) *DraftBuilder {
	b.VehicleID = id
	return b
}

func (b *DraftBuilder) WithRate(rate int64) *DraftBuilder {
	b.RatePerDay = rate
	return b
}

func (b *DraftBuilder) WithStates(pickup, dropoff string) *DraftBuilder {
	b.PickupState = pickup
	b.DropoffState = dropoff
	return b
}

func (b *DraftBuilder) WithDates(pickup, dropoff time.Time) *DraftBuilder {
	b.PickupDate = pickup
	b.DropoffDate = dropoff
	return b
}

func (b *DraftBuilder) WithPaymentMethod(m booking.PaymentMethod) *DraftBuilder {
	b.PaymentMethod = m
	return b
}

func (b *DraftBuilder) WithCoupon(code string) *DraftBuilder {
	b.CouponCode = code
	return b
}

// BuildEmpty returns a draft as Start creates it, before any selection.
func (b *DraftBuilder) BuildEmpty() *draft.Draft {
	return draft.New(b.UserID, b.Now)
}

// BuildAtReview returns a draft with every step filled in, positioned at the
// review step and ready to submit.
func (b *DraftBuilder) BuildAtReview() *draft.Draft {
	d := draft.New(b.UserID, b.Now)
	d.Step = draft.StepReviewingPayment
	d.VehicleID = b.VehicleID
	d.VehicleName = b.VehicleName
	d.RatePerDay = b.RatePerDay
	d.PickupLocation = b.PickupCity + " Airport"
	d.DropoffLocation = b.DropoffCity + " Central"
	d.PickupCity = b.PickupCity
	d.DropoffCity = b.DropoffCity
	d.PickupState = b.PickupState
	d.DropoffState = b.DropoffState
	d.PickupDate = b.PickupDate
	d.DropoffDate = b.DropoffDate
	d.PickupTime = "10:00"
	d.DropoffTime = "18:00"
	d.FullName = b.FullName
	d.Phone = b.Phone
	d.PaymentMethod = b.PaymentMethod
	d.CouponCode = b.CouponCode
	return d
}

func (b *DraftBuilder) BuildVehicleView() *usecase.VehicleView {
	return &usecase.VehicleView{
		ID:           b.VehicleID,
		Name:         b.VehicleName,
		RatePerDay:   b.RatePerDay,
		Seats:        b.Seats,
		City:         b.PickupCity,
		State:        b.PickupState,
		Registration: "KA-01-AB-1234",
	}
}
