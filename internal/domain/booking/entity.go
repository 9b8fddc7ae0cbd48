package booking

import (
	"errors"
	"time"

	"rentwheels/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrNegativeTotal        = errors.New("booking total cannot be negative")
	ErrInvalidStatus        = errors.New("invalid booking status")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// Trip captures the journey details confirmed at submission. Once a booking
// exists these fields are never mutated by the core; status transitions are
// administrative operations outside it.
type Trip struct {
	PickupLocation  string
	DropoffLocation string
	PickupCity      string
	DropoffCity     string
	PickupState     string
	DropoffState    string
	Range           DateRange
	PickupTime      string
	DropoffTime     string
}

type Booking struct {
	id            uuid.UUID
	userID        uuid.UUID
	vehicleID     uuid.UUID
	trip          Trip
	breakdown     pricing.Breakdown
	method        PaymentMethod
	paymentStatus PaymentStatus
	paymentRef    string
	status        Status
	createdAt     time.Time
}

func NewBooking(
	userID, vehicleID uuid.UUID,
	trip Trip,
	breakdown pricing.Breakdown,
	method PaymentMethod,
	paymentStatus PaymentStatus,
	paymentRef string,
	createdAt time.Time,
) (*Booking, error) {
	if breakdown.Total < 0 {
		return nil, ErrNegativeTotal
	}
	if !method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}
	if !paymentStatus.IsValid() {
		return nil, ErrInvalidPaymentStatus
	}

	return &Booking{
		id:            uuid.New(),
		userID:        userID,
		vehicleID:     vehicleID,
		trip:          trip,
		breakdown:     breakdown,
		method:        method,
		paymentStatus: paymentStatus,
		paymentRef:    paymentRef,
		status:        StatusBooked,
		createdAt:     createdAt,
	}, nil
}

func Reconstruct(
	id, userID, vehicleID uuid.UUID,
	trip Trip,
	breakdown pricing.Breakdown,
	method PaymentMethod,
	paymentStatus PaymentStatus,
	paymentRef string,
	status Status,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		userID:        userID,
		vehicleID:     vehicleID,
		trip:          trip,
		breakdown:     breakdown,
		method:        method,
		paymentStatus: paymentStatus,
		paymentRef:    paymentRef,
		status:        status,
		createdAt:     createdAt,
	}
}

func (b *Booking) IsActive() bool {
	return b.status == StatusBooked || b.status == StatusConfirmed
}

func (b *Booking) ID() uuid.UUID                 { return b.id }
func (b *Booking) UserID() uuid.UUID             { return b.userID }
func (b *Booking) VehicleID() uuid.UUID          { return b.vehicleID }
func (b *Booking) Trip() Trip                    { return b.trip }
func (b *Booking) Breakdown() pricing.Breakdown  { return b.breakdown }
func (b *Booking) Method() PaymentMethod         { return b.method }
func (b *Booking) PaymentStatus() PaymentStatus  { return b.paymentStatus }
func (b *Booking) PaymentRef() string            { return b.paymentRef }
func (b *Booking) Status() Status                { return b.status }
func (b *Booking) CreatedAt() time.Time          { return b.createdAt }
