package usecase

import (
	"context"
	"time"

	"rentwheels/internal/domain/booking"
	"rentwheels/internal/domain/draft"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// VehicleView is the read model the catalog accessor returns.
type VehicleView struct {
	ID           uuid.UUID
	Name         string
	RatePerDay   int64
	Seats        int
	City         string
	State        string
	Registration string
}

type VehicleFilter struct {
	City     string
	State    string
	MinSeats int
}

// BookingWindow is the minimal slice of a booking the availability resolver
// scans: its reserved range. Cancelled bookings are excluded at the query.
type BookingWindow struct {
	BookingID uuid.UUID
	Range     booking.DateRange
}

type BookingView struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	VehicleID       uuid.UUID
	VehicleName     string
	PickupLocation  string
	DropoffLocation string
	PickupCity      string
	DropoffCity     string
	PickupState     string
	DropoffState    string
	PickupDate      time.Time
	DropoffDate     time.Time
	PickupTime      string
	DropoffTime     string
	Days            int
	BasePrice       int64
	Surcharge       int64
	ServiceFee      int64
	Discount        int64
	Total           int64
	PaymentMethod   string
	PaymentStatus   string
	PaymentRef      string
	Status          string
	CreatedAt       time.Time
}

type BookingListItem struct {
	ID          uuid.UUID
	VehicleID   uuid.UUID
	VehicleName string
	PickupDate  time.Time
	DropoffDate time.Time
	Total       int64
	Status      string
	CreatedAt   time.Time
}

type VehicleReads interface {
	List(ctx context.Context, filter VehicleFilter) ([]*VehicleView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
}

type BookingReads interface {
	ActiveWindowsByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]BookingWindow, error)
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
}

type BookingWrites interface {
	Create(ctx context.Context, tx pgx.Tx, b *booking.Booking, vehicleName string) error
}

// UnitOfWork runs fn inside one database transaction: commit on nil,
// rollback otherwise. Retryable failures (serialization, deadlock) are
// re-run by the implementation.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

type NotificationJobs interface {
	CreateJob(ctx context.Context, tx pgx.Tx, kind, topic string, payload []byte, runAt time.Time) error
}

// DraftStore is the durable draft contract as seen from the usecases: the
// session machine owns Save; resume/list/discard/complete live here.
type DraftStore interface {
	Save(ctx context.Context, d *draft.Draft) error
	Find(ctx context.Context, userID, draftID uuid.UUID) (*draft.Draft, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*draft.Draft, error)
	Delete(ctx context.Context, userID, draftID uuid.UUID) error
	Complete(ctx context.Context, userID, draftID uuid.UUID) error
}

// PaymentMeta travels with the charge so the provider's dashboard can tie a
// payment back to the booking attempt.
type PaymentMeta struct {
	DraftID     uuid.UUID
	UserID      uuid.UUID
	VehicleName string
}

// PaymentProvider is the opaque online-payment collaborator. Charge blocks
// until the provider reports success (returning its payment reference) or
// failure; the caller bounds it with a timeout.
type PaymentProvider interface {
	Charge(ctx context.Context, amountRupees int64, meta PaymentMeta) (string, error)
}
