package writerepo

import (
	"context"
	"errors"

	"rentwheels/internal/domain/booking"
	"rentwheels/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation    = "23505"
	pgErrCodeExclusionViolation = "23P01"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

// Create inserts the confirmed booking. The reserved tstzrange column carries
// an exclusion constraint over (vehicle_id, reserved) for non-cancelled rows:
// the first writer wins and the loser gets KindConflict.
func (r *BookingRepository) Create(ctx context.Context, tx pgx.Tx, b *booking.Booking, vehicleName string) error {
	query := `INSERT INTO bookings (
			id, user_id, vehicle_id, vehicle_name,
			pickup_location, dropoff_location, pickup_city, dropoff_city,
			pickup_state, dropoff_state, pickup_date, dropoff_date,
			pickup_time, dropoff_time, days, base_price, surcharge, service_fee,
			discount, total, payment_method, payment_status, payment_ref, status,
			created_at, reserved
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
		)`

	trip := b.Trip()
	bd := b.Breakdown()

	_, err := tx.Exec(ctx, query,
		b.ID(), b.UserID(), b.VehicleID(), vehicleName,
		trip.PickupLocation, trip.DropoffLocation, trip.PickupCity, trip.DropoffCity,
		trip.PickupState, trip.DropoffState, trip.Range.Pickup(), trip.Range.Dropoff(),
		trip.PickupTime, trip.DropoffTime, bd.Days, bd.BasePrice, bd.InterstateSurcharge, bd.ServiceFee,
		bd.Discount, bd.Total, string(b.Method()), string(b.PaymentStatus()), b.PaymentRef(), string(b.Status()),
		b.CreatedAt(), trip.Range.ToTstzrange(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgErrCodeExclusionViolation:
				return infra.WrapRepoErr("vehicle already booked for an overlapping range", err, infra.KindConflict)
			case pgErrCodeUniqueViolation:
				return infra.WrapRepoErr("duplicate booking id", err, infra.KindDuplicateKey)
			}
		}
		return infra.WrapRepoErr("failed to create booking", err)
	}

	return nil
}
