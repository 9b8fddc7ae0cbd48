package readstore

import (
	"context"
	"errors"
	"time"

	"rentwheels/internal/domain/booking"
	"rentwheels/internal/infra"
	"rentwheels/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingReadStore struct {
	db *pgxpool.Pool
}

func NewBookingReadStore(db *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{db: db}
}

// ActiveWindowsByVehicle returns the reserved ranges of every non-cancelled
// booking for the vehicle. The availability resolver does the overlap math.
func (r *BookingReadStore) ActiveWindowsByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]usecase.BookingWindow, error) {
	query := `SELECT id, pickup_date, dropoff_date
		FROM bookings
		WHERE vehicle_id = $1 AND status <> 'cancelled'
		ORDER BY pickup_date`

	rows, err := r.db.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking windows", err)
	}
	defer rows.Close()

	var windows []usecase.BookingWindow
	for rows.Next() {
		var (
			id              uuid.UUID
			pickup, dropoff time.Time
		)
		if err := rows.Scan(&id, &pickup, &dropoff); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking window", err)
		}

		rng, err := booking.NewDateRange(pickup, dropoff)
		if err != nil {
			return nil, infra.WrapRepoErr("stored booking has invalid range", err)
		}
		windows = append(windows, usecase.BookingWindow{BookingID: id, Range: rng})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking windows", err)
	}

	return windows, nil
}

const bookingColumns = `id, user_id, vehicle_id, vehicle_name,
	pickup_location, dropoff_location, pickup_city, dropoff_city,
	pickup_state, dropoff_state, pickup_date, dropoff_date,
	pickup_time, dropoff_time, days, base_price, surcharge, service_fee,
	discount, total, payment_method, payment_status, payment_ref, status,
	created_at`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*usecase.BookingView, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var v usecase.BookingView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.UserID, &v.VehicleID, &v.VehicleName,
		&v.PickupLocation, &v.DropoffLocation, &v.PickupCity, &v.DropoffCity,
		&v.PickupState, &v.DropoffState, &v.PickupDate, &v.DropoffDate,
		&v.PickupTime, &v.DropoffTime, &v.Days, &v.BasePrice, &v.Surcharge, &v.ServiceFee,
		&v.Discount, &v.Total, &v.PaymentMethod, &v.PaymentStatus, &v.PaymentRef, &v.Status,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return &v, nil
}

func (r *BookingReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*usecase.BookingListItem, error) {
	query := `SELECT id, vehicle_id, vehicle_name, pickup_date, dropoff_date, total, status, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list user bookings", err)
	}
	defer rows.Close()

	var items []*usecase.BookingListItem
	for rows.Next() {
		var item usecase.BookingListItem
		if err := rows.Scan(&item.ID, &item.VehicleID, &item.VehicleName, &item.PickupDate, &item.DropoffDate, &item.Total, &item.Status, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking list rows", err)
	}

	return items, nil
}
