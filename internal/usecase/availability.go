package usecase

import (
	"context"
	"time"

	"rentwheels/internal/domain/booking"
	"rentwheels/internal/pkg/errs"

	"github.com/google/uuid"
)

// Availability reports whether a vehicle is free for a requested window and,
// when it is not, the earliest date it frees up again.
type Availability struct {
	Available     bool
	NextAvailable *time.Time
}

// AvailabilityResolver scans confirmed bookings for date-range conflicts.
// Results computed while browsing are advisory only; the submit path runs
// the same check again, because another user may have booked the vehicle in
// between.
type AvailabilityResolver struct {
	bookings BookingReads
}

func NewAvailabilityResolver(bookings BookingReads) *AvailabilityResolver {
	return &AvailabilityResolver{bookings: bookings}
}

// Check reports availability of vehicleID over the half-open window rng.
// nextAvailable is the earliest conflicting drop-off strictly after the
// requested pickup.
func (r *AvailabilityResolver) Check(ctx context.Context, vehicleID uuid.UUID, rng booking.DateRange) (Availability, error) {
	windows, err := r.bookings.ActiveWindowsByVehicle(ctx, vehicleID)
	if err != nil {
		return Availability{}, errs.Wrap(err, "failed to load bookings for availability check")
	}

	var next *time.Time
	for _, w := range windows {
		if !rng.Overlaps(w.Range) {
			continue
		}
		dropoff := w.Range.Dropoff()
		if !dropoff.After(rng.Pickup()) {
			continue
		}
		if next == nil || dropoff.Before(*next) {
			d := dropoff
			next = &d
		}
	}

	if next != nil {
		return Availability{Available: false, NextAvailable: next}, nil
	}
	return Availability{Available: true}, nil
}
