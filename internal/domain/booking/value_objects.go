package booking

import (
	"errors"
	"fmt"
	"time"
)

var ErrDropoffBeforePickup = errors.New("drop-off date must not be before pickup date")

const day = 24 * time.Hour

// DateRange is the half-open window [pickup, dropoff) a vehicle is reserved
// for, compared at day granularity. A drop-off equal to pickup is a valid
// single-day rental, not an error.
type DateRange struct {
	pickup  time.Time
	dropoff time.Time
}

func NewDateRange(pickup, dropoff time.Time) (DateRange, error) {
	pickup = pickup.Truncate(day)
	dropoff = dropoff.Truncate(day)
	if dropoff.Before(pickup) {
		return DateRange{}, ErrDropoffBeforePickup
	}

	return DateRange{
		pickup:  pickup,
		dropoff: dropoff,
	}, nil
}

func (r DateRange) Pickup() time.Time {
	return r.pickup
}

func (r DateRange) Dropoff() time.Time {
	return r.dropoff
}

// Days is the billable rental length. Same-day ranges bill as one day.
func (r DateRange) Days() int {
	d := r.dropoff.Sub(r.pickup)
	days := int((d + day - 1) / day)
	if days < 1 {
		return 1
	}
	return days
}

func (r DateRange) Overlaps(other DateRange) bool {
	return r.pickup.Before(other.dropoff) && r.dropoff.After(other.pickup)
}

func (r DateRange) IsZero() bool {
	return r.pickup.IsZero() && r.dropoff.IsZero()
}

func (r DateRange) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", r.pickup.Format(time.RFC3339), r.dropoff.Format(time.RFC3339))
}
