//go:build unit

package booking_test

import (
	"testing"
	"time"

	"rentwheels/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, pickup, dropoff time.Time) booking.DateRange {
	t.Helper()
	r, err := booking.NewDateRange(pickup, dropoff)
	require.NoError(t, err)
	return r
}

func TestNewDateRange(t *testing.T) {
	t.Run("rejects dropoff before pickup", func(t *testing.T) {
		_, err := booking.NewDateRange(date(2024, 7, 5), date(2024, 7, 1))
		assert.ErrorIs(t, err, booking.ErrDropoffBeforePickup)
	})

	t.Run("same-day range is valid", func(t *testing.T) {
		r, err := booking.NewDateRange(date(2024, 7, 1), date(2024, 7, 1))
		require.NoError(t, err)
		assert.Equal(t, 1, r.Days())
	})

	t.Run("truncates times to day granularity", func(t *testing.T) {
		r, err := booking.NewDateRange(
			time.Date(2024, 7, 1, 18, 30, 0, 0, time.UTC),
			time.Date(2024, 7, 3, 6, 15, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.Equal(t, date(2024, 7, 1), r.Pickup())
		assert.Equal(t, date(2024, 7, 3), r.Dropoff())
	})
}

func TestDateRangeDays(t *testing.T) {
	cases := []struct {
		name    string
		pickup  time.Time
		dropoff time.Time
		days    int
	}{
		{"two full days", date(2024, 12, 29), date(2024, 12, 31), 2},
		{"one day", date(2024, 7, 1), date(2024, 7, 2), 1},
		{"same day bills one", date(2024, 7, 1), date(2024, 7, 1), 1},
		{"week", date(2024, 7, 1), date(2024, 7, 8), 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.days, mustRange(t, tc.pickup, tc.dropoff).Days())
		})
	}
}

func TestDateRangeOverlaps(t *testing.T) {
	// Reference booking holds July 10 to July 15.
	held := mustRange(t, date(2024, 7, 10), date(2024, 7, 15))

	cases := []struct {
		name     string
		pickup   time.Time
		dropoff  time.Time
		overlaps bool
	}{
		{"entirely before", date(2024, 7, 1), date(2024, 7, 5), false},
		{"entirely after", date(2024, 7, 20), date(2024, 7, 25), false},
		{"back to back, dropoff at held pickup", date(2024, 7, 5), date(2024, 7, 10), false},
		{"back to back, pickup at held dropoff", date(2024, 7, 15), date(2024, 7, 20), false},
		{"overlapping front edge", date(2024, 7, 8), date(2024, 7, 11), true},
		{"overlapping back edge", date(2024, 7, 14), date(2024, 7, 18), true},
		{"contained inside", date(2024, 7, 11), date(2024, 7, 13), true},
		{"containing", date(2024, 7, 5), date(2024, 7, 20), true},
		{"identical window", date(2024, 7, 10), date(2024, 7, 15), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			probe := mustRange(t, tc.pickup, tc.dropoff)
			assert.Equal(t, tc.overlaps, probe.Overlaps(held))
			assert.Equal(t, tc.overlaps, held.Overlaps(probe), "overlap must be symmetric")
		})
	}
}

func TestDateRangeToTstzrange(t *testing.T) {
	r := mustRange(t, date(2024, 7, 10), date(2024, 7, 15))
	assert.Equal(t, "[2024-07-10T00:00:00Z,2024-07-15T00:00:00Z)", r.ToTstzrange())
}
