//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"rentwheels/internal/domain/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *pricing.Engine {
	return pricing.NewEngine(400, 50, nil)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestQuote(t *testing.T) {
	e := newEngine()

	t.Run("interstate two-day trip without service fee", func(t *testing.T) {
		bd, err := e.Quote(1300, date(2024, 12, 29), date(2024, 12, 31), "Karnataka", "Tamil Nadu", "", pricing.ModeInterstateOnly)
		require.NoError(t, err)

		assert.Equal(t, 2, bd.Days)
		assert.Equal(t, int64(2600), bd.BasePrice)
		assert.Equal(t, int64(400), bd.InterstateSurcharge)
		assert.Equal(t, int64(0), bd.ServiceFee)
		assert.Equal(t, int64(0), bd.Discount)
		assert.Equal(t, int64(3000), bd.Total)
	})

	t.Run("coupon cancels out service fee on a one-day local trip", func(t *testing.T) {
		bd, err := e.Quote(500, date(2024, 7, 1), date(2024, 7, 2), "Karnataka", "Karnataka", "WELCOME50", pricing.ModeStandard)
		require.NoError(t, err)

		assert.Equal(t, 1, bd.Days)
		assert.Equal(t, int64(500), bd.BasePrice)
		assert.Equal(t, int64(0), bd.InterstateSurcharge)
		assert.Equal(t, int64(50), bd.ServiceFee)
		assert.Equal(t, int64(50), bd.Discount)
		assert.Equal(t, int64(500), bd.Total)
	})

	t.Run("same-day rental bills one day", func(t *testing.T) {
		bd, err := e.Quote(1000, date(2024, 7, 1), date(2024, 7, 1), "Karnataka", "Karnataka", "", pricing.ModeStandard)
		require.NoError(t, err)

		assert.Equal(t, 1, bd.Days)
		assert.Equal(t, int64(1000), bd.BasePrice)
	})

	t.Run("partial day rounds up", func(t *testing.T) {
		pickup := time.Date(2024, 7, 1, 18, 0, 0, 0, time.UTC)
		dropoff := time.Date(2024, 7, 4, 6, 0, 0, 0, time.UTC)
		bd, err := e.Quote(1000, pickup, dropoff, "Karnataka", "Karnataka", "", pricing.ModeStandard)
		require.NoError(t, err)

		assert.Equal(t, 3, bd.Days)
	})

	t.Run("surcharge requires both states set and unequal", func(t *testing.T) {
		cases := []struct {
			name      string
			pickup    string
			dropoff   string
			surcharge int64
		}{
			{"different states", "Karnataka", "Tamil Nadu", 400},
			{"same state", "Karnataka", "Karnataka", 0},
			{"empty pickup state", "", "Tamil Nadu", 0},
			{"empty dropoff state", "Karnataka", "", 0},
			{"both empty", "", "", 0},
			{"case-sensitive comparison charges surcharge", "Karnataka", "karnataka", 400},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				bd, err := e.Quote(1000, date(2024, 7, 1), date(2024, 7, 2), tc.pickup, tc.dropoff, "", pricing.ModeStandard)
				require.NoError(t, err)
				assert.Equal(t, tc.surcharge, bd.InterstateSurcharge)
			})
		}
	})

	t.Run("service fee follows the mode", func(t *testing.T) {
		withFee, err := e.Quote(1000, date(2024, 7, 1), date(2024, 7, 2), "Karnataka", "Tamil Nadu", "", pricing.ModeStandard)
		require.NoError(t, err)
		assert.Equal(t, int64(50), withFee.ServiceFee)

		withoutFee, err := e.Quote(1000, date(2024, 7, 1), date(2024, 7, 2), "Karnataka", "Tamil Nadu", "", pricing.ModeInterstateOnly)
		require.NoError(t, err)
		assert.Equal(t, int64(0), withoutFee.ServiceFee)
	})

	t.Run("unknown coupon is rejected but breakdown stays valid", func(t *testing.T) {
		bd, err := e.Quote(1000, date(2024, 7, 1), date(2024, 7, 2), "Karnataka", "Karnataka", "BOGUS", pricing.ModeStandard)
		require.ErrorIs(t, err, pricing.ErrCouponRejected)

		assert.Equal(t, int64(0), bd.Discount)
		assert.Equal(t, int64(1050), bd.Total)
	})

	t.Run("empty coupon code is not a rejection", func(t *testing.T) {
		bd, err := e.Quote(1000, date(2024, 7, 1), date(2024, 7, 2), "Karnataka", "Karnataka", "", pricing.ModeStandard)
		require.NoError(t, err)
		assert.Equal(t, int64(0), bd.Discount)
	})

	t.Run("known coupons discount their table amounts", func(t *testing.T) {
		cases := []struct {
			code     string
			discount int64
		}{
			{"WELCOME50", 50},
			{"FESTIVE400", 400},
			{"WEEKEND150", 150},
		}
		for _, tc := range cases {
			bd, err := e.Quote(1000, date(2024, 7, 1), date(2024, 7, 3), "Karnataka", "Karnataka", tc.code, pricing.ModeStandard)
			require.NoError(t, err)
			assert.Equal(t, tc.discount, bd.Discount, "coupon %s", tc.code)
		}
	})

	t.Run("total never goes negative", func(t *testing.T) {
		bd, err := e.Quote(100, date(2024, 7, 1), date(2024, 7, 2), "Karnataka", "Karnataka", "FESTIVE400", pricing.ModeStandard)
		require.NoError(t, err)

		// base 100 + fee 50 - discount 400 clamps to zero
		assert.Equal(t, int64(0), bd.Total)
	})

	t.Run("identical inputs always yield the identical breakdown", func(t *testing.T) {
		first, err1 := e.Quote(1300, date(2024, 12, 29), date(2024, 12, 31), "Karnataka", "Tamil Nadu", "WEEKEND150", pricing.ModeStandard)
		second, err2 := e.Quote(1300, date(2024, 12, 29), date(2024, 12, 31), "Karnataka", "Tamil Nadu", "WEEKEND150", pricing.ModeStandard)
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, first, second)
	})
}

func TestValidateCoupon(t *testing.T) {
	e := newEngine()

	assert.NoError(t, e.ValidateCoupon(""))
	assert.NoError(t, e.ValidateCoupon("WELCOME50"))
	assert.ErrorIs(t, e.ValidateCoupon("BOGUS"), pricing.ErrCouponRejected)
	assert.ErrorIs(t, e.ValidateCoupon("welcome50"), pricing.ErrCouponRejected)
}
