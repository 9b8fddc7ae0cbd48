package pricing

import "time"

// Mode selects whether the flat service fee is part of the quote. The general
// booking flow charges it; the interstate-only flow charges just the
// allowance.
type Mode string

const (
	ModeStandard       Mode = "standard"
	ModeInterstateOnly Mode = "interstate_only"
)

const day = 24 * time.Hour

// Breakdown is derived on every recompute and never persisted on its own.
// All amounts are whole rupees.
type Breakdown struct {
	Days                int   `json:"days"`
	BasePrice           int64 `json:"basePrice"`
	InterstateSurcharge int64 `json:"interstateSurcharge"`
	ServiceFee          int64 `json:"serviceFee"`
	Discount            int64 `json:"discount"`
	Total               int64 `json:"total"`
}

// Quote is the one price function of the system. It is pure: identical inputs
// always yield the identical breakdown, so callers may re-invoke it on every
// edit.
type Engine struct {
	interstateFee int64
	serviceFee    int64
	coupons       CouponTable
}

func NewEngine(interstateFee, serviceFee int64, coupons CouponTable) *Engine {
	if coupons == nil {
		coupons = DefaultCoupons()
	}
	return &Engine{
		interstateFee: interstateFee,
		serviceFee:    serviceFee,
		coupons:       coupons,
	}
}

// Quote computes the itemized price for a rental. pickupDate/dropoffDate are
// compared at day granularity; a drop-off equal to pickup bills as one day.
// Drop-off strictly before pickup is a caller precondition, not checked here.
//
// Returns ErrCouponRejected when couponCode is non-empty but unrecognized;
// the breakdown is still valid with a zero discount.
func (e *Engine) Quote(ratePerDay int64, pickupDate, dropoffDate time.Time, pickupState, dropoffState, couponCode string, mode Mode) (Breakdown, error) {
	days := billableDays(pickupDate, dropoffDate)
	base := ratePerDay * int64(days)

	// Exact string equality on state names, no trimming or case folding:
	// "Karnataka" vs "karnataka" counts as interstate.
	var surcharge int64
	if pickupState != "" && dropoffState != "" && pickupState != dropoffState {
		surcharge = e.interstateFee
	}

	var fee int64
	if mode == ModeStandard {
		fee = e.serviceFee
	}

	discount, couponErr := e.coupons.Lookup(couponCode)

	total := base + surcharge + fee - discount
	if total < 0 {
		total = 0
	}

	return Breakdown{
		Days:                days,
		BasePrice:           base,
		InterstateSurcharge: surcharge,
		ServiceFee:          fee,
		Discount:            discount,
		Total:               total,
	}, couponErr
}

// ValidateCoupon checks a code against the table without quoting.
func (e *Engine) ValidateCoupon(code string) error {
	_, err := e.coupons.Lookup(code)
	return err
}

func billableDays(pickup, dropoff time.Time) int {
	d := dropoff.Truncate(day).Sub(pickup.Truncate(day))
	days := int((d + day - 1) / day)
	if days < 1 {
		return 1
	}
	return days
}
