package pricing

import "errors"

// ErrCouponRejected signals a non-empty code that matched nothing. It is
// distinct from "no coupon applied" so the caller can tell the user.
var ErrCouponRejected = errors.New("coupon code not recognized")

// CouponTable maps codes to flat rupee discounts. The recognized set is
// static product configuration, not user data.
type CouponTable map[string]int64

func DefaultCoupons() CouponTable {
	return CouponTable{
		"WELCOME50":  50,
		"FESTIVE400": 400,
		"WEEKEND150": 150,
	}
}

// Lookup returns the discount for code. An empty code is "no coupon" with a
// zero discount and no error; an unknown code is rejected with a zero
// discount.
func (t CouponTable) Lookup(code string) (int64, error) {
	if code == "" {
		return 0, nil
	}
	discount, ok := t[code]
	if !ok {
		return 0, ErrCouponRejected
	}
	return discount, nil
}
