package pricing

import "math"

// Fractions is the allow-list of proportional discounts an admin can pick
// for a plan. Free-form fractions are rejected at validation time.
var Fractions = []float64{0.05, 0.10, 0.15, 0.20, 0.25, 0.30, 0.35, 0.40, 0.45, 0.50}

// AllowedFraction reports whether f is one of the permitted discount
// fractions.
func AllowedFraction(f float64) bool {
	for _, p := range Fractions {
		if f == p {
			return true
		}
	}
	return false
}

// DiscountedPrice derives the price to display and persist for a plan.
// Without an active discount (or with a non-positive fraction) the base
// price passes through unchanged. Otherwise the proportional reduction is
// applied and the result clamped at zero. Prices are kept at 3 decimal
// places, matching how the dashboard renders money.
func DiscountedPrice(base float64, hasDiscount bool, discountBy float64) float64 {
	if !hasDiscount || discountBy <= 0 {
		return base
	}
	final := base - base*discountBy
	if final < 0 {
		final = 0
	}
	return Round3(final)
}

// Round3 rounds to 3 decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
