package calc

import "github.com/shopspring/decimal"

var (
	FreeShippingThreshold = decimal.NewFromInt(50)
	FlatShippingFee       = decimal.NewFromInt(10)
)

// CalculateShipping is free strictly above the threshold.
func CalculateShipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FlatShippingFee
}

// FreeShippingGap is how much more the cart needs before shipping is free.
func FreeShippingGap(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FreeShippingThreshold.Sub(subtotal).Add(decimal.New(1, -2))
}
