package calc

import "github.com/shopspring/decimal"

func CalculateDiscount(baseTotal, discountPercent decimal.Decimal) decimal.Decimal {
	if discountPercent.IsZero() {
		return decimal.Zero
	}
	return RoundMoney(Percent(baseTotal, discountPercent))
}
