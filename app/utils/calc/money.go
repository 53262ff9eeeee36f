package calc

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds to cents with banker's rounding. Apply it once to a
// finished sum, not to each term.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.RoundBank(2)
}

func Percent(base, percent decimal.Decimal) decimal.Decimal {
	return base.Mul(percent).Div(hundred)
}
