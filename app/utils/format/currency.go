package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var rupee = accounting.Accounting{Symbol: "₹", Precision: 2, Thousand: ",", Decimal: "."}

func FormatMoney(amount decimal.Decimal) string {
	return rupee.FormatMoney(amount.RoundBank(2).InexactFloat64())
}

// FormatPercent renders a rate without trailing zeros, e.g. "18%".
func FormatPercent(rate decimal.Decimal) string {
	return rate.String() + "%"
}
