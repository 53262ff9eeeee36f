package calc

import "github.com/shopspring/decimal"

// GetTaxPercent is the flat checkout tax rate.
func GetTaxPercent() decimal.Decimal {
	var taxPercent = decimal.NewFromInt(8)

	return taxPercent
}

func CalculateTax(baseTotal decimal.Decimal) decimal.Decimal {

	taxPercent := GetTaxPercent()

	return RoundMoney(Percent(baseTotal, taxPercent))

}

// CalculateLineGST is unrounded; callers round the aggregate.
func CalculateLineGST(unitPrice decimal.Decimal, qty int, gstRate decimal.Decimal) decimal.Decimal {
	return Percent(unitPrice.Mul(decimal.NewFromInt(int64(qty))), gstRate)
}

func CalculateGrandTotal(baseTotal, taxAmount, discountAmount, shippingCost decimal.Decimal) decimal.Decimal {
	return RoundMoney(baseTotal.Add(taxAmount).Sub(discountAmount).Add(shippingCost))
}
