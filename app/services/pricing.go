package services

import (
	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/Rakhulsr/go-ecommerce-cart/app/utils/calc"
	"github.com/shopspring/decimal"
)

// Subtotal sums price × quantity and rounds once at the end.
func Subtotal(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal())
	}
	return calc.RoundMoney(total)
}

func ItemCount(lines []models.CartLine) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}

// GSTBreakdown computes GST at each line's own rate. Lines without a
// category count toward the total only.
func GSTBreakdown(lines []models.CartLine) models.GSTBreakdown {
	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)

	for _, line := range lines {
		if !line.UnitPrice.IsPositive() || line.Quantity <= 0 {
			continue
		}
		lineGST := calc.CalculateLineGST(line.UnitPrice, line.Quantity, line.GSTRate)
		total = total.Add(lineGST)
		if line.Category != "" {
			byCategory[line.Category] = byCategory[line.Category].Add(lineGST)
		}
	}

	for category, amount := range byCategory {
		byCategory[category] = calc.RoundMoney(amount)
	}

	return models.GSTBreakdown{
		TotalGST:   calc.RoundMoney(total),
		ByCategory: byCategory,
	}
}
