package services

import (
	"fmt"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/Rakhulsr/go-ecommerce-cart/app/utils/calc"
	"github.com/shopspring/decimal"
)

// DiscountSource supplies the single active promotion, if any.
type DiscountSource interface {
	Active() (models.PromotionCode, bool)
}

// CheckoutCalculator derives totals from the cart, the active promotion and
// the shipping rule. Nothing it returns is stored.
type CheckoutCalculator struct {
	taxModel models.TaxModel
}

func NewCheckoutCalculator(taxModel models.TaxModel) (*CheckoutCalculator, error) {
	switch taxModel {
	case "":
		taxModel = models.TaxModelGST
	case models.TaxModelGST, models.TaxModelFlat:
	default:
		return nil, fmt.Errorf("unknown checkout tax model %q", taxModel)
	}
	return &CheckoutCalculator{taxModel: taxModel}, nil
}

func (c *CheckoutCalculator) TaxModel() models.TaxModel {
	return c.taxModel
}

// Summary is the cart-view figure: GST is shown but not added on top.
func (c *CheckoutCalculator) Summary(lines []models.CartLine, promo DiscountSource) models.CartSummary {
	subtotal := Subtotal(lines)
	code, percent := activeDiscount(promo)
	discount := calc.CalculateDiscount(subtotal, percent)
	shipping := decimal.Zero
	gap := decimal.Zero
	if len(lines) > 0 {
		shipping = calc.CalculateShipping(subtotal)
		gap = calc.FreeShippingGap(subtotal)
	}

	return models.CartSummary{
		ItemCount:       ItemCount(lines),
		Subtotal:        subtotal,
		GST:             GSTBreakdown(lines),
		PromoCode:       code,
		DiscountPercent: percent,
		DiscountAmount:  discount,
		ShippingCost:    shipping,
		FreeShippingGap: gap,
		GrandTotal:      calc.CalculateGrandTotal(subtotal, decimal.Zero, discount, shipping),
	}
}

// Totals is the checkout figure handed to order submission. It refuses an
// empty cart.
func (c *CheckoutCalculator) Totals(lines []models.CartLine, promo DiscountSource) (models.OrderTotals, error) {
	if len(lines) == 0 {
		return models.OrderTotals{}, ErrEmptyCart
	}

	subtotal := Subtotal(lines)
	code, percent := activeDiscount(promo)
	discount := calc.CalculateDiscount(subtotal, percent)
	shipping := calc.CalculateShipping(subtotal)

	totals := models.OrderTotals{
		TaxModel:        c.taxModel,
		Subtotal:        subtotal,
		PromoCode:       code,
		DiscountPercent: percent,
		DiscountAmount:  discount,
		ShippingCost:    shipping,
	}

	switch c.taxModel {
	case models.TaxModelFlat:
		totals.TaxPercent = calc.GetTaxPercent()
		totals.TaxAmount = calc.CalculateTax(subtotal)
	default:
		gst := GSTBreakdown(lines)
		totals.TaxAmount = gst.TotalGST
		totals.GSTByCategory = gst.ByCategory
	}

	totals.GrandTotal = calc.CalculateGrandTotal(subtotal, totals.TaxAmount, discount, shipping)
	return totals, nil
}

func activeDiscount(promo DiscountSource) (string, decimal.Decimal) {
	if promo == nil {
		return "", decimal.Zero
	}
	active, ok := promo.Active()
	if !ok {
		return "", decimal.Zero
	}
	return active.Code, active.PercentOff
}
