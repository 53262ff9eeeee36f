package models

import "github.com/shopspring/decimal"

type TaxModel string

const (
	TaxModelGST  TaxModel = "gst"
	TaxModelFlat TaxModel = "flat"
)

type GSTBreakdown struct {
	TotalGST   decimal.Decimal            `json:"totalGst"`
	ByCategory map[string]decimal.Decimal `json:"byCategory"`
}

// CartSummary is what the cart view shows. GST is informational here and is
// not added to GrandTotal.
type CartSummary struct {
	ItemCount       int             `json:"itemCount"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	GST             GSTBreakdown    `json:"gst"`
	PromoCode       string          `json:"promoCode,omitempty"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	FreeShippingGap decimal.Decimal `json:"freeShippingGap"`
	GrandTotal      decimal.Decimal `json:"grandTotal"`
}

// OrderTotals is the checkout summary handed to order submission.
type OrderTotals struct {
	TaxModel        TaxModel                   `json:"taxModel"`
	Subtotal        decimal.Decimal            `json:"subtotal"`
	PromoCode       string                     `json:"promoCode,omitempty"`
	DiscountPercent decimal.Decimal            `json:"discountPercent"`
	DiscountAmount  decimal.Decimal            `json:"discountAmount"`
	ShippingCost    decimal.Decimal            `json:"shippingCost"`
	TaxPercent      decimal.Decimal            `json:"taxPercent,omitempty"`
	TaxAmount       decimal.Decimal            `json:"taxAmount"`
	GSTByCategory   map[string]decimal.Decimal `json:"gstByCategory,omitempty"`
	GrandTotal      decimal.Decimal            `json:"grandTotal"`
}
