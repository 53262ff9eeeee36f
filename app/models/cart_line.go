package models

import "github.com/shopspring/decimal"

const (
	DefaultGSTRate      = 18
	DefaultStockCeiling = 99
)

// CartLine is one product variant in the cart. Lines are values: a change
// produces a new line, the stored one is never edited in place.
type CartLine struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Image         string          `json:"image"`
	Brand         string          `json:"brand"`
	Category      string          `json:"category"`
	Subcategory   string          `json:"subcategory"`
	UnitPrice     decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	StockCeiling  int             `json:"stock"`
	GSTRate       decimal.Decimal `json:"gstRate"`
	SelectedSize  string          `json:"selectedSize,omitempty"`
	SelectedColor string          `json:"selectedColor,omitempty"`
}

// WithQuantity returns a copy of the line carrying qty.
func (l CartLine) WithQuantity(qty int) CartLine {
	l.Quantity = qty
	return l
}

// StockTracked reports whether the line carries a usable ceiling. Lines
// built from a pre-formatted object without stock have a ceiling of 0.
func (l CartLine) StockTracked() bool {
	return l.StockCeiling > 0
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
