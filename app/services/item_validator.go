package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ItemValidator turns add-to-cart requests into canonical cart lines. It has
// no side effects.
type ItemValidator struct {
	validate *validator.Validate
}

func NewItemValidator(validate *validator.Validate) *ItemValidator {
	if validate == nil {
		validate = validator.New()
	}
	return &ItemValidator{validate: validate}
}

// FromCatalogProduct builds a line from a raw catalog product. A missing
// stock figure falls back to models.DefaultStockCeiling.
func (v *ItemValidator) FromCatalogProduct(product models.CatalogProduct, quantity int) (models.CartLine, error) {
	if err := v.validate.Struct(product); err != nil {
		return models.CartLine{}, fmt.Errorf("%w: %w", ErrInvalidLine, err)
	}

	price, err := resolveCatalogPrice(product.Price, product.DiscountPrice)
	if err != nil {
		return models.CartLine{}, err
	}

	qty := CoerceQuantity(quantity)
	ceiling := models.DefaultStockCeiling
	if product.Stock != nil {
		ceiling = *product.Stock
	}
	if qty > ceiling {
		return models.CartLine{}, &StockError{Name: product.Name, Requested: qty, Available: ceiling}
	}

	return models.CartLine{
		ID:           product.ID,
		Name:         product.Name,
		Image:        product.Image,
		Brand:        product.Brand,
		Category:     product.Category,
		Subcategory:  product.Subcategory,
		UnitPrice:    price,
		Quantity:     qty,
		StockCeiling: ceiling,
		GSTRate:      resolveGSTRate(product.GSTRate),
	}, nil
}

// FromPreformattedLine accepts a line the client already shaped. Without a
// stock figure the ceiling is 0, which marks the line as untracked.
func (v *ItemValidator) FromPreformattedLine(line models.PreformattedLine) (models.CartLine, error) {
	if err := v.validate.Struct(line); err != nil {
		return models.CartLine{}, fmt.Errorf("%w: %w", ErrInvalidLine, err)
	}

	if math.IsNaN(line.Price) || math.IsInf(line.Price, 0) || line.Price <= 0 {
		return models.CartLine{}, fmt.Errorf("%w: %v", ErrInvalidPrice, line.Price)
	}
	price := decimal.NewFromFloat(line.Price)

	qty := CoerceQuantity(line.Quantity)
	ceiling := 0
	if line.Stock != nil {
		ceiling = *line.Stock
		if qty > ceiling {
			return models.CartLine{}, &StockError{Name: line.Name, Requested: qty, Available: ceiling}
		}
	}

	return models.CartLine{
		ID:            line.ID,
		Name:          line.Name,
		Image:         line.Image,
		Brand:         line.Brand,
		Category:      line.Category,
		Subcategory:   line.Subcategory,
		UnitPrice:     price,
		Quantity:      qty,
		StockCeiling:  ceiling,
		GSTRate:       resolveGSTRate(line.GSTRate),
		SelectedSize:  line.SelectedSize,
		SelectedColor: line.SelectedColor,
	}, nil
}

// CoerceQuantity never clamps to stock; that is the caller's job.
func CoerceQuantity(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}

// ParseQuantity reads a form or query value, defaulting to 1.
func ParseQuantity(raw string) int {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return CoerceQuantity(qty)
}

func resolveCatalogPrice(listPrice, discountPrice string) (decimal.Decimal, error) {
	list, err := decimal.NewFromString(strings.TrimSpace(listPrice))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, listPrice)
	}

	price := list
	if discountPrice != "" {
		discounted, err := decimal.NewFromString(strings.TrimSpace(discountPrice))
		if err == nil && discounted.IsPositive() && discounted.LessThan(list) {
			price = discounted
		}
	}

	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidPrice, price)
	}
	return price, nil
}

func resolveGSTRate(rate *float64) decimal.Decimal {
	if rate == nil {
		return decimal.NewFromInt(models.DefaultGSTRate)
	}
	return decimal.NewFromFloat(*rate)
}
