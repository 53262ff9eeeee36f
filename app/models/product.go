package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the catalog row the cart reads at add-to-cart time.
type Product struct {
	ID            string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name          string          `gorm:"size:255;not null"`
	Slug          string          `gorm:"size:255;not null;uniqueIndex"`
	Sku           string          `gorm:"size:100;uniqueIndex"`
	Brand         string          `gorm:"size:100"`
	Category      string          `gorm:"size:100;index"`
	Subcategory   string          `gorm:"size:100"`
	Image         string          `gorm:"size:255"`
	Price         decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	DiscountPrice decimal.Decimal `gorm:"type:decimal(16,2);default:0.00"`
	Stock         int             `gorm:"not null"`
	GSTRate       decimal.Decimal `gorm:"type:decimal(5,2);default:18.00"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// ToCatalogProduct hands the row to the cart in the catalog wire shape.
func (p *Product) ToCatalogProduct() CatalogProduct {
	stock := p.Stock
	gst := p.GSTRate.InexactFloat64()

	cp := CatalogProduct{
		ID:          p.ID,
		Name:        p.Name,
		Image:       p.Image,
		Brand:       p.Brand,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Price:       p.Price.String(),
		Stock:       &stock,
		GSTRate:     &gst,
	}
	if p.DiscountPrice.IsPositive() {
		cp.DiscountPrice = p.DiscountPrice.String()
	}
	return cp
}
