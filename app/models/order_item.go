package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	ID            string          `gorm:"primaryKey;type:varchar(255);not null;uniqueIndex" json:"id"`
	OrderID       string          `gorm:"type:varchar(255);not null;index" json:"order_id"`
	ProductID     string          `gorm:"type:varchar(255);not null;index" json:"product_id"`
	ProductName   string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Category      string          `gorm:"type:varchar(100)" json:"category"`
	SelectedSize  string          `gorm:"type:varchar(50)" json:"selected_size"`
	SelectedColor string          `gorm:"type:varchar(50)" json:"selected_color"`
	Qty           int             `gorm:"not null" json:"qty"`
	Price         decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	BaseTotal     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"base_total"`
	GSTPercent    decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"gst_percent"`
	GSTAmount     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"gst_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}
