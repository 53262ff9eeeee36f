package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = 1
	OrderStatusProcessing = 2
	OrderStatusShipped    = 3
	OrderStatusCompleted  = 4
	OrderStatusCancelled  = 5
	OrderStatusFailed     = 7
)

type Order struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key"`
	CartID    string    `gorm:"size:36;index" json:"cart_id"`
	OrderCode string    `gorm:"type:varchar(255);unique;not null" json:"order_code"`
	OrderDate time.Time `gorm:"not null" json:"order_date"`

	OrderItems      []OrderItem
	OrderCustomer   *OrderCustomer
	TaxModel        string          `gorm:"size:10" json:"tax_model"`
	BaseTotalPrice  decimal.Decimal `gorm:"type:decimal(16,2);" json:"base_total_price"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(16,2);" json:"tax_amount"`
	TaxPercent      decimal.Decimal `gorm:"type:decimal(10,2);" json:"tax_percent"`
	PromoCode       string          `gorm:"size:50" json:"promo_code"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(16,2);" json:"discount_amount"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(10,2);" json:"discount_percent"`
	ShippingCost    decimal.Decimal `gorm:"type:decimal(16,2);" json:"shipping_cost"`
	GrandTotal      decimal.Decimal `gorm:"type:decimal(16,2);" json:"grand_total"`

	MidtransTransactionID string `gorm:"size:255;index" json:"-"`
	MidtransPaymentURL    string `gorm:"type:text" json:"payment_url,omitempty"`
	PaymentStatus         string `gorm:"size:100" json:"payment_status"`

	Status int `gorm:"default:1" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
