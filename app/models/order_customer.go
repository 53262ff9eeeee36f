package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderCustomer is the contact and delivery data captured at checkout.
type OrderCustomer struct {
	ID string `gorm:"type:char(36);primaryKey"`

	OrderID string `gorm:"type:varchar(36);not null;uniqueIndex"`

	FirstName string `gorm:"type:varchar(255);not null" json:"first_name" validate:"required"`
	LastName  string `gorm:"type:varchar(255);null" json:"last_name"`
	Email     string `gorm:"type:varchar(255);not null" json:"email" validate:"required,email"`
	Phone     string `gorm:"type:varchar(20);not null" json:"phone" validate:"required"`
	Address1  string `gorm:"type:varchar(255);not null" json:"address1" validate:"required"`
	Address2  string `gorm:"type:varchar(255);null" json:"address2"`
	City      string `gorm:"type:varchar(255);not null" json:"city" validate:"required"`
	PostCode  string `gorm:"type:varchar(10);not null" json:"post_code" validate:"required"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (oc *OrderCustomer) BeforeCreate(tx *gorm.DB) (err error) {
	if oc.ID == "" {
		oc.ID = uuid.New().String()
	}
	return
}
