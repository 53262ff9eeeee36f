package models

import "time"

// CartStorageKey is the durable key under which the cart line array lives.
const CartStorageKey = "cart"

type CartSnapshot struct {
	CartID     string `gorm:"size:36;not null;primary_key"`
	StorageKey string `gorm:"size:32;not null;default:cart"`
	Payload    string `gorm:"type:longtext;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
