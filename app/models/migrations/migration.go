package migrations

import (
	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{}, &models.CartSnapshot{}, &models.Order{}, &models.OrderItem{}, &models.OrderCustomer{})
}
