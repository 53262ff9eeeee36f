package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	FindByCode(ctx context.Context, orderCode string) (*models.Order, error)
	UpdateMidtransDetails(ctx context.Context, db *gorm.DB, orderID, transactionToken, paymentURL string) error
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *gormOrderRepository) FindByCode(ctx context.Context, orderCode string) (*models.Order, error) {
	var order models.Order

	err := r.db.WithContext(ctx).Preload("OrderItems").Preload("OrderCustomer").First(&order, "order_code = ?", orderCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) UpdateMidtransDetails(ctx context.Context, db *gorm.DB, orderID, transactionToken, paymentURL string) error {
	result := db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"midtrans_transaction_id": transactionToken,
		"midtrans_payment_url":    paymentURL,
		"updated_at":              time.Now(),
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update midtrans details: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order %s not found", orderID)
	}
	return nil
}
