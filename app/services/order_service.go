package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/Rakhulsr/go-ecommerce-cart/app/repositories"
	"github.com/Rakhulsr/go-ecommerce-cart/app/utils/calc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderRequest is the cart and totals snapshot taken at checkout.
type OrderRequest struct {
	CartID   string
	Lines    []models.CartLine
	Totals   models.OrderTotals
	Customer models.OrderCustomer
}

type OrderReceipt struct {
	OrderID    string          `json:"orderId"`
	OrderCode  string          `json:"orderCode"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
	PaymentURL string          `json:"paymentUrl,omitempty"`
}

// OrderSubmitter takes over payment and fulfilment for a checked-out cart.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, req OrderRequest) (*OrderReceipt, error)
}

type PaymentLink struct {
	Token       string
	RedirectURL string
}

type PaymentGateway interface {
	CreatePayment(ctx context.Context, order *models.Order) (*PaymentLink, error)
}

// OrderService records orders with gorm and, when a gateway is set, opens a
// payment for them inside the same transaction.
type OrderService struct {
	db        *gorm.DB
	orderRepo repositories.OrderRepository
	gateway   PaymentGateway
	log       *zap.SugaredLogger
}

func NewOrderService(db *gorm.DB, orderRepo repositories.OrderRepository, gateway PaymentGateway, log *zap.SugaredLogger) *OrderService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &OrderService{db: db, orderRepo: orderRepo, gateway: gateway, log: log}
}

func (s *OrderService) SubmitOrder(ctx context.Context, req OrderRequest) (*OrderReceipt, error) {
	order := BuildOrder(req, time.Now())

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("SubmitOrder: rolling back order %s after panic: %v", order.OrderCode, r)
			tx.Rollback()
			panic(r)
		}
	}()

	if err := s.orderRepo.Create(ctx, tx, order); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	receipt := &OrderReceipt{
		OrderID:    order.ID,
		OrderCode:  order.OrderCode,
		GrandTotal: order.GrandTotal,
	}

	if s.gateway != nil {
		link, err := s.gateway.CreatePayment(ctx, order)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to initiate payment: %w", err)
		}
		if err := s.orderRepo.UpdateMidtransDetails(ctx, tx, order.ID, link.Token, link.RedirectURL); err != nil {
			tx.Rollback()
			return nil, err
		}
		receipt.PaymentURL = link.RedirectURL
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit database transaction: %w", err)
	}

	s.log.Infof("SubmitOrder: order %s created for cart %s, grand total %s", order.OrderCode, req.CartID, order.GrandTotal.StringFixed(2))
	return receipt, nil
}

// FindOrder loads an order with its items and customer by order code.
func (s *OrderService) FindOrder(ctx context.Context, orderCode string) (*models.Order, error) {
	return s.orderRepo.FindByCode(ctx, orderCode)
}

// BuildOrder maps the checkout snapshot onto the order tables.
func BuildOrder(req OrderRequest, now time.Time) *models.Order {
	orderID := uuid.New().String()
	order := &models.Order{
		ID:              orderID,
		CartID:          req.CartID,
		OrderCode:       generateOrderCode(now),
		OrderDate:       now,
		TaxModel:        string(req.Totals.TaxModel),
		BaseTotalPrice:  req.Totals.Subtotal,
		TaxAmount:       req.Totals.TaxAmount,
		TaxPercent:      req.Totals.TaxPercent,
		PromoCode:       req.Totals.PromoCode,
		DiscountAmount:  req.Totals.DiscountAmount,
		DiscountPercent: req.Totals.DiscountPercent,
		ShippingCost:    req.Totals.ShippingCost,
		GrandTotal:      req.Totals.GrandTotal,
		PaymentStatus:   "Pending",
		Status:          models.OrderStatusPending,
	}

	customer := req.Customer
	customer.OrderID = orderID
	order.OrderCustomer = &customer

	for _, line := range req.Lines {
		base := line.LineTotal()
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			OrderID:       orderID,
			ProductID:     line.ID,
			ProductName:   line.Name,
			Category:      line.Category,
			SelectedSize:  line.SelectedSize,
			SelectedColor: line.SelectedColor,
			Qty:           line.Quantity,
			Price:         line.UnitPrice,
			BaseTotal:     calc.RoundMoney(base),
			GSTPercent:    line.GSTRate,
			GSTAmount:     calc.RoundMoney(calc.CalculateLineGST(line.UnitPrice, line.Quantity, line.GSTRate)),
		})
	}
	return order
}

func generateOrderCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102"), suffix)
}
