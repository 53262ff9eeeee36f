package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type CheckoutService struct {
	sessions   *CartSessions
	calculator *CheckoutCalculator
	submitter  OrderSubmitter
	validate   *validator.Validate
	log        *zap.SugaredLogger
}

func NewCheckoutService(sessions *CartSessions, calculator *CheckoutCalculator, submitter OrderSubmitter, validate *validator.Validate, log *zap.SugaredLogger) *CheckoutService {
	if validate == nil {
		validate = validator.New()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &CheckoutService{
		sessions:   sessions,
		calculator: calculator,
		submitter:  submitter,
		validate:   validate,
		log:        log,
	}
}

// Summary recomputes checkout totals for the cart's current state.
func (s *CheckoutService) Summary(ctx context.Context, cartID string) (models.OrderTotals, error) {
	session := s.sessions.Get(ctx, cartID)
	return s.calculator.Totals(session.Cart.Lines(), session.Promotion)
}

// PlaceOrder submits the cart. Only after the submitter accepts the order
// are the submitted lines removed; lines added meanwhile stay. On any
// failure the cart is left as it was.
func (s *CheckoutService) PlaceOrder(ctx context.Context, cartID string, customer models.OrderCustomer) (*OrderReceipt, error) {
	if err := s.validate.Struct(customer); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCustomer, err)
	}

	session := s.sessions.Get(ctx, cartID)
	session.checkoutMu.Lock()
	defer session.checkoutMu.Unlock()

	lines := session.Cart.Lines()
	totals, err := s.calculator.Totals(lines, session.Promotion)
	if err != nil {
		return nil, err
	}

	receipt, err := s.submitter.SubmitOrder(ctx, OrderRequest{
		CartID:   cartID,
		Lines:    lines,
		Totals:   totals,
		Customer: customer,
	})
	if err != nil {
		s.log.Warnf("PlaceOrder: order submission for cart %s failed, cart kept: %v", cartID, err)
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}

	session.Cart.RemoveOrdered(lines)
	session.Promotion.Remove()
	if err := session.Persistence.Flush(ctx); err != nil {
		s.log.Warnf("PlaceOrder: cleared cart %s could not be saved: %v", cartID, err)
	}
	return receipt, nil
}
