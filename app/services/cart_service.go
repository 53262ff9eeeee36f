package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/Rakhulsr/go-ecommerce-cart/app/repositories"
	"go.uber.org/zap"
)

// CartView is the cart as the storefront renders it.
type CartView struct {
	CartID  string             `json:"cartId"`
	Lines   []models.CartLine  `json:"lines"`
	Summary models.CartSummary `json:"summary"`
	Message string             `json:"message,omitempty"`
	Warning string             `json:"warning,omitempty"`
}

type CartService struct {
	sessions    *CartSessions
	validator   *ItemValidator
	productRepo repositories.ProductRepositoryImpl
	calculator  *CheckoutCalculator
	log         *zap.SugaredLogger
}

func NewCartService(sessions *CartSessions, validator *ItemValidator, productRepo repositories.ProductRepositoryImpl, calculator *CheckoutCalculator, log *zap.SugaredLogger) *CartService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &CartService{
		sessions:    sessions,
		validator:   validator,
		productRepo: productRepo,
		calculator:  calculator,
		log:         log,
	}
}

// AddItemToCart looks the product up in the catalog and adds qty of it.
func (s *CartService) AddItemToCart(ctx context.Context, cartID, productID string, qty int) (*CartView, error) {
	if s.productRepo == nil {
		return nil, fmt.Errorf("catalog is not configured")
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
	}

	line, err := s.validator.FromCatalogProduct(product.ToCatalogProduct(), qty)
	if err != nil {
		return nil, err
	}
	return s.addLine(ctx, cartID, line)
}

// AddPreformattedLine adds a line the client already shaped.
func (s *CartService) AddPreformattedLine(ctx context.Context, cartID string, input models.PreformattedLine) (*CartView, error) {
	line, err := s.validator.FromPreformattedLine(input)
	if err != nil {
		return nil, err
	}
	return s.addLine(ctx, cartID, line)
}

func (s *CartService) addLine(ctx context.Context, cartID string, line models.CartLine) (*CartView, error) {
	session := s.sessions.Get(ctx, cartID)
	merged, err := session.Cart.Add(line)
	if err != nil {
		return nil, err
	}
	return s.view(session, ChangeMessage(Change{Kind: TransitionAdd, Line: merged})), nil
}

func (s *CartService) UpdateCartItemQty(ctx context.Context, cartID, lineID string, newQty int) (*CartView, error) {
	session := s.sessions.Get(ctx, cartID)
	existing, found := session.Cart.Line(lineID)

	if err := session.Cart.UpdateQuantity(lineID, newQty); err != nil {
		return nil, err
	}

	msg := ""
	if found {
		if newQty <= 0 {
			msg = ChangeMessage(Change{Kind: TransitionRemove, Line: existing})
		} else {
			msg = ChangeMessage(Change{Kind: TransitionUpdateQuantity, Line: existing.WithQuantity(newQty)})
		}
	}
	return s.view(session, msg), nil
}

func (s *CartService) RemoveItemFromCart(ctx context.Context, cartID, lineID string) *CartView {
	session := s.sessions.Get(ctx, cartID)
	existing, found := session.Cart.Line(lineID)
	session.Cart.Remove(lineID)

	msg := ""
	if found {
		msg = ChangeMessage(Change{Kind: TransitionRemove, Line: existing})
	}
	return s.view(session, msg)
}

func (s *CartService) ClearCart(ctx context.Context, cartID string) *CartView {
	session := s.sessions.Get(ctx, cartID)
	session.Cart.Clear(ClearReasonUser)
	return s.view(session, ChangeMessage(Change{Kind: TransitionClear, Reason: ClearReasonUser}))
}

func (s *CartService) ApplyPromoCode(ctx context.Context, cartID, code string) (*CartView, error) {
	session := s.sessions.Get(ctx, cartID)
	applied, err := session.Promotion.Apply(code)
	if err != nil {
		return nil, err
	}
	return s.view(session, fmt.Sprintf("Promo code %s applied (%s%% off)", applied.Code, applied.PercentOff)), nil
}

func (s *CartService) RemovePromoCode(ctx context.Context, cartID string) *CartView {
	session := s.sessions.Get(ctx, cartID)
	session.Promotion.Remove()
	return s.view(session, "Promo code removed")
}

func (s *CartService) GetUserCart(ctx context.Context, cartID string) *CartView {
	return s.view(s.sessions.Get(ctx, cartID), "")
}

func (s *CartService) view(session *CartSession, message string) *CartView {
	lines := session.Cart.Lines()
	view := &CartView{
		CartID:  session.ID,
		Lines:   lines,
		Summary: s.calculator.Summary(lines, session.Promotion),
		Message: message,
	}
	if err := session.Persistence.LastWriteError(); err != nil {
		s.log.Warnf("CartService: last save of cart %s failed: %v", session.ID, err)
		view.Warning = "Your cart could not be saved; changes may be lost if you leave"
	}
	return view
}
