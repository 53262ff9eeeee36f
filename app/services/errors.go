package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPrice      = errors.New("invalid price")
	ErrInsufficientStock = errors.New("insufficient product stock")
	ErrInvalidPromoCode  = errors.New("invalid promo code")
	ErrInvalidLine       = errors.New("invalid cart line")
	ErrLineNotFound      = errors.New("cart line not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidCustomer   = errors.New("invalid customer details")
)

// StockError reports a quantity above a line's stock ceiling.
type StockError struct {
	Name      string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("not enough stock for product %s (available: %d)", e.Name, e.Available)
	}
	return fmt.Sprintf("not enough stock (available: %d)", e.Available)
}

func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}
