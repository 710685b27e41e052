package services

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart          = errors.New("cannot create order with empty cart")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrResetUnavailable   = errors.New("password reset is currently unavailable")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrInvalidTransition  = errors.New("invalid order status transition")
)

// InsufficientStockError names the product that failed stock validation and
// how far short it fell. A product that vanished between cart-add and order
// time surfaces with Available 0.
type InsufficientStockError struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Available   int    `json:"available"`
	Requested   int    `json:"requested"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: available %d, requested %d",
		e.ProductName, e.Available, e.Requested)
}
