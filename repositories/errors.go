package repositories

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")
	// ErrStockConflict means a stock adjustment would take the quantity
	// below zero.
	ErrStockConflict = errors.New("stock adjustment conflicts with available quantity")
)
