package models

import "time"

// CartItem carries the unit price snapshotted at add time, so a later
// catalog price change does not silently reprice a customer's cart.
type CartItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// Cart holds at most one line per product; adding an existing product
// merges into the existing line.
type Cart struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Items       []CartItem `json:"items"`
	TotalAmount float64    `json:"total_amount"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
