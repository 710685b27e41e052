package repositories

import (
	"context"
	"time"

	"art-store/models"

	"github.com/google/uuid"
)

type CartRepository struct {
	db DBPool
}

func NewCartRepository(db DBPool) *CartRepository {
	return &CartRepository{db: db}
}

// GetCart returns the user's cart, creating an empty one on first access.
// The upsert keeps lazy creation race-free under concurrent first requests.
func (r *CartRepository) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart := &models.Cart{UserID: userID, Items: []models.CartItem{}}

	query := `
		INSERT INTO carts (id, user_id, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, updated_at
	`
	if err := r.db.QueryRow(ctx, query, uuid.NewString(), userID).Scan(&cart.ID, &cart.UpdatedAt); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT product_id, product_name, quantity, unit_price
		FROM cart_items WHERE cart_id = $1 ORDER BY product_name
	`, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		item.Subtotal = float64(item.Quantity) * item.UnitPrice
		cart.TotalAmount += item.Subtotal
		cart.Items = append(cart.Items, item)
	}
	return cart, rows.Err()
}

// UpsertItem adds a line or merges quantity into an existing line for the
// same product. The existing line keeps its original unit price snapshot.
func (r *CartRepository) UpsertItem(ctx context.Context, cartID string, item models.CartItem) error {
	query := `
		INSERT INTO cart_items (cart_id, product_id, product_name, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`
	if _, err := r.db.Exec(ctx, query, cartID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice); err != nil {
		return err
	}
	return r.touch(ctx, cartID)
}

func (r *CartRepository) SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error {
	query := `UPDATE cart_items SET quantity = $3 WHERE cart_id = $1 AND product_id = $2`
	tag, err := r.db.Exec(ctx, query, cartID, productID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCartItemNotFound
	}
	return r.touch(ctx, cartID)
}

func (r *CartRepository) RemoveItem(ctx context.Context, cartID, productID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID); err != nil {
		return err
	}
	return r.touch(ctx, cartID)
}

// ClearCart empties the cart's items but keeps the cart row.
func (r *CartRepository) ClearCart(ctx context.Context, userID string) error {
	query := `
		DELETE FROM cart_items USING carts
		WHERE cart_items.cart_id = carts.id AND carts.user_id = $1
	`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `UPDATE carts SET updated_at = $2 WHERE user_id = $1`, userID, time.Now())
	return err
}

func (r *CartRepository) touch(ctx context.Context, cartID string) error {
	_, err := r.db.Exec(ctx, `UPDATE carts SET updated_at = $2 WHERE id = $1`, cartID, time.Now())
	return err
}
