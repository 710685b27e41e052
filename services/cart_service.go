package services

import (
	"context"

	"art-store/models"
)

type cartStore interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	UpsertItem(ctx context.Context, cartID string, item models.CartItem) error
	SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error
	RemoveItem(ctx context.Context, cartID, productID string) error
	ClearCart(ctx context.Context, userID string) error
}

type productReader interface {
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
}

type CartService struct {
	carts    cartStore
	products productReader
}

func NewCartService(carts cartStore, products productReader) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	return s.carts.GetCart(ctx, userID)
}

// AddItem snapshots the product's current price onto the line. Adding a
// product already in the cart merges quantities and keeps the original
// snapshot.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := models.CartItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		UnitPrice:   product.Price,
	}
	if err := s.carts.UpsertItem(ctx, cart.ID, item); err != nil {
		return nil, err
	}

	return s.carts.GetCart(ctx, userID)
}

func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.carts.SetItemQuantity(ctx, cart.ID, productID, quantity); err != nil {
		return nil, err
	}

	return s.carts.GetCart(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.carts.RemoveItem(ctx, cart.ID, productID); err != nil {
		return nil, err
	}

	return s.carts.GetCart(ctx, userID)
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	return s.carts.ClearCart(ctx, userID)
}
