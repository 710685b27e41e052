package services

import (
	"context"
	"errors"
	"log"

	"art-store/models"
	"art-store/repositories"
)

// StockAccessor is the engine's contract with product stock. TryDecrement
// must be a single atomic check-and-decrement per product; the engine never
// writes stock any other way.
type StockAccessor interface {
	GetStock(ctx context.Context, productID string) (int, error)
	TryDecrementStock(ctx context.Context, productID string, quantity int) (bool, error)
	ReplenishStock(ctx context.Context, productID string, quantity int) error
}

type CartAccessor interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	ClearCart(ctx context.Context, userID string) error
}

// OrderSink is append-only: InsertOrder adds, UpdateStatus is the only
// mutation afterwards.
type OrderSink interface {
	InsertOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context, page, limit int) ([]models.Order, int, error)
}

// OrderService turns a cart into an order without overselling: validate
// every line against fresh stock, then apply decrements one conditional
// update at a time, rolling back the applied ones if anything later fails.
type OrderService struct {
	stock  StockAccessor
	carts  CartAccessor
	orders OrderSink
}

func NewOrderService(stock StockAccessor, carts CartAccessor, orders OrderSink) *OrderService {
	return &OrderService{stock: stock, carts: carts, orders: orders}
}

// maxPlaceAttempts allows one revalidation after a decrement conflict: a
// concurrent order may legitimately take stock between our validation read
// and our decrement. A second conflict is surfaced as insufficient stock.
const maxPlaceAttempts = 2

func (s *OrderService) PlaceOrder(ctx context.Context, userID string, shippingAddress models.Address) (*models.Order, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	for attempt := 1; ; attempt++ {
		if err := s.validateStock(ctx, cart.Items); err != nil {
			return nil, err
		}

		order, conflictID, err := s.apply(ctx, userID, cart, shippingAddress)
		if err != nil {
			return nil, err
		}
		if conflictID == "" {
			return order, nil
		}
		if attempt == maxPlaceAttempts {
			return nil, s.shortfall(ctx, cart.Items, conflictID)
		}
	}
}

// validateStock requires every line to be coverable by current stock. It
// mutates nothing; a failed validation leaves the cart and all stock
// untouched, so retrying it is free.
func (s *OrderService) validateStock(ctx context.Context, items []models.CartItem) error {
	for _, item := range items {
		available, err := s.stock.GetStock(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrProductNotFound) {
				return &InsufficientStockError{
					ProductID:   item.ProductID,
					ProductName: item.ProductName,
					Available:   0,
					Requested:   item.Quantity,
				}
			}
			return err
		}
		if available < item.Quantity {
			return &InsufficientStockError{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Available:   available,
				Requested:   item.Quantity,
			}
		}
	}
	return nil
}

// apply performs the three-way effect: decrement every line, append the
// order, clear the cart. Any failure after the first decrement reverses the
// decrements already applied, so callers observe all-or-nothing.
//
// The returned conflictID is the product whose conditional decrement lost a
// race after validation passed; the caller decides whether to revalidate.
func (s *OrderService) apply(ctx context.Context, userID string, cart *models.Cart, addr models.Address) (*models.Order, string, error) {
	// Once the first decrement lands, the operation must run to a fully
	// applied or fully reverted end even if the request goes away.
	ctx = context.WithoutCancel(ctx)

	applied := make([]models.CartItem, 0, len(cart.Items))
	revert := func() {
		for _, item := range applied {
			if err := s.stock.ReplenishStock(ctx, item.ProductID, item.Quantity); err != nil {
				log.Printf("stock compensation failed for product %s (+%d): %v", item.ProductID, item.Quantity, err)
			}
		}
	}

	for _, item := range cart.Items {
		ok, err := s.stock.TryDecrementStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			revert()
			return nil, "", err
		}
		if !ok {
			revert()
			return nil, item.ProductID, nil
		}
		applied = append(applied, item)
	}

	stored, err := s.orders.InsertOrder(ctx, buildOrder(userID, cart, addr))
	if err != nil {
		revert()
		return nil, "", err
	}

	if err := s.carts.ClearCart(ctx, userID); err != nil {
		// The order is already appended and the sink is append-only, so the
		// compensation is to cancel it and hand the stock back.
		revert()
		if _, cancelErr := s.orders.UpdateStatus(ctx, stored.ID, models.OrderStatusCancelled); cancelErr != nil {
			log.Printf("failed to cancel order %s after cart clear failure: %v", stored.ID, cancelErr)
		}
		return nil, "", err
	}

	return stored, "", nil
}

// shortfall re-reads stock for the conflicted product so the error carries
// post-conflict availability, not the stale validated value.
func (s *OrderService) shortfall(ctx context.Context, items []models.CartItem, productID string) error {
	for _, item := range items {
		if item.ProductID != productID {
			continue
		}
		available, err := s.stock.GetStock(ctx, item.ProductID)
		if err != nil && !errors.Is(err, repositories.ErrProductNotFound) {
			return err
		}
		return &InsufficientStockError{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Available:   available,
			Requested:   item.Quantity,
		}
	}
	return &InsufficientStockError{ProductID: productID}
}

func buildOrder(userID string, cart *models.Cart, addr models.Address) *models.Order {
	items := make([]models.OrderItem, 0, len(cart.Items))
	total := 0.0
	for _, it := range cart.Items {
		items = append(items, models.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
		total += it.Subtotal
	}
	return &models.Order{
		UserID:          userID,
		Items:           items,
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		ShippingAddress: addr,
	}
}

func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *OrderService) GetAllOrders(ctx context.Context, page, limit int) ([]models.Order, int, error) {
	return s.orders.ListAll(ctx, page, limit)
}

// UpdateOrderStatus drives the administrative status transitions. The
// engine itself only ever creates orders as PENDING.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidTransition
	}
	current, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(current.Status, status) {
		return nil, ErrInvalidTransition
	}
	return s.orders.UpdateStatus(ctx, orderID, status)
}
