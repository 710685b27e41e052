package services

import (
	"context"
	"testing"

	"art-store/models"
	"art-store/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCartStore struct {
	cart        *models.Cart
	setQuantErr error
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{cart: &models.Cart{ID: "cart-1", UserID: "u1", Items: []models.CartItem{}}}
}

func (f *fakeCartStore) refresh() {
	total := 0.0
	for i := range f.cart.Items {
		f.cart.Items[i].Subtotal = float64(f.cart.Items[i].Quantity) * f.cart.Items[i].UnitPrice
		total += f.cart.Items[i].Subtotal
	}
	f.cart.TotalAmount = total
}

func (f *fakeCartStore) GetCart(context.Context, string) (*models.Cart, error) {
	f.refresh()
	return f.cart, nil
}

func (f *fakeCartStore) UpsertItem(_ context.Context, _ string, item models.CartItem) error {
	for i := range f.cart.Items {
		if f.cart.Items[i].ProductID == item.ProductID {
			f.cart.Items[i].Quantity += item.Quantity
			return nil
		}
	}
	f.cart.Items = append(f.cart.Items, item)
	return nil
}

func (f *fakeCartStore) SetItemQuantity(_ context.Context, _, productID string, quantity int) error {
	if f.setQuantErr != nil {
		return f.setQuantErr
	}
	for i := range f.cart.Items {
		if f.cart.Items[i].ProductID == productID {
			f.cart.Items[i].Quantity = quantity
			return nil
		}
	}
	return repositories.ErrCartItemNotFound
}

func (f *fakeCartStore) RemoveItem(_ context.Context, _, productID string) error {
	for i := range f.cart.Items {
		if f.cart.Items[i].ProductID == productID {
			f.cart.Items = append(f.cart.Items[:i], f.cart.Items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeCartStore) ClearCart(context.Context, string) error {
	f.cart.Items = []models.CartItem{}
	return nil
}

type fakeProductReader struct {
	products map[string]*models.Product
}

func (f *fakeProductReader) GetProductByID(_ context.Context, id string) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, repositories.ErrProductNotFound
	}
	return product, nil
}

func TestCartAddItemSnapshotsPrice(t *testing.T) {
	store := newFakeCartStore()
	products := &fakeProductReader{products: map[string]*models.Product{
		"p1": {ID: "p1", Name: "Mountain Mist", Price: 19.99, StockQuantity: 10},
	}}
	svc := NewCartService(store, products)

	cart, err := svc.AddItem(context.Background(), "u1", "p1", 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	assert.Equal(t, "Mountain Mist", cart.Items[0].ProductName)
	assert.Equal(t, 19.99, cart.Items[0].UnitPrice)
	assert.InDelta(t, 39.98, cart.TotalAmount, 0.001)

	// A later catalog price change does not reprice the existing line.
	products.products["p1"].Price = 99.99
	cart, err = svc.AddItem(context.Background(), "u1", "p1", 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1, "same product merges into one line")
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 19.99, cart.Items[0].UnitPrice)
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	svc := NewCartService(newFakeCartStore(), &fakeProductReader{products: map[string]*models.Product{}})

	_, err := svc.AddItem(context.Background(), "u1", "nope", 1)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestCartUpdateItemQuantity(t *testing.T) {
	store := newFakeCartStore()
	products := &fakeProductReader{products: map[string]*models.Product{
		"p1": {ID: "p1", Name: "Tidal Glass", Price: 27.50},
	}}
	svc := NewCartService(store, products)

	_, err := svc.AddItem(context.Background(), "u1", "p1", 1)
	require.NoError(t, err)

	cart, err := svc.UpdateItemQuantity(context.Background(), "u1", "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.InDelta(t, 137.50, cart.TotalAmount, 0.001)

	_, err = svc.UpdateItemQuantity(context.Background(), "u1", "missing", 2)
	assert.ErrorIs(t, err, repositories.ErrCartItemNotFound)
}

func TestCartRemoveItem(t *testing.T) {
	store := newFakeCartStore()
	products := &fakeProductReader{products: map[string]*models.Product{
		"p1": {ID: "p1", Name: "Chromatic Drift", Price: 22.00},
		"p2": {ID: "p2", Name: "Fracture Lines", Price: 18.00},
	}}
	svc := NewCartService(store, products)

	_, err := svc.AddItem(context.Background(), "u1", "p1", 1)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "u1", "p2", 1)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(context.Background(), "u1", "p1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)
	assert.InDelta(t, 18.00, cart.TotalAmount, 0.001)
}
