package repositories

import (
	"context"
	"testing"
	"time"

	"art-store/models"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartRepoMock(t *testing.T) (*CartRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewCartRepository(mock), mock
}

func TestGetCartComputesTotals(t *testing.T) {
	repo, mock := newCartRepoMock(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO carts").
		WithArgs(pgxmock.AnyArg(), "u1").
		WillReturnRows(mock.NewRows([]string{"id", "updated_at"}).AddRow("cart-1", now))
	mock.ExpectQuery("FROM cart_items WHERE cart_id").
		WithArgs("cart-1").
		WillReturnRows(mock.NewRows([]string{"product_id", "product_name", "quantity", "unit_price"}).
			AddRow("p1", "Spirited Journey", 2, 24.99).
			AddRow("p2", "Sakura Duel", 1, 29.99))

	cart, err := repo.GetCart(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.InDelta(t, 49.98, cart.Items[0].Subtotal, 0.001)
	assert.InDelta(t, 79.97, cart.TotalAmount, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCartCreatesEmptyCartOnFirstAccess(t *testing.T) {
	repo, mock := newCartRepoMock(t)

	mock.ExpectQuery("INSERT INTO carts").
		WithArgs(pgxmock.AnyArg(), "new-user").
		WillReturnRows(mock.NewRows([]string{"id", "updated_at"}).AddRow("cart-9", time.Now()))
	mock.ExpectQuery("FROM cart_items WHERE cart_id").
		WithArgs("cart-9").
		WillReturnRows(mock.NewRows([]string{"product_id", "product_name", "quantity", "unit_price"}))

	cart, err := repo.GetCart(context.Background(), "new-user")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalAmount)
}

func TestSetItemQuantityMissingLine(t *testing.T) {
	repo, mock := newCartRepoMock(t)

	mock.ExpectExec("UPDATE cart_items SET quantity").
		WithArgs("cart-1", "ghost", 3).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SetItemQuantity(context.Background(), "cart-1", "ghost", 3)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestUpsertItemMergesQuantity(t *testing.T) {
	repo, mock := newCartRepoMock(t)
	item := models.CartItem{ProductID: "p1", ProductName: "Tidal Glass", Quantity: 2, UnitPrice: 27.50}

	mock.ExpectExec("INSERT INTO cart_items").
		WithArgs("cart-1", "p1", "Tidal Glass", 2, 27.50).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("UPDATE carts SET updated_at").
		WithArgs("cart-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.UpsertItem(context.Background(), "cart-1", item))
	assert.NoError(t, mock.ExpectationsWereMet())
}
