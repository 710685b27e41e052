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

func newOrderRepoMock(t *testing.T) (*OrderRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewOrderRepository(mock), mock
}

// pgxmock requires the expected argument count to match the call exactly;
// these wildcards keep the expectations value-agnostic.
func anyArgs(n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func anyOrderArgs() []interface{}     { return anyArgs(10) }
func anyOrderItemArgs() []interface{} { return anyArgs(6) }

func sampleOrder() *models.Order {
	return &models.Order{
		UserID:      "u1",
		TotalAmount: 79.97,
		Status:      models.OrderStatusPending,
		ShippingAddress: models.Address{
			Street: "12 Gallery Lane", City: "Portland", State: "OR", ZipCode: "97201", Country: "USA",
		},
		Items: []models.OrderItem{
			{ProductID: "p1", ProductName: "Spirited Journey", Quantity: 2, UnitPrice: 24.99, Subtotal: 49.98},
			{ProductID: "p2", ProductName: "Sakura Duel", Quantity: 1, UnitPrice: 29.99, Subtotal: 29.99},
		},
	}
}

func TestInsertOrder(t *testing.T) {
	repo, mock := newOrderRepoMock(t)
	order := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(anyOrderArgs()...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(anyOrderItemArgs()...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(anyOrderItemArgs()...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	stored, err := repo.InsertOrder(context.Background(), order)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertOrderRollsBackOnItemFailure(t *testing.T) {
	repo, mock := newOrderRepoMock(t)
	order := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(anyOrderArgs()...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(anyOrderItemArgs()...).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := repo.InsertOrder(context.Background(), order)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := newOrderRepoMock(t)
	now := time.Now()

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("o1", "CONFIRMED", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("FROM orders WHERE id").
		WithArgs("o1").
		WillReturnRows(mock.NewRows([]string{
			"id", "user_id", "total_amount", "status",
			"shipping_street", "shipping_city", "shipping_state", "shipping_zip_code", "shipping_country",
			"created_at", "updated_at",
		}).AddRow("o1", "u1", 79.97, models.OrderStatusConfirmed,
			"12 Gallery Lane", "Portland", "OR", "97201", "USA", now, now))
	mock.ExpectQuery("FROM order_items WHERE order_id").
		WithArgs("o1").
		WillReturnRows(mock.NewRows([]string{
			"product_id", "product_name", "quantity", "unit_price", "subtotal",
		}).AddRow("p1", "Spirited Journey", 2, 24.99, 49.98))

	order, err := repo.UpdateStatus(context.Background(), "o1", models.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.Len(t, order.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo, mock := newOrderRepoMock(t)

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("ghost", "SHIPPED", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	_, err := repo.UpdateStatus(context.Background(), "ghost", models.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
