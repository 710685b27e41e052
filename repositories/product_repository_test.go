package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductRepoMock(t *testing.T) (*ProductRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewProductRepository(mock), mock
}

func productRow(mock pgxmock.PgxPoolIface, id string, stock int) *pgxmock.Rows {
	now := time.Now()
	return mock.NewRows([]string{
		"id", "name", "description", "category", "price", "stock_quantity", "image_url", "created_at", "updated_at",
	}).AddRow(id, "Spirited Journey", "A4 art print", "anime", 24.99, stock, "", now, now)
}

func TestTryDecrementStock(t *testing.T) {
	t.Run("enough stock", func(t *testing.T) {
		repo, mock := newProductRepoMock(t)
		mock.ExpectExec("UPDATE products SET stock_quantity").
			WithArgs("p1", 2).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		ok, err := repo.TryDecrementStock(context.Background(), "p1", 2)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("condition not met", func(t *testing.T) {
		repo, mock := newProductRepoMock(t)
		mock.ExpectExec("UPDATE products SET stock_quantity").
			WithArgs("p1", 99).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		ok, err := repo.TryDecrementStock(context.Background(), "p1", 99)
		require.NoError(t, err)
		assert.False(t, ok, "losing the conditional update is not an error")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetStock(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newProductRepoMock(t)
		mock.ExpectQuery("SELECT stock_quantity FROM products").
			WithArgs("p1").
			WillReturnRows(mock.NewRows([]string{"stock_quantity"}).AddRow(7))

		stock, err := repo.GetStock(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, 7, stock)
	})

	t.Run("missing product", func(t *testing.T) {
		repo, mock := newProductRepoMock(t)
		mock.ExpectQuery("SELECT stock_quantity FROM products").
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetStock(context.Background(), "ghost")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestReplenishStock(t *testing.T) {
	repo, mock := newProductRepoMock(t)
	mock.ExpectExec("UPDATE products SET stock_quantity").
		WithArgs("p1", 3).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.ReplenishStock(context.Background(), "p1", 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustStock(t *testing.T) {
	t.Run("applies delta", func(t *testing.T) {
		repo, mock := newProductRepoMock(t)
		mock.ExpectQuery("UPDATE products SET stock_quantity").
			WithArgs("p1", -2).
			WillReturnRows(productRow(mock, "p1", 8))

		product, err := repo.AdjustStock(context.Background(), "p1", -2)
		require.NoError(t, err)
		assert.Equal(t, 8, product.StockQuantity)
	})

	t.Run("refuses to go negative", func(t *testing.T) {
		repo, mock := newProductRepoMock(t)
		mock.ExpectQuery("UPDATE products SET stock_quantity").
			WithArgs("p1", -50).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectQuery("SELECT (.+) FROM products WHERE id").
			WithArgs("p1").
			WillReturnRows(productRow(mock, "p1", 8))

		_, err := repo.AdjustStock(context.Background(), "p1", -50)
		assert.ErrorIs(t, err, ErrStockConflict)
	})

	t.Run("missing product", func(t *testing.T) {
		repo, mock := newProductRepoMock(t)
		mock.ExpectQuery("UPDATE products SET stock_quantity").
			WithArgs("ghost", 5).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectQuery("SELECT (.+) FROM products WHERE id").
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.AdjustStock(context.Background(), "ghost", 5)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestGetProductByID(t *testing.T) {
	repo, mock := newProductRepoMock(t)
	mock.ExpectQuery("SELECT (.+) FROM products WHERE id").
		WithArgs("p1").
		WillReturnRows(productRow(mock, "p1", 50))

	product, err := repo.GetProductByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Spirited Journey", product.Name)
	assert.Equal(t, 50, product.StockQuantity)
}

func TestDeleteProductNotFound(t *testing.T) {
	repo, mock := newProductRepoMock(t)
	mock.ExpectExec("DELETE FROM products").
		WithArgs("ghost").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.DeleteProduct(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
