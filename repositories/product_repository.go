package repositories

import (
	"context"
	"errors"
	"strconv"
	"time"

	"art-store/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProductRepository struct {
	db DBPool
}

func NewProductRepository(db DBPool) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, description, category, price, stock_quantity, image_url, created_at, updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Price,
		&p.StockQuantity, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	product.ID = uuid.NewString()
	query := `
		INSERT INTO products (id, name, description, category, price, stock_quantity, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		product.ID, product.Name, product.Description, product.Category,
		product.Price, product.StockQuantity, product.ImageURL, time.Now(),
	).Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRow(ctx, query, id))
}

func (r *ProductRepository) list(ctx context.Context, where string, args []any, page, limit int) ([]models.Product, int, error) {
	countQuery := `SELECT COUNT(*) FROM products` + where

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	query := `SELECT ` + productColumns + ` FROM products` + where +
		` ORDER BY created_at DESC LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)

	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Category, &p.Price,
			&p.StockQuantity, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func (r *ProductRepository) ListProducts(ctx context.Context, page, limit int) ([]models.Product, int, error) {
	return r.list(ctx, "", nil, page, limit)
}

func (r *ProductRepository) SearchProducts(ctx context.Context, q string, page, limit int) ([]models.Product, int, error) {
	return r.list(ctx, ` WHERE name ILIKE $1`, []any{"%" + q + "%"}, page, limit)
}

func (r *ProductRepository) ListByCategory(ctx context.Context, category string, page, limit int) ([]models.Product, int, error) {
	return r.list(ctx, ` WHERE category = $1`, []any{category}, page, limit)
}

func (r *ProductRepository) ListByPriceRange(ctx context.Context, minPrice, maxPrice float64, page, limit int) ([]models.Product, int, error) {
	return r.list(ctx, ` WHERE price BETWEEN $1 AND $2`, []any{minPrice, maxPrice}, page, limit)
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, category = $4, price = $5,
		stock_quantity = $6, image_url = $7, updated_at = $8 WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Category,
		product.Price, product.StockQuantity, product.ImageURL, time.Now(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// GetStock reads the committed stock quantity. Reads go straight to the
// row, so a validator always observes at least the latest committed
// deduction.
func (r *ProductRepository) GetStock(ctx context.Context, productID string) (int, error) {
	var stock int
	err := r.db.QueryRow(ctx, `SELECT stock_quantity FROM products WHERE id = $1`, productID).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrProductNotFound
		}
		return 0, err
	}
	return stock, nil
}

// TryDecrementStock is a single conditional check-and-decrement: the row is
// only updated when enough stock remains. A false result means the quantity
// changed since the caller validated, or the product is gone.
func (r *ProductRepository) TryDecrementStock(ctx context.Context, productID string, quantity int) (bool, error) {
	query := `
		UPDATE products SET stock_quantity = stock_quantity - $2, updated_at = now()
		WHERE id = $1 AND stock_quantity >= $2
	`
	tag, err := r.db.Exec(ctx, query, productID, quantity)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ReplenishStock reverses a previously applied decrement.
func (r *ProductRepository) ReplenishStock(ctx context.Context, productID string, quantity int) error {
	query := `UPDATE products SET stock_quantity = stock_quantity + $2, updated_at = now() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, productID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// AdjustStock applies an arbitrary admin delta, refusing to go negative.
func (r *ProductRepository) AdjustStock(ctx context.Context, productID string, delta int) (*models.Product, error) {
	query := `
		UPDATE products SET stock_quantity = stock_quantity + $2, updated_at = now()
		WHERE id = $1 AND stock_quantity + $2 >= 0
		RETURNING ` + productColumns
	product, err := scanProduct(r.db.QueryRow(ctx, query, productID, delta))
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, ErrProductNotFound) {
		return nil, err
	}

	// No row matched: either the product is missing or the delta conflicts.
	if _, getErr := r.GetProductByID(ctx, productID); getErr != nil {
		return nil, getErr
	}
	return nil, ErrStockConflict
}
