package services

import (
	"context"
	"math"

	"art-store/models"
	"art-store/repositories"
)

type ProductService struct {
	productRepo *repositories.ProductRepository
}

func NewProductService(productRepo *repositories.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func paginate(message string, products []models.Product, page, limit, total int) *models.PaginationResponse {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return &models.PaginationResponse{
		Success: true,
		Message: message,
		Data:    products,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: totalPages,
		},
	}
}

func (s *ProductService) GetAllProducts(ctx context.Context, page, limit int) (*models.PaginationResponse, error) {
	page, limit = clampPage(page, limit)
	products, total, err := s.productRepo.ListProducts(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return paginate("Products retrieved successfully", products, page, limit, total), nil
}

func (s *ProductService) SearchProducts(ctx context.Context, q string, page, limit int) (*models.PaginationResponse, error) {
	page, limit = clampPage(page, limit)
	products, total, err := s.productRepo.SearchProducts(ctx, q, page, limit)
	if err != nil {
		return nil, err
	}
	return paginate("Products retrieved successfully", products, page, limit, total), nil
}

func (s *ProductService) GetProductsByCategory(ctx context.Context, category string, page, limit int) (*models.PaginationResponse, error) {
	page, limit = clampPage(page, limit)
	products, total, err := s.productRepo.ListByCategory(ctx, category, page, limit)
	if err != nil {
		return nil, err
	}
	return paginate("Products retrieved successfully", products, page, limit, total), nil
}

func (s *ProductService) GetProductsByPriceRange(ctx context.Context, minPrice, maxPrice float64, page, limit int) (*models.PaginationResponse, error) {
	page, limit = clampPage(page, limit)
	products, total, err := s.productRepo.ListByPriceRange(ctx, minPrice, maxPrice, page, limit)
	if err != nil {
		return nil, err
	}
	return paginate("Products retrieved successfully", products, page, limit, total), nil
}

func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.productRepo.GetProductByID(ctx, id)
}

func (s *ProductService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
	}
	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.productRepo.DeleteProduct(ctx, id)
}

// AdjustStock is the admin replenishment/correction path; order placement
// never goes through here.
func (s *ProductService) AdjustStock(ctx context.Context, id string, delta int) (*models.Product, error) {
	return s.productRepo.AdjustStock(ctx, id, delta)
}
