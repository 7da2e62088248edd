package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	appErrors "github.com/poshakbd/storefront/internal/errors"
	"github.com/poshakbd/storefront/internal/models"
	repository "github.com/poshakbd/storefront/internal/repositories"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest, createdBy string) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error)
}

type productService struct {
	repo      repository.ProductRepository
	sanitizer *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{
		repo: repo,
		// submissions come from a public form, so descriptions are UGC
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest, createdBy string) (*models.Product, error) {

	product := &models.Product{
		Name:           s.sanitizer.Sanitize(req.Name),
		Description:    s.sanitizer.Sanitize(req.Description),
		Category:       req.Category,
		Colors:         req.Colors,
		Brand:          req.Brand,
		Model:          req.Model,
		Specifications: req.Specifications,
		Tags:           req.Tags,
		Featured:       req.Featured,
		CreatedBy:      createdBy,
	}

	err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

// Unlike cart reads, a product lookup that finds nothing IS an error.
func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = s.sanitizer.Sanitize(*req.Name)
	}
	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Colors != nil {
		product.Colors = *req.Colors
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Model != nil {
		product.Model = *req.Model
	}
	if req.Tags != nil {
		product.Tags = *req.Tags
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}

	err = s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error) {

	products, total, err := s.repo.ListProducts(ctx, page, pageSize)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}
