package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/poshakbd/storefront/internal/models"
	"github.com/poshakbd/storefront/internal/utils"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

// Colors and specifications are stored as JSONB documents; the cart only
// ever reads a chosen color/size pair out of them.
func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	colorsJSON, err := json.Marshal(product.Colors)
	if err != nil {
		return fmt.Errorf("failed to marshal product colors: %w", err)
	}

	specsJSON, err := json.Marshal(product.Specifications)
	if err != nil {
		return fmt.Errorf("failed to marshal product specifications: %w", err)
	}

	query := `
		INSERT INTO products (id, name, description, category, colors, brand, model, specifications, tags, featured, created_by, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		product.Name, product.Description, product.Category, colorsJSON,
		product.Brand, product.Model, specsJSON, pq.Array(product.Tags),
		product.Featured, product.CreatedBy,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, description, category, colors, brand, model, specifications, tags, featured, ratings, num_of_reviews, created_by, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	product, err := r.scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	colorsJSON, err := json.Marshal(product.Colors)
	if err != nil {
		return fmt.Errorf("failed to marshal product colors: %w", err)
	}

	query := `
		UPDATE products
		SET name = $1, description = $2, category = $3, colors = $4, brand = $5, model = $6, tags = $7, featured = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		product.Name, product.Description, product.Category, colorsJSON,
		product.Brand, product.Model, pq.Array(product.Tags), product.Featured,
		product.ID,
	).Scan(&product.UpdatedAt)
}

func (r *productRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM products`

	err := r.DB.QueryRowContext(dbCtx, countQuery).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `
		SELECT id, name, description, category, colors, brand, model, specifications, tags, featured, ratings, num_of_reviews, created_by, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product, err := r.scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *productRepository) scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}

	var colorsJSON, specsJSON []byte
	var createdBy sql.NullString

	err := row.Scan(&product.ID, &product.Name, &product.Description, &product.Category,
		&colorsJSON, &product.Brand, &product.Model, &specsJSON,
		pq.Array(&product.Tags), &product.Featured, &product.Ratings,
		&product.NumOfReviews, &createdBy, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(colorsJSON, &product.Colors); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product colors: %w", err)
	}

	if len(specsJSON) > 0 {
		if err := json.Unmarshal(specsJSON, &product.Specifications); err != nil {
			return nil, fmt.Errorf("failed to unmarshal product specifications: %w", err)
		}
	}

	product.CreatedBy = createdBy.String

	return product, nil
}
