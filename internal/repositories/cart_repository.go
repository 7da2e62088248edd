package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/poshakbd/storefront/internal/models"
	"github.com/poshakbd/storefront/internal/utils"
)

// CartRepository persists one cart document per user. UpsertCart is a single
// statement so an immediate per-item write and a debounced overwrite landing
// close together serialize at the row; last write wins, nothing is lost
// mid-flight.
type CartRepository interface {
	UpsertCart(ctx context.Context, userID string, items []models.LineItem) (*models.Cart, error)
	GetCartByUserID(ctx context.Context, userID string) (*models.Cart, error)
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) UpsertCart(ctx context.Context, userID string, items []models.LineItem) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if items == nil {
		items = []models.LineItem{}
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		INSERT INTO carts (id, user_id, items, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, NOW(), NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET items = EXCLUDED.items, updated_at = NOW()
		RETURNING id, user_id, items, created_at, updated_at
	`

	return r.scanCart(r.DB.QueryRowContext(dbCtx, query, userID, itemsJSON))
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, items, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`

	cart, err := r.scanCart(r.DB.QueryRowContext(dbCtx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) scanCart(row *sql.Row) (*models.Cart, error) {
	cart := &models.Cart{}

	var itemsJSON []byte

	err := row.Scan(&cart.ID, &cart.UserID, &itemsJSON, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	if cart.Items == nil {
		cart.Items = []models.LineItem{}
	}

	return cart, nil
}
