package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/poshakbd/storefront/internal/cart"
	appErrors "github.com/poshakbd/storefront/internal/errors"
	"github.com/poshakbd/storefront/internal/metrics"
	"github.com/poshakbd/storefront/internal/models"
	repository "github.com/poshakbd/storefront/internal/repositories"
)

// CartService is the server side of the two-path durability policy: UpsertItem
// is the immediate path a single add rides on, ReplaceCart is the debounced
// wholesale overwrite the session controller issues after a quiet period.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	UpsertItem(ctx context.Context, userID string, item *models.LineItem) (*models.Cart, error)
	ReplaceCart(ctx context.Context, userID string, items []models.LineItem) (*models.Cart, error)
	SetQuantity(ctx context.Context, userID string, req *models.SetQuantityRequest) (*models.Cart, error)
	RemoveProduct(ctx context.Context, userID string, productID uuid.UUID) (*models.Cart, error)
}

type cartService struct {
	repo repository.CartRepository
}

func NewCartService(repo repository.CartRepository) CartService {
	return &cartService{repo: repo}
}

// GetCart returns the stored cart, or a logical empty cart when the user has
// never written one. Absence is a valid result, not a failure; only real
// storage errors propagate.
func (s *cartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {

	if userID == "" {
		return nil, appErrors.ValidationError("User ID is required")
	}

	stored, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.Cart{UserID: userID, Items: []models.LineItem{}}, nil
		}

		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return stored, nil
}

// UpsertItem merges one line item into the user's cart by variant key, taking
// the quantity verbatim, and persists immediately. The cart is created lazily
// on the first write.
func (s *cartService) UpsertItem(ctx context.Context, userID string, item *models.LineItem) (*models.Cart, error) {

	if userID == "" {
		return nil, appErrors.ValidationError("User ID is required")
	}

	if item == nil {
		return nil, appErrors.ValidationError("Item is required")
	}

	current, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := cart.Merge(current.Items, *item)

	saved, err := s.repo.UpsertCart(ctx, userID, merged)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to save cart item").WithError(err)
	}

	metrics.ObserveCartSave(metrics.CartSaveImmediate)

	return saved, nil
}

// ReplaceCart overwrites the item list wholesale. Idempotent: replaying the
// same list leaves the stored state unchanged.
func (s *cartService) ReplaceCart(ctx context.Context, userID string, items []models.LineItem) (*models.Cart, error) {

	if userID == "" {
		return nil, appErrors.ValidationError("User ID is required")
	}

	saved, err := s.repo.UpsertCart(ctx, userID, items)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to save cart").WithError(err)
	}

	metrics.ObserveCartSave(metrics.CartSaveOverwrite)

	return saved, nil
}

func (s *cartService) SetQuantity(ctx context.Context, userID string, req *models.SetQuantityRequest) (*models.Cart, error) {

	if userID == "" {
		return nil, appErrors.ValidationError("User ID is required")
	}

	current, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := cart.Key{ProductID: req.ProductID, ColorName: req.ColorName, SizeLabel: req.SizeLabel}
	updated := cart.SetQuantity(current.Items, key, req.Quantity)

	saved, err := s.repo.UpsertCart(ctx, userID, updated)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	metrics.ObserveCartSave(metrics.CartSaveOverwrite)

	return saved, nil
}

func (s *cartService) RemoveProduct(ctx context.Context, userID string, productID uuid.UUID) (*models.Cart, error) {

	if userID == "" {
		return nil, appErrors.ValidationError("User ID is required")
	}

	current, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := cart.RemoveProduct(current.Items, productID)

	saved, err := s.repo.UpsertCart(ctx, userID, updated)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	metrics.ObserveCartSave(metrics.CartSaveOverwrite)

	return saved, nil
}
