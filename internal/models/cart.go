package models

import (
	"time"

	"github.com/google/uuid"
)

type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id,omitempty"`
}

type ColorRef struct {
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

type SizeRef struct {
	Size  string  `json:"size"`
	Price float64 `json:"price"`
}

// LineItem is one cart entry: a purchasable variant plus quantity.
// Two items with the same (product, color name, size label) must never
// coexist in a cart.
type LineItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Name      string    `json:"name"`
	Images    []Image   `json:"images,omitempty"`
	Color     ColorRef  `json:"color"`
	Size      SizeRef   `json:"size"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// Cart holds one document per user. UserID is the identity provider uid and
// is immutable once the cart exists.
type Cart struct {
	ID        uuid.UUID  `json:"id"`
	UserID    string     `json:"user_id"`
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type UpsertItemRequest struct {
	Item LineItem `json:"item" validate:"required"`
}

type ReplaceCartRequest struct {
	Items []LineItem `json:"items" validate:"dive"`
}

type SetQuantityRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	ColorName string    `json:"color_name"`
	SizeLabel string    `json:"size_label"`
	Quantity  int       `json:"quantity"   validate:"min=0"`
}

// CheckoutResponse is the simulated order placement result. No payment is
// taken; the reference exists so the storefront can show a confirmation.
type CheckoutResponse struct {
	OrderRef  string    `json:"order_ref"`
	Total     float64   `json:"total"`
	ItemCount int       `json:"item_count"`
	PlacedAt  time.Time `json:"placed_at"`
}
