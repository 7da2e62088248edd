package models

import (
	"time"

	"github.com/google/uuid"
)

type SizeVariant struct {
	Size  string  `json:"size"  validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
	Stock int     `json:"stock" validate:"gte=0"`
}

type ColorVariant struct {
	Name   string        `json:"name" validate:"required"`
	Code   string        `json:"code,omitempty"`
	Images []Image       `json:"images,omitempty" validate:"dive"`
	Sizes  []SizeVariant `json:"sizes" validate:"required,min=1,dive"`
}

type Specification struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Product struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	Colors         []ColorVariant  `json:"colors"`
	Brand          string          `json:"brand,omitempty"`
	Model          string          `json:"model,omitempty"`
	Specifications []Specification `json:"specifications,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
	Featured       bool            `json:"featured"`
	Ratings        float64         `json:"ratings"`
	NumOfReviews   int             `json:"num_of_reviews"`
	CreatedBy      string          `json:"created_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type CreateProductRequest struct {
	Name           string          `json:"name" validate:"required,max=100"`
	Description    string          `json:"description" validate:"required,max=2000"`
	Category       string          `json:"category" validate:"required,oneof=clothing electronics accessories footwear"`
	Colors         []ColorVariant  `json:"colors" validate:"required,min=1,dive"`
	Brand          string          `json:"brand,omitempty" validate:"omitempty,max=50"`
	Model          string          `json:"model,omitempty" validate:"omitempty,max=50"`
	Specifications []Specification `json:"specifications,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
	Featured       bool            `json:"featured,omitempty"`
}

type UpdateProductRequest struct {
	Name        *string         `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category    *string         `json:"category,omitempty" validate:"omitempty,oneof=clothing electronics accessories footwear"`
	Colors      *[]ColorVariant `json:"colors,omitempty" validate:"omitempty,min=1,dive"`
	Brand       *string         `json:"brand,omitempty" validate:"omitempty,max=50"`
	Model       *string         `json:"model,omitempty" validate:"omitempty,max=50"`
	Tags        *[]string       `json:"tags,omitempty"`
	Featured    *bool           `json:"featured,omitempty"`
}
