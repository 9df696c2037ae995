package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Prices are stored as NUMERIC(10,2).
const PriceScale = 2

var MaxPrice = decimal.RequireFromString("99999999.99")

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Product struct {
	ID            uuid.UUID       `json:"id"`
	CategoryID    *uuid.UUID      `json:"category_id,omitempty"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"image_url,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Category      *Category       `json:"category,omitempty"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type CreateProductRequest struct {
	CategoryID    *uuid.UUID      `json:"category_id,omitempty"`
	Name          string          `json:"name" validate:"required,min=2,max=200"`
	Description   string          `json:"description,omitempty"`
	ImageURL      string          `json:"image_url,omitempty" validate:"omitempty,url"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
}

type UpdateProductRequest struct {
	CategoryID    *uuid.UUID       `json:"category_id,omitempty"`
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description   *string          `json:"description,omitempty"`
	ImageURL      *string          `json:"image_url,omitempty" validate:"omitempty,url"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	StockQuantity *int             `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
}

// MaxSearchLength bounds the free-text product search.
const MaxSearchLength = 100

// ProductFilter narrows product listings. Query matches name or description, case-insensitively.
type ProductFilter struct {
	CategoryID *uuid.UUID
	Query      string
	Page       int
	PageSize   int
}
