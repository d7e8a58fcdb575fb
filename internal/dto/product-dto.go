package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	Name       string          `json:"name" validate:"required" example:"Hammer"`
	Image      string          `json:"image,omitempty"` // URL or data URI
	UnitPrice  decimal.Decimal `json:"unit_price" example:"12.50"`
	Quantity   uint            `json:"quantity"`
	Barcode    string          `json:"barcode,omitempty" example:"7891234567895"`
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
}

type QuantityRequest struct {
	Delta int `json:"delta" example:"-3"`
}

type ProductResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Image      string          `json:"image,omitempty"`
	ImageType  string          `json:"image_type"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   uint            `json:"quantity"`
	Barcode    string          `json:"barcode,omitempty"`
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
	CreatedBy  string          `json:"created_by"`
	UpdatedBy  string          `json:"updated_by"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
