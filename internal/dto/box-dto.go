package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BoxProductRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  uint      `json:"quantity"`
}

type BoxRequest struct {
	Name     string          `json:"name" validate:"required,min=3,max=50" example:"Starter kit"`
	Barcode  string          `json:"barcode,omitempty"`
	Quantity uint            `json:"quantity"`
	Discount decimal.Decimal `json:"discount" example:"10"` // percent
	Weight   float32         `json:"weight"`
	Depth    float32         `json:"depth"`
	Height   float32         `json:"height"`
	Width    float32         `json:"width"`

	// nil keeps the current lines on update
	Products []BoxProductRequest `json:"products,omitempty"`
}

type BoxProductResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  uint      `json:"quantity"`
}

type BoxResponse struct {
	ID        uuid.UUID            `json:"id"`
	Name      string               `json:"name"`
	Barcode   string               `json:"barcode,omitempty"`
	Quantity  uint                 `json:"quantity"`
	Discount  decimal.Decimal      `json:"discount"`
	Weight    float32              `json:"weight"`
	Depth     float32              `json:"depth"`
	Height    float32              `json:"height"`
	Width     float32              `json:"width"`
	Products  []BoxProductResponse `json:"products"`
	CreatedBy string               `json:"created_by"`
	UpdatedBy string               `json:"updated_by"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}
