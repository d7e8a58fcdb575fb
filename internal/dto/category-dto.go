package dto

import (
	"time"

	"github.com/google/uuid"
)

type CategoryRequest struct {
	Name string `json:"name" validate:"required" example:"Tools"`
}

type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	UpdatedBy string    `json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
