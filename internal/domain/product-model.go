package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ImageType string

const (
	ImageTypeBase64 ImageType = "Base64"
	ImageTypeURL    ImageType = "URL"
)

type Product struct {
	Entity
	Image      string          `gorm:"type:text" json:"image"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unit_price"`
	Quantity   uint            `gorm:"not null;default:0" json:"quantity"`
	Barcode    string          `gorm:"type:varchar(50);index" json:"barcode"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category   *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func NewProduct(name, actor string) *Product {
	return &Product{Entity: NewEntity(name, actor)}
}

// ImageType reports whether Image holds an inline data URI or a link.
func (p *Product) ImageType() ImageType {
	if strings.HasPrefix(p.Image, "data:") {
		return ImageTypeBase64
	}
	return ImageTypeURL
}

func (p *Product) EntityType() string { return "Product" }

func (p *Product) AuditProperties() []Property {
	return append(p.baseProperties(),
		Property{Name: "Image", Value: p.Image},
		Property{Name: "UnitPrice", Value: p.UnitPrice.Round(2)},
		Property{Name: "Quantity", Value: p.Quantity},
		Property{Name: "Barcode", Value: p.Barcode},
		Property{Name: "CategoryId", Value: optionalUUID(p.CategoryID)},
	)
}
