package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Box is a bundle of products sold as one unit.
type Box struct {
	Entity
	Barcode  string          `gorm:"type:varchar(50);index" json:"barcode"`
	Quantity uint            `gorm:"not null;default:0" json:"quantity"`
	Discount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"discount"`
	Weight   float32         `gorm:"not null" json:"weight"`
	Depth    float32         `gorm:"not null" json:"depth"`
	Height   float32         `gorm:"not null" json:"height"`
	Width    float32         `gorm:"not null" json:"width"`
	Products []ProductInBox  `gorm:"foreignKey:BoxID" json:"products"`
}

func NewBox(name, actor string) *Box {
	return &Box{Entity: NewEntity(name, actor)}
}

func (b *Box) EntityType() string { return "Box" }

func (b *Box) AuditProperties() []Property {
	return append(b.baseProperties(),
		Property{Name: "Barcode", Value: b.Barcode},
		Property{Name: "Quantity", Value: b.Quantity},
		Property{Name: "Discount", Value: b.Discount.Round(2)},
		Property{Name: "Weight", Value: b.Weight},
		Property{Name: "Depth", Value: b.Depth},
		Property{Name: "Height", Value: b.Height},
		Property{Name: "Width", Value: b.Width},
	)
}

// ProductInBox is one product line of a box.
type ProductInBox struct {
	Entity
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	BoxID     uuid.UUID `gorm:"type:uuid;not null;index" json:"box_id"`
	Quantity  uint      `gorm:"not null" json:"quantity"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func NewProductInBox(box *Box, product *Product, quantity uint, actor string) *ProductInBox {
	return &ProductInBox{
		Entity:    NewEntity(product.Name, actor),
		ProductID: product.ID,
		BoxID:     box.ID,
		Quantity:  quantity,
		Product:   product,
	}
}

func (p *ProductInBox) EntityType() string { return "ProductInBox" }

func (p *ProductInBox) AuditProperties() []Property {
	return append(p.baseProperties(),
		Property{Name: "ProductId", Value: p.ProductID},
		Property{Name: "BoxId", Value: p.BoxID},
		Property{Name: "Quantity", Value: p.Quantity},
	)
}
