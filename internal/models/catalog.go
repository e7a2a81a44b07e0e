// internal/models/catalog.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/stitchworks/apparel-backend/internal/pricing"
)

type Category struct {
	BaseModel
	Name string `json:"name" gorm:"size:100;not null"`
	Slug string `json:"slug" gorm:"size:100;uniqueIndex"`
}

type Product struct {
	BaseModel
	Name        string          `json:"name" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"type:text"`
	CategoryID  *uuid.UUID      `json:"category_id" gorm:"type:uuid;index"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Images      pq.StringArray  `json:"images" gorm:"type:text[]"`
	Status      ProductStatus   `json:"status" gorm:"type:varchar(20);default:'active';index"`

	// Relationships
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Variants []Variant `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
}

type Variant struct {
	BaseModel
	ProductID     uuid.UUID        `json:"product_id" gorm:"type:uuid;not null;index"`
	SKU           string           `json:"sku" gorm:"size:64;uniqueIndex"`
	Color         string           `json:"color" gorm:"size:50"`
	Size          string           `json:"size" gorm:"size:20"`
	Stock         int              `json:"stock" gorm:"default:0"`
	PriceOverride *decimal.Decimal `json:"price_override" gorm:"type:decimal(10,2)"`
}

// DesignCategory carries the per-size price matrix for the designs it groups.
type DesignCategory struct {
	BaseModel
	Name        string           `json:"name" gorm:"size:100;not null"`
	PriceSmall  *decimal.Decimal `json:"price_small" gorm:"type:decimal(10,2)"`
	PriceMedium *decimal.Decimal `json:"price_medium" gorm:"type:decimal(10,2)"`
	PriceLarge  *decimal.Decimal `json:"price_large" gorm:"type:decimal(10,2)"`
}

type Design struct {
	BaseModel
	Name       string     `json:"name" gorm:"size:255;not null"`
	ImageRef   string     `json:"image_ref" gorm:"size:512;not null"`
	CategoryID *uuid.UUID `json:"category_id" gorm:"type:uuid;index"`
	IsActive   bool       `json:"is_active" gorm:"default:true;index"`

	// Relationships
	Category *DesignCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (p Product) ToPricing() pricing.Product {
	return pricing.Product{
		ID:         p.ID.String(),
		Name:       p.Name,
		Price:      p.Price,
		CategoryID: uuidString(p.CategoryID),
	}
}

func (v Variant) ToPricing() pricing.Variant {
	return pricing.Variant{
		ID:            v.ID.String(),
		ProductID:     v.ProductID.String(),
		Color:         v.Color,
		Size:          v.Size,
		Stock:         v.Stock,
		PriceOverride: v.PriceOverride,
	}
}

func (dc DesignCategory) ToPricing() pricing.DesignCategory {
	return pricing.DesignCategory{
		ID:     dc.ID.String(),
		Name:   dc.Name,
		Small:  dc.PriceSmall,
		Medium: dc.PriceMedium,
		Large:  dc.PriceLarge,
	}
}

func (d Design) ToPricing() pricing.DesignItem {
	return pricing.DesignItem{
		ID:         d.ID.String(),
		Name:       d.Name,
		ImageRef:   d.ImageRef,
		CategoryID: uuidString(d.CategoryID),
	}
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
