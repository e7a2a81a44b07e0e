// internal/models/promotion.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stitchworks/apparel-backend/internal/pricing"
)

type Promotion struct {
	BaseModel
	Name              string          `json:"name" gorm:"size:255;not null"`
	Description       string          `json:"description" gorm:"type:text"`
	Type              string          `json:"type" gorm:"type:varchar(30);not null;index"`
	Scope             string          `json:"scope" gorm:"type:varchar(20);not null;index"`
	TargetID          *uuid.UUID      `json:"target_id" gorm:"type:uuid;index"`
	Value             decimal.Decimal `json:"value" gorm:"type:decimal(10,2);not null;default:0"`
	MinQuantity       int             `json:"min_quantity" gorm:"default:0"`
	MinOrdersRequired int             `json:"min_orders_required" gorm:"default:0"`
	MinOrderValue     decimal.Decimal `json:"min_order_value_condition" gorm:"type:decimal(10,2);not null;default:0"`
	RewardProductID   *uuid.UUID      `json:"reward_product_id" gorm:"type:uuid"`
	StartDate         time.Time       `json:"start_date" gorm:"not null;index"`
	EndDate           *time.Time      `json:"end_date" gorm:"index"`
	IsActive          bool            `json:"is_active" gorm:"default:true;index"`
}

// ToPricing produces the immutable snapshot the pricing engine consumes.
func (p Promotion) ToPricing() pricing.Promotion {
	return pricing.Promotion{
		ID:                p.ID.String(),
		Name:              p.Name,
		Type:              pricing.PromotionType(p.Type),
		Scope:             pricing.Scope(p.Scope),
		TargetID:          uuidString(p.TargetID),
		Value:             p.Value,
		MinQuantity:       p.MinQuantity,
		MinOrdersRequired: p.MinOrdersRequired,
		MinOrderValue:     p.MinOrderValue,
		RewardProductID:   uuidString(p.RewardProductID),
		StartDate:         p.StartDate,
		EndDate:           p.EndDate,
		IsActive:          p.IsActive,
	}
}
