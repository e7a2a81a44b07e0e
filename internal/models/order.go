// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Order struct {
	BaseModel
	OrderNumber         string          `json:"order_number" gorm:"size:32;uniqueIndex;not null"`
	CustomerID          *uuid.UUID      `json:"customer_id" gorm:"type:uuid;index"`
	Channel             OrderChannel    `json:"channel" gorm:"type:varchar(20);default:'storefront';index"`
	Status              OrderStatus     `json:"status" gorm:"type:varchar(20);default:'placed';index"`
	Currency            string          `json:"currency" gorm:"size:3;not null"`
	PreDiscountSubtotal decimal.Decimal `json:"pre_discount_subtotal" gorm:"type:decimal(10,2);not null"`
	Subtotal            decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	OrderDiscount       decimal.Decimal `json:"order_discount" gorm:"type:decimal(10,2);not null"`
	GrandTotal          decimal.Decimal `json:"grand_total" gorm:"type:decimal(10,2);not null"`
	PendingQuotation    int             `json:"pending_quotation" gorm:"default:0"`
	OrderPromotionID    *uuid.UUID      `json:"order_promotion_id" gorm:"type:uuid"`
	Breakdown           JSONB           `json:"breakdown" gorm:"type:jsonb;not null"`
	EvaluatedAt         time.Time       `json:"evaluated_at" gorm:"not null"`
	CompletedAt         *time.Time      `json:"completed_at"`
	Notes               string          `json:"notes" gorm:"type:text"`

	// Relationships
	Customer *Customer   `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Lines    []OrderLine `json:"lines,omitempty" gorm:"foreignKey:OrderID"`
}

type OrderLine struct {
	BaseModel
	OrderID       uuid.UUID       `json:"order_id" gorm:"type:uuid;not null;index"`
	Position      int             `json:"position" gorm:"not null"`
	ProductID     uuid.UUID       `json:"product_id" gorm:"type:uuid;not null;index"`
	VariantID     *uuid.UUID      `json:"variant_id" gorm:"type:uuid"`
	Quantity      int             `json:"quantity" gorm:"not null"`
	Mode          string          `json:"mode" gorm:"type:varchar(20);not null"`
	Customization JSONB           `json:"customization" gorm:"type:jsonb"`
	UploadRefs    pq.StringArray  `json:"upload_refs" gorm:"type:text[]"`
	Instructions  string          `json:"instructions" gorm:"type:text"`
	UnitPrice     decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Discount      decimal.Decimal `json:"discount" gorm:"type:decimal(10,2);not null"`
	LineTotal     decimal.Decimal `json:"line_total" gorm:"type:decimal(10,2);not null"`
	PromotionID   *uuid.UUID      `json:"promotion_id" gorm:"type:uuid"`
	QuotePending  bool            `json:"quote_pending" gorm:"default:false;index"`
	IsReward      bool            `json:"is_reward" gorm:"default:false"`
	Availability  string          `json:"availability" gorm:"type:varchar(20)"`
}
