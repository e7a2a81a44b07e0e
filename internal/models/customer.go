// internal/models/customer.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Customer struct {
	BaseModel
	Email string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Name  string `json:"name" gorm:"size:255"`
	Phone string `json:"phone" gorm:"size:50"`

	// Relationships
	Orders []Order `json:"orders,omitempty" gorm:"foreignKey:CustomerID"`
}

// StoreCreditGrant records a loyalty_reward issued with an order.
type StoreCreditGrant struct {
	BaseModel
	CustomerID  uuid.UUID       `json:"customer_id" gorm:"type:uuid;not null;index"`
	OrderID     uuid.UUID       `json:"order_id" gorm:"type:uuid;not null;index"`
	PromotionID uuid.UUID       `json:"promotion_id" gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
}
