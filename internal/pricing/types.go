// internal/pricing/types.go
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

type SizeTier string

const (
	SizeSmall  SizeTier = "small"
	SizeMedium SizeTier = "medium"
	SizeLarge  SizeTier = "large"
)

type LineMode string

const (
	LineModeGallery LineMode = "gallery"
	LineModeUpload  LineMode = "upload"
)

type Availability string

const (
	AvailabilityInStock   Availability = "in_stock"
	AvailabilityOnRequest Availability = "on_request"
)

// Limits the caller enforces before invoking the engine.
const (
	MaxGalleryDesigns = 3
	MinUploadRefs     = 1
	MaxUploadRefs     = 5
)

type Product struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	CategoryID string          `json:"category_id,omitempty"`
}

type Variant struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"product_id"`
	Color         string           `json:"color"`
	Size          string           `json:"size"`
	Stock         int              `json:"stock"`
	PriceOverride *decimal.Decimal `json:"price_override,omitempty"`
}

// DesignCategory holds the size matrix for its designs. Nil tiers fall back
// to the store defaults.
type DesignCategory struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Small  *decimal.Decimal `json:"small,omitempty"`
	Medium *decimal.Decimal `json:"medium,omitempty"`
	Large  *decimal.Decimal `json:"large,omitempty"`
}

type DesignItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ImageRef   string `json:"image_ref"`
	CategoryID string `json:"category_id,omitempty"`
}

// Catalog is the read-only snapshot resolved by the caller for one pricing call.
type Catalog struct {
	Products         map[string]Product
	Variants         map[string]Variant
	Designs          map[string]DesignItem
	DesignCategories map[string]DesignCategory
}

// CustomizationSettings replaces the store-wide settings the storefront used
// to read implicitly. Nil values use the built-in defaults.
type CustomizationSettings struct {
	DesignSmall          *decimal.Decimal `json:"design_small,omitempty"`
	DesignMedium         *decimal.Decimal `json:"design_medium,omitempty"`
	DesignLarge          *decimal.Decimal `json:"design_large,omitempty"`
	PersonalizationSmall *decimal.Decimal `json:"personalization_small,omitempty"`
	PersonalizationLarge *decimal.Decimal `json:"personalization_large,omitempty"`
}

type SelectedDesign struct {
	DesignID string   `json:"design_id"`
	Size     SizeTier `json:"size"`
	Location string   `json:"location"`
}

type Personalization struct {
	Text string   `json:"text"`
	Size SizeTier `json:"size"`
}

type LineItem struct {
	ID              string           `json:"id,omitempty"`
	ProductID       string           `json:"product_id"`
	VariantID       string           `json:"variant_id,omitempty"`
	Quantity        int              `json:"quantity"`
	Mode            LineMode         `json:"mode"`
	Designs         []SelectedDesign `json:"designs,omitempty"`
	Personalization *Personalization `json:"personalization,omitempty"`
	UploadRefs      []string         `json:"upload_refs,omitempty"`
	Instructions    string           `json:"instructions,omitempty"`
}

type LoyaltySnapshot struct {
	CustomerID          string           `json:"customer_id,omitempty"`
	CompletedOrders     int              `json:"completed_orders"`
	ReferenceOrderValue *decimal.Decimal `json:"reference_order_value,omitempty"`
}

type OrderRequest struct {
	Lines      []LineItem
	Promotions []Promotion
	Catalog    Catalog
	Settings   CustomizationSettings
	Loyalty    LoyaltySnapshot
	Now        time.Time
}

type GiftReward struct {
	PromotionID     string `json:"promotion_id"`
	RewardProductID string `json:"reward_product_id"`
}

type StoreCreditGrant struct {
	PromotionID string          `json:"promotion_id"`
	CustomerID  string          `json:"customer_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

type PromotionWarning struct {
	PromotionID string `json:"promotion_id"`
	Reason      string `json:"reason"`
}

type LinePriceBreakdown struct {
	LineID                  string            `json:"line_id,omitempty"`
	ProductID               string            `json:"product_id"`
	ProductName             string            `json:"product_name,omitempty"`
	VariantID               string            `json:"variant_id,omitempty"`
	Quantity                int               `json:"quantity"`
	BasePrice               decimal.Decimal   `json:"base_price"`
	DesignsAddition         decimal.Decimal   `json:"designs_addition"`
	PersonalizationAddition decimal.Decimal   `json:"personalization_addition"`
	UnitPrice               decimal.Decimal   `json:"unit_price"`
	PromotionID             *string           `json:"promotion_id"`
	Discount                decimal.Decimal   `json:"discount"`
	Gift                    *GiftReward       `json:"gift,omitempty"`
	StoreCredit             *StoreCreditGrant `json:"store_credit,omitempty"`
	FinalUnitPrice          decimal.Decimal   `json:"final_unit_price"`
	LineTotal               decimal.Decimal   `json:"line_total"`
	QuotePending            bool              `json:"quote_pending"`
	IsReward                bool              `json:"is_reward"`
	Availability            Availability      `json:"availability"`
}

type OrderPriceBreakdown struct {
	Currency            string               `json:"currency,omitempty"`
	Lines               []LinePriceBreakdown `json:"lines"`
	PreDiscountSubtotal decimal.Decimal      `json:"pre_discount_subtotal"`
	Subtotal            decimal.Decimal      `json:"subtotal"`
	OrderPromotionID    *string              `json:"order_promotion_id"`
	OrderDiscount       decimal.Decimal      `json:"order_discount"`
	GrandTotal          decimal.Decimal      `json:"grand_total"`
	PendingQuotation    int                  `json:"pending_quotation"`
	StoreCreditGrants   []StoreCreditGrant   `json:"store_credit_grants"`
	Warnings            []PromotionWarning   `json:"warnings"`
	EvaluatedAt         time.Time            `json:"evaluated_at"`
}
