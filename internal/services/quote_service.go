// internal/services/quote_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stitchworks/apparel-backend/internal/pricing"
	"github.com/stitchworks/apparel-backend/internal/utils"
)

// Snapshot sources the quote flow reads before each pricing call.
type (
	CatalogSource interface {
		Snapshot(ctx context.Context, lines []pricing.LineItem, extraProductIDs []string) (pricing.Catalog, error)
	}
	PromotionSource interface {
		Snapshot(ctx context.Context) ([]pricing.Promotion, error)
	}
	LoyaltySource interface {
		Snapshot(ctx context.Context, customerID string) (pricing.LoyaltySnapshot, error)
	}
	SettingsSource interface {
		CustomizationSettings(ctx context.Context) (pricing.CustomizationSettings, error)
	}
)

type QuoteService struct {
	catalog    CatalogSource
	promotions PromotionSource
	loyalty    LoyaltySource
	settings   SettingsSource
	engine     *pricing.Engine
	clock      func() time.Time
}

type DesignRequest struct {
	DesignID string `json:"design_id" validate:"required"`
	Size     string `json:"size" validate:"required,size_tier"`
	Location string `json:"location" validate:"max=50"`
}

type PersonalizationRequest struct {
	Text string `json:"text" validate:"max=100"`
	Size string `json:"size" validate:"omitempty,size_tier"`
}

type LineRequest struct {
	ID              string                  `json:"id,omitempty" validate:"max=64"`
	ProductID       string                  `json:"product_id" validate:"required"`
	VariantID       string                  `json:"variant_id,omitempty"`
	Quantity        int                     `json:"quantity" validate:"required,min=1,max=1000"`
	Mode            string                  `json:"mode" validate:"required,line_mode"`
	Designs         []DesignRequest         `json:"designs,omitempty" validate:"dive"`
	Personalization *PersonalizationRequest `json:"personalization,omitempty"`
	UploadRefs      []string                `json:"upload_refs,omitempty" validate:"dive,required,max=512"`
	Instructions    string                  `json:"instructions,omitempty" validate:"max=2000"`
}

type QuoteRequest struct {
	CustomerID string        `json:"customer_id,omitempty" validate:"omitempty,uuid"`
	Lines      []LineRequest `json:"lines" validate:"required,min=1,max=100,dive"`

	// ReferenceOrderValue, when set, replaces the evaluated amount in every
	// min_order_value_condition check.
	ReferenceOrderValue *string `json:"reference_order_value,omitempty" validate:"omitempty,money"`
}

func NewQuoteService(catalog CatalogSource, promotions PromotionSource, loyalty LoyaltySource, settings SettingsSource, engine *pricing.Engine, clock func() time.Time) *QuoteService {
	if clock == nil {
		clock = time.Now
	}
	return &QuoteService{
		catalog:    catalog,
		promotions: promotions,
		loyalty:    loyalty,
		settings:   settings,
		engine:     engine,
		clock:      clock,
	}
}

// Quote prices req against fresh catalog, promotion, loyalty and settings
// snapshots evaluated at the service clock.
func (s *QuoteService) Quote(ctx context.Context, req *QuoteRequest) (*pricing.OrderPriceBreakdown, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := checkLineLimits(req.Lines); err != nil {
		return nil, err
	}

	promotions, err := s.promotions.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.CustomizationSettings(ctx)
	if err != nil {
		return nil, err
	}

	loyalty, err := s.loyalty.Snapshot(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	loyalty.ReferenceOrderValue = parseAmount(req.ReferenceOrderValue)

	lines := req.toLineItems()
	catalog, err := s.catalog.Snapshot(ctx, lines, rewardProductIDs(promotions))
	if err != nil {
		return nil, err
	}

	return s.engine.PriceOrder(pricing.OrderRequest{
		Lines:      lines,
		Promotions: promotions,
		Catalog:    catalog,
		Settings:   settings,
		Loyalty:    loyalty,
		Now:        s.clock(),
	})
}

// checkLineLimits enforces the selection limits the engine leaves to callers.
func checkLineLimits(lines []LineRequest) error {
	for i, line := range lines {
		switch pricing.LineMode(line.Mode) {
		case pricing.LineModeGallery:
			if len(line.Designs) > pricing.MaxGalleryDesigns {
				return fmt.Errorf("line %d: %w", i, ErrTooManyDesigns)
			}
		case pricing.LineModeUpload:
			if n := len(line.UploadRefs); n < pricing.MinUploadRefs || n > pricing.MaxUploadRefs {
				return fmt.Errorf("line %d: %w", i, ErrUploadReferenceCount)
			}
		}
	}
	return nil
}

func (r *QuoteRequest) toLineItems() []pricing.LineItem {
	items := make([]pricing.LineItem, len(r.Lines))
	for i, line := range r.Lines {
		item := pricing.LineItem{
			ID:           line.ID,
			ProductID:    canonicalID(line.ProductID),
			VariantID:    canonicalID(line.VariantID),
			Quantity:     line.Quantity,
			Mode:         pricing.LineMode(line.Mode),
			UploadRefs:   line.UploadRefs,
			Instructions: line.Instructions,
		}
		for _, d := range line.Designs {
			item.Designs = append(item.Designs, pricing.SelectedDesign{
				DesignID: canonicalID(d.DesignID),
				Size:     pricing.SizeTier(d.Size),
				Location: d.Location,
			})
		}
		if line.Personalization != nil {
			item.Personalization = &pricing.Personalization{
				Text: line.Personalization.Text,
				Size: pricing.SizeTier(line.Personalization.Size),
			}
		}
		items[i] = item
	}
	return items
}

// canonicalID rewrites any form uuid.Parse accepts into the lower-case form
// catalog snapshots are keyed by. Unparseable ids pass through unchanged.
func canonicalID(raw string) string {
	id, err := uuid.Parse(raw)
	if err != nil {
		return raw
	}
	return id.String()
}

func rewardProductIDs(promotions []pricing.Promotion) []string {
	var ids []string
	for _, p := range promotions {
		if p.RewardProductID != "" {
			ids = append(ids, p.RewardProductID)
		}
	}
	return ids
}
