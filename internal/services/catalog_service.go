// internal/services/catalog_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stitchworks/apparel-backend/internal/models"
	"github.com/stitchworks/apparel-backend/internal/pricing"
)

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// Snapshot loads every catalog record the lines reference, plus any extra
// products (gift rewards) so their names can be shown. Ids that are not
// valid uuids or do not exist are simply absent; the pricing engine reports
// them as missing.
func (s *CatalogService) Snapshot(ctx context.Context, lines []pricing.LineItem, extraProductIDs []string) (pricing.Catalog, error) {
	catalog := pricing.Catalog{
		Products:         make(map[string]pricing.Product),
		Variants:         make(map[string]pricing.Variant),
		Designs:          make(map[string]pricing.DesignItem),
		DesignCategories: make(map[string]pricing.DesignCategory),
	}

	productIDs := newIDSet()
	variantIDs := newIDSet()
	designIDs := newIDSet()
	for _, line := range lines {
		productIDs.add(line.ProductID)
		variantIDs.add(line.VariantID)
		for _, d := range line.Designs {
			designIDs.add(d.DesignID)
		}
	}
	for _, id := range extraProductIDs {
		productIDs.add(id)
	}

	db := s.db.WithContext(ctx)

	if !productIDs.empty() {
		var products []models.Product
		if err := db.Where("id IN ? AND status = ?", productIDs.list(), models.ProductStatusActive).Find(&products).Error; err != nil {
			return catalog, fmt.Errorf("failed to load products: %w", err)
		}
		for _, p := range products {
			catalog.Products[p.ID.String()] = p.ToPricing()
		}
	}

	if !variantIDs.empty() {
		var variants []models.Variant
		if err := db.Where("id IN ?", variantIDs.list()).Find(&variants).Error; err != nil {
			return catalog, fmt.Errorf("failed to load variants: %w", err)
		}
		for _, v := range variants {
			catalog.Variants[v.ID.String()] = v.ToPricing()
		}
	}

	if !designIDs.empty() {
		var designs []models.Design
		if err := db.Where("id IN ? AND is_active = ?", designIDs.list(), true).Find(&designs).Error; err != nil {
			return catalog, fmt.Errorf("failed to load designs: %w", err)
		}

		categoryIDs := newIDSet()
		for _, d := range designs {
			catalog.Designs[d.ID.String()] = d.ToPricing()
			if d.CategoryID != nil {
				categoryIDs.add(d.CategoryID.String())
			}
		}

		if !categoryIDs.empty() {
			var categories []models.DesignCategory
			if err := db.Where("id IN ?", categoryIDs.list()).Find(&categories).Error; err != nil {
				return catalog, fmt.Errorf("failed to load design categories: %w", err)
			}
			for _, dc := range categories {
				catalog.DesignCategories[dc.ID.String()] = dc.ToPricing()
			}
		}
	}

	return catalog, nil
}

// idSet keeps the distinct, well-formed uuids of a request in first-seen order.
type idSet struct {
	seen  map[uuid.UUID]bool
	order []uuid.UUID
}

func newIDSet() *idSet {
	return &idSet{seen: make(map[uuid.UUID]bool)}
}

func (s *idSet) add(raw string) {
	id, err := uuid.Parse(raw)
	if err != nil || s.seen[id] {
		return
	}
	s.seen[id] = true
	s.order = append(s.order, id)
}

func (s *idSet) empty() bool {
	return len(s.order) == 0
}

func (s *idSet) list() []uuid.UUID {
	return s.order
}
