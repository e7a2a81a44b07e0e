// internal/pricing/index.go
package pricing

import (
	"sort"
	"time"
)

// PromotionIndex groups the promotions active at one instant by target scope.
// It is built once per pricing call.
type PromotionIndex struct {
	byProduct  map[string][]compiledPromotion
	byCategory map[string][]compiledPromotion
	storewide  []compiledPromotion
	warnings   []PromotionWarning
}

// BuildIndex keeps promotions that are enabled and whose window contains now.
// Malformed ones among them are left out and reported by Warnings.
func BuildIndex(promotions []Promotion, now time.Time) *PromotionIndex {
	idx := &PromotionIndex{
		byProduct:  make(map[string][]compiledPromotion),
		byCategory: make(map[string][]compiledPromotion),
	}

	for _, p := range promotions {
		if !p.ActiveAt(now) {
			continue
		}

		compiled, err := compile(p)
		if err != nil {
			idx.warnings = append(idx.warnings, PromotionWarning{PromotionID: p.ID, Reason: err.Error()})
			continue
		}

		switch p.Scope {
		case ScopeProduct:
			idx.byProduct[p.TargetID] = append(idx.byProduct[p.TargetID], compiled)
		case ScopeCategory:
			idx.byCategory[p.TargetID] = append(idx.byCategory[p.TargetID], compiled)
		case ScopeAll:
			idx.storewide = append(idx.storewide, compiled)
		}
	}

	for _, list := range idx.byProduct {
		sortByID(list)
	}
	for _, list := range idx.byCategory {
		sortByID(list)
	}
	sortByID(idx.storewide)
	sort.SliceStable(idx.warnings, func(i, j int) bool {
		return idx.warnings[i].PromotionID < idx.warnings[j].PromotionID
	})

	return idx
}

func (idx *PromotionIndex) ForProduct(productID string) []Promotion {
	return plain(idx.byProduct[productID])
}

func (idx *PromotionIndex) ForCategory(categoryID string) []Promotion {
	if categoryID == "" {
		return nil
	}
	return plain(idx.byCategory[categoryID])
}

func (idx *PromotionIndex) Storewide() []Promotion {
	return plain(idx.storewide)
}

func (idx *PromotionIndex) Warnings() []PromotionWarning {
	return append([]PromotionWarning(nil), idx.warnings...)
}

// tiers returns candidate lists in scope priority order for one product.
func (idx *PromotionIndex) tiers(product Product) [][]compiledPromotion {
	var category []compiledPromotion
	if product.CategoryID != "" {
		category = idx.byCategory[product.CategoryID]
	}
	return [][]compiledPromotion{idx.byProduct[product.ID], category, idx.storewide}
}

func sortByID(list []compiledPromotion) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}

func plain(list []compiledPromotion) []Promotion {
	if len(list) == 0 {
		return nil
	}
	out := make([]Promotion, len(list))
	for i, c := range list {
		out[i] = c.Promotion
	}
	return out
}
