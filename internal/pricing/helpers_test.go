// internal/pricing/helpers_test.go
package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var evalTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func moneyPtr(s string) *decimal.Decimal {
	d := money(s)
	return &d
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, money(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

func promo(id string, typ PromotionType, scope Scope, target string, value string) Promotion {
	return Promotion{
		ID:        id,
		Name:      id,
		Type:      typ,
		Scope:     scope,
		TargetID:  target,
		Value:     money(value),
		StartDate: evalTime.Add(-24 * time.Hour),
		IsActive:  true,
	}
}

func testCatalog() Catalog {
	return Catalog{
		Products: map[string]Product{
			"tee":    {ID: "tee", Name: "Classic Tee", Price: money("20.00"), CategoryID: "shirts"},
			"hoodie": {ID: "hoodie", Name: "Hoodie", Price: money("10.00"), CategoryID: "outerwear"},
			"cap":    {ID: "cap", Name: "Cap", Price: money("12.00")},
			"socks":  {ID: "socks", Name: "Socks", Price: money("4.00")},
		},
		Variants: map[string]Variant{
			"tee-red-m": {ID: "tee-red-m", ProductID: "tee", Color: "red", Size: "M", Stock: 10},
			"tee-xl":    {ID: "tee-xl", ProductID: "tee", Color: "black", Size: "XL", Stock: 1, PriceOverride: moneyPtr("24.00")},
		},
		Designs: map[string]DesignItem{
			"logo":   {ID: "logo", Name: "Logo", ImageRef: "designs/logo.png", CategoryID: "premium"},
			"star":   {ID: "star", Name: "Star", ImageRef: "designs/star.png", CategoryID: "partial"},
			"plain":  {ID: "plain", Name: "Plain", ImageRef: "designs/plain.png"},
			"orphan": {ID: "orphan", Name: "Orphan", ImageRef: "designs/orphan.png", CategoryID: "missing"},
		},
		DesignCategories: map[string]DesignCategory{
			"premium": {ID: "premium", Small: moneyPtr("3.00"), Medium: moneyPtr("6.50"), Large: moneyPtr("12.00")},
			"partial": {ID: "partial", Medium: moneyPtr("4.00")},
		},
	}
}
