// internal/pricing/promotion_test.go
package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPromotion_ActiveAt(t *testing.T) {
	end := evalTime

	p := promo("window", PromotionPercentage, ScopeAll, "", "10")
	p.EndDate = &end

	assert.True(t, p.ActiveAt(evalTime), "end date is inclusive")
	assert.False(t, p.ActiveAt(evalTime.Add(time.Microsecond)))
	assert.True(t, p.ActiveAt(p.StartDate), "start date is inclusive")
	assert.False(t, p.ActiveAt(p.StartDate.Add(-time.Microsecond)))

	p.IsActive = false
	assert.False(t, p.ActiveAt(evalTime))

	open := promo("open", PromotionPercentage, ScopeAll, "", "10")
	open.StartDate = time.Time{}
	assert.True(t, open.ActiveAt(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestValidatePromotion(t *testing.T) {
	before := evalTime.Add(-48 * time.Hour)

	tests := []struct {
		name   string
		mutate func(*Promotion)
		valid  bool
	}{
		{name: "valid percentage", mutate: func(p *Promotion) {}, valid: true},
		{name: "percentage above 100", mutate: func(p *Promotion) { p.Value = money("100.01") }},
		{name: "negative percentage", mutate: func(p *Promotion) { p.Value = money("-1") }},
		{name: "negative fixed", mutate: func(p *Promotion) { p.Type = PromotionFixed; p.Value = money("-5") }},
		{name: "gift without reward", mutate: func(p *Promotion) { p.Type = PromotionGift }},
		{name: "gift with reward", mutate: func(p *Promotion) { p.Type = PromotionGift; p.RewardProductID = "socks" }, valid: true},
		{name: "bogo grouping of one", mutate: func(p *Promotion) { p.Type = PromotionBOGO; p.MinQuantity = 1 }},
		{name: "bogo default grouping", mutate: func(p *Promotion) { p.Type = PromotionBOGO }, valid: true},
		{name: "second unit grouping of one", mutate: func(p *Promotion) { p.Type = PromotionSecondUnit50; p.MinQuantity = 1 }},
		{name: "end before start", mutate: func(p *Promotion) { p.EndDate = &before }},
		{name: "product scope without target", mutate: func(p *Promotion) { p.Scope = ScopeProduct }},
		{name: "category scope without target", mutate: func(p *Promotion) { p.Scope = ScopeCategory }},
		{name: "unknown scope", mutate: func(p *Promotion) { p.Scope = "region" }},
		{name: "unknown type", mutate: func(p *Promotion) { p.Type = "mystery" }},
		{name: "negative min orders", mutate: func(p *Promotion) { p.MinOrdersRequired = -1 }},
		{name: "negative min order value", mutate: func(p *Promotion) { p.MinOrderValue = money("-0.01") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := promo("p", PromotionPercentage, ScopeAll, "", "10")
			tt.mutate(&p)

			err := ValidatePromotion(p)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidPromotionConfig)
			}
		})
	}
}
