// internal/pricing/discount_test.go
package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDiscount(t *testing.T) {
	tests := []struct {
		name     string
		promo    Promotion
		unit     string
		qty      int
		discount string
	}{
		{name: "percentage", promo: promo("p", PromotionPercentage, ScopeAll, "", "20"), unit: "20.00", qty: 1, discount: "4.00"},
		{name: "percentage rounds half up", promo: promo("p", PromotionPercentage, ScopeAll, "", "12.5"), unit: "0.20", qty: 1, discount: "0.03"},
		{name: "percentage full", promo: promo("p", PromotionPercentage, ScopeAll, "", "100"), unit: "15.50", qty: 2, discount: "31.00"},
		{name: "fixed", promo: promo("p", PromotionFixed, ScopeAll, "", "5"), unit: "20.00", qty: 2, discount: "5.00"},
		{name: "fixed clamped to line total", promo: promo("p", PromotionFixed, ScopeAll, "", "50"), unit: "20.00", qty: 2, discount: "40.00"},
		{name: "bogo three units", promo: promo("p", PromotionBOGO, ScopeAll, "", "0"), unit: "10.00", qty: 3, discount: "10.00"},
		{name: "bogo single unit", promo: promo("p", PromotionBOGO, ScopeAll, "", "0"), unit: "10.00", qty: 1, discount: "0"},
		{name: "second unit half four units", promo: promo("p", PromotionSecondUnit50, ScopeAll, "", "0"), unit: "10.00", qty: 4, discount: "10.00"},
		{name: "second unit half odd units", promo: promo("p", PromotionSecondUnit50, ScopeAll, "", "0"), unit: "9.99", qty: 3, discount: "5.00"},
		{name: "gift has no discount", promo: func() Promotion {
			p := promo("p", PromotionGift, ScopeAll, "", "0")
			p.RewardProductID = "socks"
			return p
		}(), unit: "20.00", qty: 2, discount: "0"},
		{name: "loyalty reward has no discount", promo: promo("p", PromotionLoyaltyReward, ScopeAll, "", "7.5"), unit: "20.00", qty: 1, discount: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eff, err := CalculateDiscount(tt.promo, money(tt.unit), tt.qty)
			require.NoError(t, err)
			assert.Equal(t, tt.promo.ID, eff.PromotionID)
			assertMoney(t, tt.discount, eff.Discount)
		})
	}
}

func TestCalculateDiscount_GroupSize(t *testing.T) {
	p := promo("three", PromotionBOGO, ScopeAll, "", "0")
	p.MinQuantity = 3

	eff, err := CalculateDiscount(p, money("10.00"), 7)
	require.NoError(t, err)
	assertMoney(t, "20.00", eff.Discount)
}

func TestCalculateDiscount_Rewards(t *testing.T) {
	gift := promo("gift", PromotionGift, ScopeAll, "", "0")
	gift.RewardProductID = "socks"

	eff, err := CalculateDiscount(gift, money("20.00"), 1)
	require.NoError(t, err)
	require.NotNil(t, eff.Gift)
	assert.Equal(t, "socks", eff.Gift.RewardProductID)
	assert.Equal(t, "gift", eff.Gift.PromotionID)
	assert.Nil(t, eff.StoreCredit)

	credit := promo("credit", PromotionLoyaltyReward, ScopeAll, "", "7.505")
	eff, err = CalculateDiscount(credit, money("20.00"), 1)
	require.NoError(t, err)
	require.NotNil(t, eff.StoreCredit)
	assertMoney(t, "7.51", eff.StoreCredit.Amount)
	assert.Nil(t, eff.Gift)
}

func TestCalculateDiscount_BoundedByLineTotal(t *testing.T) {
	units := []string{"0.01", "0.99", "10.00", "123.45"}
	quantities := []int{1, 2, 3, 10}

	for _, typ := range []PromotionType{PromotionPercentage, PromotionFixed, PromotionBOGO, PromotionSecondUnit50} {
		p := promo("p", typ, ScopeAll, "", "100")
		for _, unit := range units {
			for _, qty := range quantities {
				eff, err := CalculateDiscount(p, money(unit), qty)
				require.NoError(t, err)

				gross := money(unit).Mul(decimal.NewFromInt(int64(qty)))
				assert.False(t, eff.Discount.IsNegative(), "%s %s x%d", typ, unit, qty)
				assert.True(t, eff.Discount.LessThanOrEqual(gross), "%s %s x%d", typ, unit, qty)
			}
		}
	}
}

func TestCalculateDiscount_InvalidConfig(t *testing.T) {
	_, err := CalculateDiscount(promo("bad", PromotionPercentage, ScopeAll, "", "120"), money("10"), 1)
	assert.ErrorIs(t, err, ErrInvalidPromotionConfig)
}
