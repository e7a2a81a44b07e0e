// internal/pricing/eligibility_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEligible(t *testing.T) {
	loyal := promo("loyal", PromotionPercentage, ScopeAll, "", "10")
	loyal.MinOrdersRequired = 5

	bigSpender := promo("big", PromotionPercentage, ScopeAll, "", "10")
	bigSpender.MinOrderValue = money("100")

	both := promo("both", PromotionPercentage, ScopeAll, "", "10")
	both.MinOrdersRequired = 2
	both.MinOrderValue = money("50")

	tests := []struct {
		name    string
		promo   Promotion
		loyalty LoyaltySnapshot
		value   string
		want    bool
	}{
		{name: "no gate", promo: promo("open", PromotionPercentage, ScopeAll, "", "10"), value: "0", want: true},
		{name: "four of five orders", promo: loyal, loyalty: LoyaltySnapshot{CompletedOrders: 4}, value: "500", want: false},
		{name: "five of five orders", promo: loyal, loyalty: LoyaltySnapshot{CompletedOrders: 5}, value: "0", want: true},
		{name: "guest", promo: loyal, value: "500", want: false},
		{name: "below value", promo: bigSpender, value: "99.99", want: false},
		{name: "at value", promo: bigSpender, value: "100", want: true},
		{name: "reference value overrides", promo: bigSpender, loyalty: LoyaltySnapshot{ReferenceOrderValue: moneyPtr("150")}, value: "10", want: true},
		{name: "reference value can fail", promo: bigSpender, loyalty: LoyaltySnapshot{ReferenceOrderValue: moneyPtr("20")}, value: "500", want: false},
		{name: "both satisfied", promo: both, loyalty: LoyaltySnapshot{CompletedOrders: 2}, value: "50", want: true},
		{name: "both orders missing", promo: both, loyalty: LoyaltySnapshot{CompletedOrders: 1}, value: "50", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEligible(tt.promo, tt.loyalty, money(tt.value)))
		})
	}
}
