// internal/pricing/money.go
package pricing

import "github.com/shopspring/decimal"

// Built-in fallbacks when neither a design category nor the store settings
// define a tier price.
var (
	defaultDesignSmall          = decimal.RequireFromString("2.00")
	defaultDesignMedium         = decimal.RequireFromString("5.00")
	defaultDesignLarge          = decimal.RequireFromString("10.00")
	defaultPersonalizationSmall = decimal.RequireFromString("1.00")
	defaultPersonalizationLarge = decimal.RequireFromString("3.00")

	hundred = decimal.NewFromInt(100)
	half    = decimal.RequireFromString("0.5")
)

// roundMoney rounds half-up to cents. Amounts reaching here are never
// negative, so Round's half-away-from-zero behaves as half-up.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// clamp bounds d to [0, upper].
func clamp(d, upper decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(upper) {
		return upper
	}
	return d
}

func valueOr(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v != nil {
		return *v
	}
	return fallback
}
