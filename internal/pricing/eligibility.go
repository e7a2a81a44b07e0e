// internal/pricing/eligibility.go
package pricing

import "github.com/shopspring/decimal"

// IsEligible applies the loyalty gate of a promotion. value is the amount
// compared against min_order_value_condition; the caller picks it (line total
// or order subtotal). A reference order value on the snapshot takes precedence.
func IsEligible(p Promotion, loyalty LoyaltySnapshot, value decimal.Decimal) bool {
	if p.MinOrdersRequired <= 0 && !p.MinOrderValue.IsPositive() {
		return true
	}

	if loyalty.CompletedOrders < p.MinOrdersRequired {
		return false
	}

	if p.MinOrderValue.IsPositive() {
		if loyalty.ReferenceOrderValue != nil {
			value = *loyalty.ReferenceOrderValue
		}
		if value.LessThan(p.MinOrderValue) {
			return false
		}
	}

	return true
}
