// internal/pricing/matcher.go
package pricing

import "github.com/shopspring/decimal"

// match picks at most one promotion from the first scope tier that has an
// eligible candidate. Inside a tier the largest discount for this line wins;
// equal discounts keep the lowest promotion id.
func match(tiers [][]compiledPromotion, loyalty LoyaltySnapshot, unit decimal.Decimal, qty int, value decimal.Decimal, exclude map[string]bool) (Effect, bool) {
	for _, tier := range tiers {
		var (
			best  Effect
			found bool
		)
		for _, candidate := range tier {
			if exclude[candidate.ID] {
				continue
			}
			if !IsEligible(candidate.Promotion, loyalty, value) {
				continue
			}
			dry := calculate(candidate, unit, qty)
			if !found || dry.Discount.GreaterThan(best.Discount) {
				best = dry
				found = true
			}
		}
		if found {
			return best, true
		}
	}
	return Effect{}, false
}

// MatchLine returns the promotion effect applied to a single line, if any.
func (idx *PromotionIndex) MatchLine(product Product, loyalty LoyaltySnapshot, unit decimal.Decimal, qty int) (Effect, bool) {
	gross := unit.Mul(decimal.NewFromInt(int64(qty)))
	return match(idx.tiers(product), loyalty, unit, qty, gross, nil)
}
