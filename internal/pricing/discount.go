// internal/pricing/discount.go
package pricing

import "github.com/shopspring/decimal"

// Effect is the outcome of applying one promotion to a priced line.
type Effect struct {
	PromotionID string
	Discount    decimal.Decimal
	Gift        *GiftReward
	StoreCredit *StoreCreditGrant
}

// CalculateDiscount runs a promotion's algorithm against unit price and
// quantity. The discount is clamped to [0, unit*qty] and rounded once.
func CalculateDiscount(p Promotion, unit decimal.Decimal, qty int) (Effect, error) {
	compiled, err := compile(p)
	if err != nil {
		return Effect{}, err
	}
	return calculate(compiled, unit, qty), nil
}

func calculate(p compiledPromotion, unit decimal.Decimal, qty int) Effect {
	out := p.rule.apply(unit, qty)
	gross := unit.Mul(decimal.NewFromInt(int64(qty)))
	return Effect{
		PromotionID: p.ID,
		Discount:    roundMoney(clamp(out.discount, gross)),
		Gift:        out.gift,
		StoreCredit: out.credit,
	}
}
