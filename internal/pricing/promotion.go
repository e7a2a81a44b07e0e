// internal/pricing/promotion.go
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

type PromotionType string

const (
	PromotionPercentage    PromotionType = "percentage"
	PromotionFixed         PromotionType = "fixed"
	PromotionBOGO          PromotionType = "bogo"
	PromotionSecondUnit50  PromotionType = "second_unit_50"
	PromotionGift          PromotionType = "gift"
	PromotionLoyaltyReward PromotionType = "loyalty_reward"
)

var PromotionTypes = []PromotionType{
	PromotionPercentage,
	PromotionFixed,
	PromotionBOGO,
	PromotionSecondUnit50,
	PromotionGift,
	PromotionLoyaltyReward,
}

type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeCategory Scope = "category"
	ScopeProduct  Scope = "product"
)

// DefaultGroupSize is the unit grouping used when min_quantity is unset.
const DefaultGroupSize = 2

// Promotion is the immutable snapshot of an admin-authored promotion.
type Promotion struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Type              PromotionType   `json:"type"`
	Scope             Scope           `json:"scope"`
	TargetID          string          `json:"target_id,omitempty"`
	Value             decimal.Decimal `json:"value"`
	MinQuantity       int             `json:"min_quantity"`
	MinOrdersRequired int             `json:"min_orders_required"`
	MinOrderValue     decimal.Decimal `json:"min_order_value_condition"`
	RewardProductID   string          `json:"reward_product_id,omitempty"`
	StartDate         time.Time       `json:"start_date"`
	EndDate           *time.Time      `json:"end_date,omitempty"`
	IsActive          bool            `json:"is_active"`
}

// ActiveAt reports whether the promotion is enabled and its window contains
// now. Both bounds are inclusive.
func (p Promotion) ActiveAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if !p.StartDate.IsZero() && now.Before(p.StartDate) {
		return false
	}
	if p.EndDate != nil && now.After(*p.EndDate) {
		return false
	}
	return true
}

func (p Promotion) groupSize() int {
	if p.MinQuantity <= 0 {
		return DefaultGroupSize
	}
	return p.MinQuantity
}

// effect is what a rule produces for one line (or the order).
type effect struct {
	discount decimal.Decimal
	gift     *GiftReward
	credit   *StoreCreditGrant
}

// discountRule is implemented only by the rule types below; compile is the
// single place a PromotionType string becomes a rule.
type discountRule interface {
	apply(unit decimal.Decimal, qty int) effect
}

type percentageRule struct{ rate decimal.Decimal }

func (r percentageRule) apply(unit decimal.Decimal, qty int) effect {
	gross := unit.Mul(decimal.NewFromInt(int64(qty)))
	return effect{discount: gross.Mul(r.rate).Div(hundred)}
}

type fixedRule struct{ amount decimal.Decimal }

func (r fixedRule) apply(unit decimal.Decimal, qty int) effect {
	gross := unit.Mul(decimal.NewFromInt(int64(qty)))
	return effect{discount: decimal.Min(r.amount, gross)}
}

type bogoRule struct{ group int }

func (r bogoRule) apply(unit decimal.Decimal, qty int) effect {
	groups := int64(qty / r.group)
	return effect{discount: unit.Mul(decimal.NewFromInt(groups))}
}

type secondUnitHalfRule struct{ group int }

func (r secondUnitHalfRule) apply(unit decimal.Decimal, qty int) effect {
	groups := int64(qty / r.group)
	return effect{discount: unit.Mul(decimal.NewFromInt(groups)).Mul(half)}
}

type giftRule struct {
	promotionID     string
	rewardProductID string
}

func (r giftRule) apply(decimal.Decimal, int) effect {
	return effect{
		discount: decimal.Zero,
		gift:     &GiftReward{PromotionID: r.promotionID, RewardProductID: r.rewardProductID},
	}
}

type loyaltyRewardRule struct {
	promotionID string
	credit      decimal.Decimal
}

func (r loyaltyRewardRule) apply(decimal.Decimal, int) effect {
	return effect{
		discount: decimal.Zero,
		credit:   &StoreCreditGrant{PromotionID: r.promotionID, Amount: roundMoney(r.credit)},
	}
}

type compiledPromotion struct {
	Promotion
	rule discountRule
}

// ValidatePromotion checks a promotion the same way the engine does before
// indexing it. Admin surfaces use it to reject configs that would be skipped.
func ValidatePromotion(p Promotion) error {
	_, err := compile(p)
	return err
}

func compile(p Promotion) (compiledPromotion, error) {
	switch p.Scope {
	case ScopeAll:
	case ScopeCategory, ScopeProduct:
		if p.TargetID == "" {
			return compiledPromotion{}, invalidPromotion("%s scope requires a target id", p.Scope)
		}
	default:
		return compiledPromotion{}, invalidPromotion("unknown scope %q", p.Scope)
	}

	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return compiledPromotion{}, invalidPromotion("end date before start date")
	}
	if p.MinOrdersRequired < 0 {
		return compiledPromotion{}, invalidPromotion("min orders required must not be negative")
	}
	if p.MinOrderValue.IsNegative() {
		return compiledPromotion{}, invalidPromotion("min order value must not be negative")
	}

	var rule discountRule
	switch p.Type {
	case PromotionPercentage:
		if p.Value.IsNegative() || p.Value.GreaterThan(hundred) {
			return compiledPromotion{}, invalidPromotion("percentage value %s outside [0,100]", p.Value)
		}
		rule = percentageRule{rate: p.Value}
	case PromotionFixed:
		if p.Value.IsNegative() {
			return compiledPromotion{}, invalidPromotion("fixed value must not be negative")
		}
		rule = fixedRule{amount: p.Value}
	case PromotionBOGO:
		if p.groupSize() < 2 {
			return compiledPromotion{}, invalidPromotion("bogo needs groups of at least 2 units")
		}
		rule = bogoRule{group: p.groupSize()}
	case PromotionSecondUnit50:
		if p.groupSize() < 2 {
			return compiledPromotion{}, invalidPromotion("second_unit_50 needs groups of at least 2 units")
		}
		rule = secondUnitHalfRule{group: p.groupSize()}
	case PromotionGift:
		if p.RewardProductID == "" {
			return compiledPromotion{}, invalidPromotion("gift requires reward_product_id")
		}
		rule = giftRule{promotionID: p.ID, rewardProductID: p.RewardProductID}
	case PromotionLoyaltyReward:
		if p.Value.IsNegative() {
			return compiledPromotion{}, invalidPromotion("loyalty reward value must not be negative")
		}
		rule = loyaltyRewardRule{promotionID: p.ID, credit: p.Value}
	default:
		return compiledPromotion{}, invalidPromotion("unknown type %q", p.Type)
	}

	return compiledPromotion{Promotion: p, rule: rule}, nil
}
