// internal/pricing/engine.go
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Engine turns line items, a promotion snapshot and a loyalty snapshot into
// an order price breakdown. It keeps no state between calls.
type Engine struct {
	logger   logrus.FieldLogger
	currency string
}

func NewEngine(logger logrus.FieldLogger, currency string) *Engine {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Engine{
		logger:   logger,
		currency: currency,
	}
}

type pricedLine struct {
	breakdown LinePriceBreakdown
	product   Product
	unit      decimal.Decimal
	gross     decimal.Decimal
}

// PriceOrder evaluates req at req.Now. Unresolvable references abort the
// whole call; malformed promotions are skipped and reported as warnings.
func (e *Engine) PriceOrder(req OrderRequest) (*OrderPriceBreakdown, error) {
	idx := BuildIndex(req.Promotions, req.Now)
	for _, w := range idx.warnings {
		e.logger.WithFields(logrus.Fields{
			"promotion_id": w.PromotionID,
			"reason":       w.Reason,
		}).Warn("Skipping invalid promotion")
	}

	lines := make([]pricedLine, 0, len(req.Lines))
	preSubtotal := decimal.Zero
	pending := 0

	for i, line := range req.Lines {
		priced, err := priceLine(req, i, line)
		if err != nil {
			return nil, err
		}
		if priced.breakdown.QuotePending {
			pending++
		} else {
			preSubtotal = preSubtotal.Add(priced.gross)
		}
		lines = append(lines, priced)
	}

	result := &OrderPriceBreakdown{
		Currency:            e.currency,
		Lines:               make([]LinePriceBreakdown, 0, len(lines)),
		PreDiscountSubtotal: roundMoney(preSubtotal),
		OrderDiscount:       decimal.Zero,
		PendingQuotation:    pending,
		StoreCreditGrants:   []StoreCreditGrant{},
		Warnings:            idx.Warnings(),
		EvaluatedAt:         req.Now,
	}
	if result.Warnings == nil {
		result.Warnings = []PromotionWarning{}
	}

	rewards := newRewardTracker(req.Loyalty.CustomerID)
	consumed := make(map[string]bool)
	subtotal := decimal.Zero
	unmatched := decimal.Zero

	for _, pl := range lines {
		b := pl.breakdown
		if b.QuotePending {
			result.Lines = append(result.Lines, b)
			continue
		}

		if eff, ok := idx.MatchLine(pl.product, req.Loyalty, pl.unit, b.Quantity); ok {
			id := eff.PromotionID
			b.PromotionID = &id
			b.Discount = eff.Discount
			b.Gift = eff.Gift
			b.StoreCredit = rewards.credit(eff.StoreCredit)
			rewards.gift(eff.Gift)
			consumed[id] = true
		}

		b.LineTotal = roundMoney(pl.gross.Sub(b.Discount))
		b.FinalUnitPrice = roundMoney(b.LineTotal.Div(decimal.NewFromInt(int64(b.Quantity))))
		subtotal = subtotal.Add(b.LineTotal)
		if b.PromotionID == nil {
			unmatched = unmatched.Add(b.LineTotal)
		}
		result.Lines = append(result.Lines, b)
	}

	result.Subtotal = roundMoney(subtotal)

	// One storewide promotion may still apply to the lines nothing matched,
	// judged against the whole pre-discount subtotal.
	if unmatched.IsPositive() {
		orderValue := result.PreDiscountSubtotal
		tier := [][]compiledPromotion{idx.storewide}
		if eff, ok := match(tier, req.Loyalty, unmatched, 1, orderValue, consumed); ok {
			id := eff.PromotionID
			result.OrderPromotionID = &id
			result.OrderDiscount = eff.Discount
			rewards.credit(eff.StoreCredit)
			rewards.gift(eff.Gift)
		}
	}

	result.GrandTotal = roundMoney(clamp(result.Subtotal.Sub(result.OrderDiscount), result.Subtotal))
	result.Lines = append(result.Lines, rewards.lines(req.Catalog)...)
	result.StoreCreditGrants = append(result.StoreCreditGrants, rewards.grants...)

	e.logger.WithFields(logrus.Fields{
		"lines":             len(req.Lines),
		"pending_quotation": pending,
		"grand_total":       result.GrandTotal.StringFixed(2),
	}).Debug("Order priced")

	return result, nil
}

func priceLine(req OrderRequest, index int, line LineItem) (pricedLine, error) {
	if line.Quantity < 1 {
		return pricedLine{}, lineError(index, line.ID, ErrInvalidQuantity)
	}

	base, product, variant, err := ResolveBasePrice(req.Catalog, line)
	if err != nil {
		ref := line.ProductID
		if errors.Is(err, ErrVariantNotFound) {
			ref = line.VariantID
		}
		return pricedLine{}, lineError(index, ref, err)
	}

	custom, err := PriceCustomization(req.Catalog, req.Settings, line)
	if err != nil {
		return pricedLine{}, lineError(index, line.ID, err)
	}

	availability := AvailabilityInStock
	if variant != nil && variant.Stock < line.Quantity {
		availability = AvailabilityOnRequest
	}

	b := LinePriceBreakdown{
		LineID:                  line.ID,
		ProductID:               product.ID,
		ProductName:             product.Name,
		VariantID:               line.VariantID,
		Quantity:                line.Quantity,
		BasePrice:               roundMoney(base),
		DesignsAddition:         custom.DesignsAddition,
		PersonalizationAddition: custom.PersonalizationAddition,
		Discount:                decimal.Zero,
		FinalUnitPrice:          decimal.Zero,
		LineTotal:               decimal.Zero,
		QuotePending:            custom.QuotePending,
		Availability:            availability,
	}

	unit := base.Add(custom.DesignsAddition).Add(custom.PersonalizationAddition)
	b.UnitPrice = roundMoney(unit)

	if custom.QuotePending {
		return pricedLine{breakdown: b, product: product, unit: unit, gross: decimal.Zero}, nil
	}

	gross := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
	return pricedLine{breakdown: b, product: product, unit: unit, gross: gross}, nil
}

// rewardTracker keeps gift lines unique per reward product and store-credit
// grants unique per promotion within one order.
type rewardTracker struct {
	customerID string
	gifts      []GiftReward
	seenGift   map[string]bool
	grants     []StoreCreditGrant
	seenCredit map[string]bool
}

func newRewardTracker(customerID string) *rewardTracker {
	return &rewardTracker{
		customerID: customerID,
		seenGift:   make(map[string]bool),
		seenCredit: make(map[string]bool),
	}
}

func (t *rewardTracker) gift(g *GiftReward) {
	if g == nil || t.seenGift[g.RewardProductID] {
		return
	}
	t.seenGift[g.RewardProductID] = true
	t.gifts = append(t.gifts, *g)
}

func (t *rewardTracker) credit(c *StoreCreditGrant) *StoreCreditGrant {
	if c == nil {
		return nil
	}
	grant := *c
	grant.CustomerID = t.customerID
	if !t.seenCredit[grant.PromotionID] {
		t.seenCredit[grant.PromotionID] = true
		t.grants = append(t.grants, grant)
	}
	return &grant
}

func (t *rewardTracker) lines(catalog Catalog) []LinePriceBreakdown {
	out := make([]LinePriceBreakdown, 0, len(t.gifts))
	for _, g := range t.gifts {
		promotionID := g.PromotionID
		gift := g
		line := LinePriceBreakdown{
			ProductID:               g.RewardProductID,
			Quantity:                1,
			BasePrice:               decimal.Zero,
			DesignsAddition:         decimal.Zero,
			PersonalizationAddition: decimal.Zero,
			UnitPrice:               decimal.Zero,
			PromotionID:             &promotionID,
			Discount:                decimal.Zero,
			Gift:                    &gift,
			FinalUnitPrice:          decimal.Zero,
			LineTotal:               decimal.Zero,
			IsReward:                true,
			Availability:            AvailabilityInStock,
		}
		if p, ok := catalog.Products[g.RewardProductID]; ok {
			line.ProductName = p.Name
		}
		out = append(out, line)
	}
	return out
}
