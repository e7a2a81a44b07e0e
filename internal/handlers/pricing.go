// internal/handlers/pricing.go
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/stitchworks/apparel-backend/internal/i18n"
	"github.com/stitchworks/apparel-backend/internal/pricing"
	"github.com/stitchworks/apparel-backend/internal/services"
	"github.com/stitchworks/apparel-backend/internal/utils"
)

type Quoter interface {
	Quote(ctx context.Context, req *services.QuoteRequest) (*pricing.OrderPriceBreakdown, error)
}

type PricingHandler struct {
	quoter Quoter
}

func NewPricingHandler(quoter Quoter) *PricingHandler {
	return &PricingHandler{quoter: quoter}
}

// quotedLine adds the storefront labels to a priced line.
type quotedLine struct {
	pricing.LinePriceBreakdown
	PriceLabel        string `json:"price_label,omitempty"`
	AvailabilityLabel string `json:"availability_label,omitempty"`
}

type quoteResponse struct {
	*pricing.OrderPriceBreakdown
	Lines []quotedLine `json:"lines"`
}

func localizeBreakdown(lang string, breakdown *pricing.OrderPriceBreakdown) quoteResponse {
	lines := make([]quotedLine, len(breakdown.Lines))
	for i, line := range breakdown.Lines {
		lines[i] = quotedLine{LinePriceBreakdown: line}
		if line.QuotePending {
			lines[i].PriceLabel = i18n.T(lang, i18n.KeyPricingQuotePending)
		}
		if line.Availability == pricing.AvailabilityOnRequest {
			lines[i].AvailabilityLabel = i18n.T(lang, i18n.KeyPricingOnRequest)
		}
	}
	return quoteResponse{OrderPriceBreakdown: breakdown, Lines: lines}
}

// POST /pricing/quote
func (h *PricingHandler) Quote(c *gin.Context) {
	var req services.QuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	breakdown, err := h.quoter.Quote(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, localizeBreakdown(utils.GetLangFromContext(c), breakdown))
}
