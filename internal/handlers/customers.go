// internal/handlers/customers.go
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stitchworks/apparel-backend/internal/services"
	"github.com/stitchworks/apparel-backend/internal/utils"
)

type LoyaltyReader interface {
	Summary(ctx context.Context, customerID uuid.UUID) (*services.LoyaltySummary, error)
}

type CustomerHandler struct {
	loyalty LoyaltyReader
}

func NewCustomerHandler(loyalty LoyaltyReader) *CustomerHandler {
	return &CustomerHandler{loyalty: loyalty}
}

// GET /admin/customers/:id/loyalty
func (h *CustomerHandler) Loyalty(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid customer ID", nil)
		return
	}

	summary, err := h.loyalty.Summary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, summary)
}
