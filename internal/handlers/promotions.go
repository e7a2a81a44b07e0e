// internal/handlers/promotions.go
package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stitchworks/apparel-backend/internal/i18n"
	"github.com/stitchworks/apparel-backend/internal/models"
	"github.com/stitchworks/apparel-backend/internal/pricing"
	"github.com/stitchworks/apparel-backend/internal/services"
	"github.com/stitchworks/apparel-backend/internal/utils"
)

type PromotionStore interface {
	Create(ctx context.Context, req *services.PromotionRequest, actor string) (*models.Promotion, error)
	Update(ctx context.Context, id uuid.UUID, req *services.PromotionRequest, actor string) (*models.Promotion, error)
	Delete(ctx context.Context, id uuid.UUID, actor string) error
	Get(ctx context.Context, id uuid.UUID) (*models.Promotion, error)
	List(ctx context.Context, filter services.PromotionFilter) ([]models.Promotion, int64, error)
	Active(ctx context.Context, now time.Time) ([]pricing.Promotion, error)
}

type PromotionHandler struct {
	promotions PromotionStore
	clock      func() time.Time
}

func NewPromotionHandler(promotions PromotionStore, clock func() time.Time) *PromotionHandler {
	if clock == nil {
		clock = time.Now
	}
	return &PromotionHandler{
		promotions: promotions,
		clock:      clock,
	}
}

func promotionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid promotion ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

// GET /promotions/active
func (h *PromotionHandler) Active(c *gin.Context) {
	promotions, err := h.promotions.Active(c.Request.Context(), h.clock())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"promotions": promotions})
}

// GET /admin/promotions
func (h *PromotionHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := services.PromotionFilter{
		PaginationParams: params,
		Type:             c.Query("type"),
		Scope:            c.Query("scope"),
	}

	if active := c.Query("active"); active != "" {
		if b, err := strconv.ParseBool(active); err == nil {
			filter.Active = &b
		}
	}

	promotions, total, err := h.promotions.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(promotions, total, params))
}

// GET /admin/promotions/:id
func (h *PromotionHandler) Get(c *gin.Context) {
	id, ok := promotionID(c)
	if !ok {
		return
	}

	promotion, err := h.promotions.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, promotion)
}

// POST /admin/promotions
func (h *PromotionHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	actor, _ := utils.GetActorFromContext(c)

	var req services.PromotionRequest
	if !bindJSON(c, &req) {
		return
	}

	promotion, err := h.promotions.Create(c.Request.Context(), &req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyPromotionCreated),
		"promotion": promotion,
	})
}

// PUT /admin/promotions/:id
func (h *PromotionHandler) Update(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	actor, _ := utils.GetActorFromContext(c)
	id, ok := promotionID(c)
	if !ok {
		return
	}

	var req services.PromotionRequest
	if !bindJSON(c, &req) {
		return
	}

	promotion, err := h.promotions.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyPromotionUpdated),
		"promotion": promotion,
	})
}

// DELETE /admin/promotions/:id
func (h *PromotionHandler) Delete(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	actor, _ := utils.GetActorFromContext(c)
	id, ok := promotionID(c)
	if !ok {
		return
	}

	if err := h.promotions.Delete(c.Request.Context(), id, actor); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPromotionDeleted),
	})
}
