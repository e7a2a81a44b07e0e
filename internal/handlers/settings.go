// internal/handlers/settings.go
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/stitchworks/apparel-backend/internal/i18n"
	"github.com/stitchworks/apparel-backend/internal/pricing"
	"github.com/stitchworks/apparel-backend/internal/services"
	"github.com/stitchworks/apparel-backend/internal/utils"
)

type SettingsStore interface {
	CustomizationSettings(ctx context.Context) (pricing.CustomizationSettings, error)
	UpdateCustomizationSettings(ctx context.Context, req *services.UpdateCustomizationRequest, actor string) (pricing.CustomizationSettings, error)
}

type SettingsHandler struct {
	settings SettingsStore
}

func NewSettingsHandler(settings SettingsStore) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GET /admin/settings/customization
func (h *SettingsHandler) GetCustomization(c *gin.Context) {
	settings, err := h.settings.CustomizationSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, settings)
}

// PUT /admin/settings/customization
func (h *SettingsHandler) UpdateCustomization(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	actor, _ := utils.GetActorFromContext(c)

	var req services.UpdateCustomizationRequest
	if !bindJSON(c, &req) {
		return
	}

	settings, err := h.settings.UpdateCustomizationSettings(c.Request.Context(), &req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyAdminSettingsUpdated),
		"settings": settings,
	})
}
