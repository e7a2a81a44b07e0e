// internal/services/settings_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stitchworks/apparel-backend/internal/models"
	"github.com/stitchworks/apparel-backend/internal/pricing"
	"github.com/stitchworks/apparel-backend/internal/utils"
)

type SettingsService struct {
	db *gorm.DB
}

// UpdateCustomizationRequest replaces the store-wide customization prices.
// Omitted fields clear the setting so the built-in default applies.
type UpdateCustomizationRequest struct {
	DesignSmall          *string `json:"design_small" validate:"omitempty,money"`
	DesignMedium         *string `json:"design_medium" validate:"omitempty,money"`
	DesignLarge          *string `json:"design_large" validate:"omitempty,money"`
	PersonalizationSmall *string `json:"personalization_small" validate:"omitempty,money"`
	PersonalizationLarge *string `json:"personalization_large" validate:"omitempty,money"`
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// CustomizationSettings returns the stored settings, or empty settings when
// none were ever saved.
func (s *SettingsService) CustomizationSettings(ctx context.Context) (pricing.CustomizationSettings, error) {
	var setting models.AdminSettings
	err := s.db.WithContext(ctx).
		Where("category = ? AND key = ?", models.SettingsCategoryPricing, models.SettingsKeyCustomization).
		First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pricing.CustomizationSettings{}, nil
	}
	if err != nil {
		return pricing.CustomizationSettings{}, fmt.Errorf("failed to fetch customization settings: %w", err)
	}

	var out pricing.CustomizationSettings
	if err := setting.Value.Decode(&out); err != nil {
		return pricing.CustomizationSettings{}, fmt.Errorf("malformed customization settings: %w", err)
	}
	return out, nil
}

func (s *SettingsService) UpdateCustomizationSettings(ctx context.Context, req *UpdateCustomizationRequest, actor string) (pricing.CustomizationSettings, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return pricing.CustomizationSettings{}, fmt.Errorf("validation failed: %w", err)
	}

	updated := req.toSettings()
	value, err := models.ToJSONB(updated)
	if err != nil {
		return pricing.CustomizationSettings{}, fmt.Errorf("failed to encode settings: %w", err)
	}

	db := s.db.WithContext(ctx)

	var setting models.AdminSettings
	err = db.Where("category = ? AND key = ?", models.SettingsCategoryPricing, models.SettingsKeyCustomization).
		First(&setting).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.AdminSettings{
			Category:  models.SettingsCategoryPricing,
			Key:       models.SettingsKeyCustomization,
			Value:     value,
			DataType:  "json",
			UpdatedBy: actor,
		}
		if err := db.Create(&setting).Error; err != nil {
			return pricing.CustomizationSettings{}, fmt.Errorf("failed to create setting: %w", err)
		}
	} else if err != nil {
		return pricing.CustomizationSettings{}, fmt.Errorf("database error: %w", err)
	} else {
		oldValue := setting.Value
		setting.Value = value
		setting.UpdatedBy = actor

		if err := db.Save(&setting).Error; err != nil {
			return pricing.CustomizationSettings{}, fmt.Errorf("failed to update setting: %w", err)
		}

		audit := &models.AuditLog{
			Actor:        actor,
			Action:       "UPDATE_SETTING",
			ResourceType: "admin_setting",
			ResourceID:   &setting.ID,
			OldValues:    oldValue,
			NewValues:    value,
		}
		if err := db.Create(audit).Error; err != nil {
			logrus.WithError(err).Warn("Failed to record settings audit log")
		}
	}

	return updated, nil
}

func (r *UpdateCustomizationRequest) toSettings() pricing.CustomizationSettings {
	return pricing.CustomizationSettings{
		DesignSmall:          parseAmount(r.DesignSmall),
		DesignMedium:         parseAmount(r.DesignMedium),
		DesignLarge:          parseAmount(r.DesignLarge),
		PersonalizationSmall: parseAmount(r.PersonalizationSmall),
		PersonalizationLarge: parseAmount(r.PersonalizationLarge),
	}
}

func parseAmount(raw *string) *decimal.Decimal {
	if raw == nil {
		return nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil
	}
	return &d
}
