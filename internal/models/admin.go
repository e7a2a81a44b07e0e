// internal/models/admin.go
package models

import (
	"github.com/google/uuid"
)

type AdminSettings struct {
	BaseModel
	Category    string `json:"category" gorm:"size:50;not null;index"`
	Key         string `json:"key" gorm:"size:100;not null;index"`
	Value       JSONB  `json:"value" gorm:"type:jsonb;not null"`
	DataType    string `json:"data_type" gorm:"size:20;not null"`
	Description string `json:"description" gorm:"type:text"`
	UpdatedBy   string `json:"updated_by" gorm:"size:255;not null"`
}

type AuditLog struct {
	BaseModel
	Actor        string     `json:"actor" gorm:"size:255;index"`
	Action       string     `json:"action" gorm:"size:100;not null;index"`
	ResourceType string     `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID   *uuid.UUID `json:"resource_id" gorm:"type:uuid;index"`
	OldValues    JSONB      `json:"old_values" gorm:"type:jsonb"`
	NewValues    JSONB      `json:"new_values" gorm:"type:jsonb"`
	IPAddress    string     `json:"ip_address" gorm:"size:45"`
	UserAgent    string     `json:"user_agent" gorm:"type:text"`
}

// Keys of the AdminSettings rows the pricing flow reads.
const (
	SettingsCategoryPricing  = "pricing"
	SettingsKeyCustomization = "customization"
)
