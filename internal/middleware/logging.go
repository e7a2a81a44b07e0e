// internal/middleware/logging.go
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stitchworks/apparel-backend/internal/models"
	"github.com/stitchworks/apparel-backend/internal/utils"
)

// AuditLogMiddleware records every mutating admin request. Reads are not
// audited.
func AuditLogMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		actor, _ := utils.GetActorFromContext(c)
		auditLog := buildAuditLog(c, actor, requestBody)

		go func() {
			if err := db.Create(auditLog).Error; err != nil {
				logrus.WithError(err).Error("Failed to create audit log")
			}
		}()
	}
}

func buildAuditLog(c *gin.Context, actor string, requestBody []byte) *models.AuditLog {
	var requestData map[string]interface{}
	if len(requestBody) > 0 {
		_ = json.Unmarshal(requestBody, &requestData)
	}

	auditLog := &models.AuditLog{
		Actor:        actor,
		Action:       c.Request.Method + " " + c.FullPath(),
		ResourceType: extractResourceType(c.Request.URL.Path),
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
		NewValues:    models.JSONB(requestData),
	}

	if resourceID := extractResourceID(c.Request.URL.Path); resourceID != "" {
		if parsed, err := uuid.Parse(resourceID); err == nil {
			auditLog.ResourceID = &parsed
		}
	}
	return auditLog
}

// extractResourceType maps /v1/admin/promotions/:id to "promotions".
func extractResourceType(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) > 0 && parts[0] == "v1" {
		parts = parts[1:]
	}
	if len(parts) > 0 && parts[0] == "admin" {
		parts = parts[1:]
	}
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "unknown"
}

func extractResourceID(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for _, part := range parts {
		if _, err := uuid.Parse(part); err == nil {
			return part
		}
	}
	return ""
}

// RequestLogger logs one structured line per request.
func RequestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		actor, _ := utils.GetActorFromContext(c)
		entry := logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).Milliseconds(),
			"ip":       c.ClientIP(),
			"actor":    actor,
		})

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Error("Request processed")
		case c.Writer.Status() >= http.StatusBadRequest:
			entry.Warn("Request processed")
		default:
			entry.Info("Request processed")
		}
	}
}
