// internal/handlers/uploads.go
package handlers

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/stitchworks/apparel-backend/internal/i18n"
	"github.com/stitchworks/apparel-backend/internal/services"
	"github.com/stitchworks/apparel-backend/internal/utils"
)

type ReferenceUploader interface {
	UploadReference(file multipart.File, header *multipart.FileHeader) (*services.UploadResult, error)
}

type UploadHandler struct {
	storage ReferenceUploader
}

func NewUploadHandler(storage ReferenceUploader) *UploadHandler {
	return &UploadHandler{storage: storage}
}

// POST /uploads
// The returned ref goes into upload_refs of an upload-mode line.
func (h *UploadHandler) UploadReference(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "file"), nil)
		return
	}
	defer file.Close()

	result, err := h.storage.UploadReference(file, header)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, result)
}
