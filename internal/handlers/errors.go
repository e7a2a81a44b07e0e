// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/stitchworks/apparel-backend/internal/i18n"
	"github.com/stitchworks/apparel-backend/internal/pricing"
	"github.com/stitchworks/apparel-backend/internal/services"
	"github.com/stitchworks/apparel-backend/internal/utils"
)

var pricingErrorKeys = []struct {
	err error
	key string
}{
	{pricing.ErrProductNotFound, i18n.KeyPricingProductMissing},
	{pricing.ErrVariantNotFound, i18n.KeyPricingVariantMissing},
	{pricing.ErrDesignNotFound, i18n.KeyPricingDesignMissing},
	{pricing.ErrInvalidQuantity, i18n.KeyPricingInvalidQuantity},
}

// respondError maps a service error onto the API envelope.
func respondError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var validationErrs validator.ValidationErrors
	var lineErr *pricing.LineError

	switch {
	case errors.As(err, &validationErrs):
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(validationErrs))
	case errors.As(err, &lineErr):
		message := i18n.T(lang, i18n.KeyPricingFailed)
		for _, m := range pricingErrorKeys {
			if errors.Is(lineErr.Err, m.err) {
				message = i18n.T(lang, m.key)
				break
			}
		}
		utils.PricingFailedResponse(c, message, gin.H{
			"line":  lineErr.Index,
			"ref":   lineErr.Ref,
			"error": lineErr.Err.Error(),
		})
	case errors.Is(err, services.ErrTooManyDesigns), errors.Is(err, services.ErrUploadReferenceCount):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, pricing.ErrInvalidPromotionConfig), errors.Is(err, services.ErrPromotionTarget):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyPromotionInvalid, err.Error()), nil)
	case errors.Is(err, services.ErrOrderNotFound):
		utils.NotFoundResponse(c, "order")
	case errors.Is(err, services.ErrPromotionNotFound):
		utils.NotFoundResponse(c, "promotion")
	case errors.Is(err, services.ErrCustomerNotFound):
		utils.NotFoundResponse(c, "customer")
	case errors.Is(err, services.ErrOrderNotCompletable):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyOrderNotCompletable))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

// bindJSON binds and validates the request body, writing the error response
// itself when it returns false.
func bindJSON(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)

	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}
