// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/stitchworks/apparel-backend/internal/pricing"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("size_tier", validateSizeTier)
	validate.RegisterValidation("line_mode", validateLineMode)
	validate.RegisterValidation("promotion_type", validatePromotionType)
	validate.RegisterValidation("promotion_scope", validatePromotionScope)
	validate.RegisterValidation("money", validateMoney)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateSizeTier(fl validator.FieldLevel) bool {
	switch pricing.SizeTier(fl.Field().String()) {
	case pricing.SizeSmall, pricing.SizeMedium, pricing.SizeLarge:
		return true
	}
	return false
}

func validateLineMode(fl validator.FieldLevel) bool {
	switch pricing.LineMode(fl.Field().String()) {
	case pricing.LineModeGallery, pricing.LineModeUpload:
		return true
	}
	return false
}

func validatePromotionType(fl validator.FieldLevel) bool {
	value := pricing.PromotionType(fl.Field().String())
	for _, t := range pricing.PromotionTypes {
		if t == value {
			return true
		}
	}
	return false
}

func validatePromotionScope(fl validator.FieldLevel) bool {
	switch pricing.Scope(fl.Field().String()) {
	case pricing.ScopeAll, pricing.ScopeCategory, pricing.ScopeProduct:
		return true
	}
	return false
}

// validateMoney accepts a non-negative decimal string.
func validateMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && !d.IsNegative()
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "size_tier":
		return e.Field() + " must be one of small, medium, large"
	case "line_mode":
		return e.Field() + " must be gallery or upload"
	case "promotion_type":
		return e.Field() + " must be one of percentage, fixed, bogo, second_unit_50, gift, loyalty_reward"
	case "promotion_scope":
		return e.Field() + " must be one of all, category, product"
	case "money":
		return e.Field() + " must be a non-negative amount"
	case "uuid":
		return e.Field() + " must be a valid id"
	default:
		return e.Field() + " is invalid"
	}
}
