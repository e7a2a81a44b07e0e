// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthLoginSuccess       = "auth.login_success"

	// Admin
	KeyAdminAccessDenied    = "admin.access_denied"
	KeyAdminSettingsUpdated = "admin.settings_updated"

	// Pricing
	KeyPricingFailed          = "pricing.failed"
	KeyPricingProductMissing  = "pricing.product_not_found"
	KeyPricingVariantMissing  = "pricing.variant_not_found"
	KeyPricingDesignMissing   = "pricing.design_not_found"
	KeyPricingInvalidQuantity = "pricing.invalid_quantity"
	KeyPricingQuotePending    = "pricing.quote_pending"
	KeyPricingOnRequest       = "pricing.on_request"

	// Promotions
	KeyPromotionCreated = "promotion.created"
	KeyPromotionUpdated = "promotion.updated"
	KeyPromotionDeleted = "promotion.deleted"
	KeyPromotionInvalid = "promotion.invalid"

	// Orders
	KeyOrderPlaced         = "order.placed"
	KeyOrderCompleted      = "order.completed"
	KeyOrderNotCompletable = "order.not_completable"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// Rate limiting
	KeyRateLimited = "rate_limit.exceeded"
)
