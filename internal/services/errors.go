// internal/services/errors.go
package services

import "errors"

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderNotCompletable  = errors.New("only placed orders can be completed")
	ErrPromotionNotFound    = errors.New("promotion not found")
	ErrPromotionTarget      = errors.New("promotion target does not exist")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrTooManyDesigns       = errors.New("too many gallery designs on one line")
	ErrUploadReferenceCount = errors.New("upload lines need between 1 and 5 reference images")
)
