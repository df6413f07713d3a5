package services

import "errors"

// Service-level errors. Handlers map these to HTTP status codes with errors.Is.
var (
	// ErrValidation marks bad caller input; nothing was written.
	ErrValidation = errors.New("validation error")

	ErrShopNotFound     = errors.New("shop not found")
	ErrFrameNotFound    = errors.New("frame not found")
	ErrLensTypeNotFound = errors.New("lens type not found")

	// ErrProductIDExists is returned when a frame's product_id is already in the catalog.
	ErrProductIDExists = errors.New("product_id already exists")

	// ErrInsufficientStock is returned under the reject_oversell policy.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrDuplicateRequest is returned when an idempotency key is replayed.
	ErrDuplicateRequest = errors.New("duplicate request")

	ErrInvalidCredentials = errors.New("invalid credentials")
)
