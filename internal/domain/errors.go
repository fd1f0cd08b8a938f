// backend-go/internal/domain/errors.go
package domain

import "errors"

var (
	// ErrPromotionNotFound means the requested promo id has no matching plan
	// entry. Terminal; no partial results are produced.
	ErrPromotionNotFound = errors.New("promotion not found")

	// ErrDataUnavailable means one of the reference tables could not be
	// loaded. Terminal for the whole simulation.
	ErrDataUnavailable = errors.New("reference data unavailable")

	// ErrInvalidPromoID means the composite promo identifier could not be
	// parsed into week date and SKU.
	ErrInvalidPromoID = errors.New("invalid promo id")
)
