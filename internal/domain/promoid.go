// backend-go/internal/domain/promoid.go
package domain

import (
	"fmt"
	"strings"
)

// PromoID identifies a promotion by week date and SKU.
type PromoID struct {
	WeekDate string
	SKU      string
}

// ParsePromoID parses the "YYYY-MM-DD_SKU" composite form, splitting on the
// first underscore. SKUs may themselves contain underscores.
func ParsePromoID(raw string) (PromoID, error) {
	week, sku, found := strings.Cut(raw, "_")
	if !found || week == "" || sku == "" {
		return PromoID{}, fmt.Errorf("%w %q: expected <week-date>_<sku>", ErrInvalidPromoID, raw)
	}
	return PromoID{WeekDate: week, SKU: sku}, nil
}

func (id PromoID) String() string {
	return id.WeekDate + "_" + id.SKU
}
