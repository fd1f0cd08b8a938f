// backend-go/internal/dataset/numeric.go
package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// CleanNumeric parses a numeric CSV field that may carry currency or
// percentage decoration. "18%" -> 18.0, "$55.00" -> 55.0, "1,234.56" -> 1234.56.
// Empty and malformed values become 0.0; malformed values log a warning.
func CleanNumeric(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0.0
	}

	cleaned = strings.NewReplacer("$", "", "%", "", ",", "").Replace(cleaned)
	cleaned = strings.TrimSpace(cleaned)

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		log.Warn().Str("value", value).Msg("could not parse numeric field, defaulting to 0.0")
		return 0.0
	}
	return f
}

// Round rounds v to the given number of decimal places.
func Round(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(v)
	}

	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
