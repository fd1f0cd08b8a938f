package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePromoID(t *testing.T) {
	id, err := ParsePromoID("2025-11-02_EL-ANR-001")
	require.NoError(t, err)
	assert.Equal(t, "2025-11-02", id.WeekDate)
	assert.Equal(t, "EL-ANR-001", id.SKU)
	assert.Equal(t, "2025-11-02_EL-ANR-001", id.String())
}

func TestParsePromoIDSplitsOnFirstUnderscore(t *testing.T) {
	id, err := ParsePromoID("2025-01-01_SKU_WITH_UNDERSCORES")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", id.WeekDate)
	assert.Equal(t, "SKU_WITH_UNDERSCORES", id.SKU)
}

func TestParsePromoIDRejectsMalformedInput(t *testing.T) {
	for _, raw := range []string{"", "no-delimiter", "_SKU1", "2025-01-01_"} {
		_, err := ParsePromoID(raw)
		assert.ErrorIs(t, err, ErrInvalidPromoID, "input %q", raw)
	}
}

func TestInventoryStatusSeverity(t *testing.T) {
	assert.Less(t, StatusStockout.Severity(), StatusAtRisk.Severity())
	assert.Less(t, StatusAtRisk.Severity(), StatusSufficient.Severity())
}
