package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sopcenter/backend-go/internal/domain"
)

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Promotions: []domain.Promotion{
			{
				WeekDate:      "2025-01-01",
				SKU:           "SKU1",
				CampaignTheme: "New Year Kickoff",
				PromoPrice:    10,
				UpliftPercent: 20,
			},
		},
		Stores: []domain.Store{
			{ID: "ST-001", Name: "Store One", Lat: 40.7, Lng: -73.9},
			{ID: "ST-002", Name: "Store Two", Lat: 40.8, Lng: -74.0},
			{ID: "ST-003", Name: "Store Three", Lat: 40.9, Lng: -73.8},
		},
		Demand: []domain.DemandRecord{
			{StoreID: "ST-001", SKU: "SKU1", WeekEnding: "2025-01-01", Units: 100},
			{StoreID: "ST-002", SKU: "SKU1", WeekEnding: "2025-01-01", Units: 100},
			// ST-003 has no demand record for this week
		},
		Inventory: []domain.InventoryRecord{
			{StoreID: "ST-001", SKU: "SKU1", OnHand: 10},
			{StoreID: "ST-002", SKU: "SKU1", OnHand: 50},
			// ST-003 has no inventory record
		},
	}
}

func mustParse(t *testing.T, raw string) domain.PromoID {
	t.Helper()
	id, err := domain.ParsePromoID(raw)
	require.NoError(t, err)
	return id
}

func TestRunClassifiesStockout(t *testing.T) {
	sim := New(DefaultThresholds())

	result, err := sim.Run(testSnapshot(), mustParse(t, "2025-01-01_SKU1"), []string{"ST-001"})
	require.NoError(t, err)
	require.Len(t, result.Stores, 1)

	s := result.Stores[0]
	assert.Equal(t, 100.0, s.BaselineDemand)
	assert.Equal(t, 120.0, s.ProjectedDemand)
	assert.Equal(t, 10.0, s.CurrentInventory)
	// ratio 10/120 = 0.083 < 0.15
	assert.Equal(t, domain.StatusStockout, s.InventoryStatus)
	assert.Equal(t, 0.92, s.StockoutProbability)
	assert.Equal(t, 200.0, s.IncrementalSales)

	assert.Equal(t, 1, result.KPIs.ProjectedStockouts)
	assert.Equal(t, 0, result.KPIs.StoresAtRisk)
	assert.Equal(t, 20.0, result.KPIs.PromoLiftPercent)
	assert.Equal(t, "New Year Kickoff", result.PromoName)
}

func TestRunClassifiesSufficient(t *testing.T) {
	sim := New(DefaultThresholds())

	result, err := sim.Run(testSnapshot(), mustParse(t, "2025-01-01_SKU1"), []string{"ST-002"})
	require.NoError(t, err)
	require.Len(t, result.Stores, 1)

	s := result.Stores[0]
	// ratio 50/120 = 0.417 >= 0.30
	assert.Equal(t, domain.StatusSufficient, s.InventoryStatus)
	assert.Equal(t, 0.58, s.StockoutProbability)
}

func TestRunClassifiesAtRisk(t *testing.T) {
	snap := testSnapshot()
	snap.Inventory[1].OnHand = 30

	sim := New(DefaultThresholds())
	result, err := sim.Run(snap, mustParse(t, "2025-01-01_SKU1"), []string{"ST-002"})
	require.NoError(t, err)
	require.Len(t, result.Stores, 1)

	// ratio 30/120 = 0.25, between 0.15 and 0.30
	assert.Equal(t, domain.StatusAtRisk, result.Stores[0].InventoryStatus)
	assert.Equal(t, 1, result.KPIs.StoresAtRisk)
	assert.Equal(t, 0, result.KPIs.ProjectedStockouts)
}

func TestRunMissingDemandDefaultsToSufficient(t *testing.T) {
	sim := New(DefaultThresholds())

	result, err := sim.Run(testSnapshot(), mustParse(t, "2025-01-01_SKU1"), []string{"ST-003"})
	require.NoError(t, err)
	require.Len(t, result.Stores, 1)

	s := result.Stores[0]
	assert.Equal(t, 0.0, s.BaselineDemand)
	assert.Equal(t, 0.0, s.ProjectedDemand)
	// ratio defaults to 1.0 at zero projected demand
	assert.Equal(t, domain.StatusSufficient, s.InventoryStatus)
	assert.Equal(t, 0.0, s.StockoutProbability)
	assert.Equal(t, 0.0, s.IncrementalSales)
}

func TestRunUnknownPromotion(t *testing.T) {
	sim := New(DefaultThresholds())

	result, err := sim.Run(testSnapshot(), mustParse(t, "9999-99-99_NOPE"), nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrPromotionNotFound)
}

func TestRunStoreSubsetPreservesSnapshotOrder(t *testing.T) {
	sim := New(DefaultThresholds())

	result, err := sim.Run(testSnapshot(), mustParse(t, "2025-01-01_SKU1"), []string{"ST-003", "ST-001"})
	require.NoError(t, err)
	require.Len(t, result.Stores, 2)

	assert.Equal(t, "ST-001", result.Stores[0].StoreID)
	assert.Equal(t, "ST-003", result.Stores[1].StoreID)
	assert.Equal(t, 2, result.KPIs.AffectedStores)
}

func TestRunEmptySubsetYieldsZeroAggregates(t *testing.T) {
	sim := New(DefaultThresholds())

	result, err := sim.Run(testSnapshot(), mustParse(t, "2025-01-01_SKU1"), []string{})
	require.NoError(t, err)

	assert.Empty(t, result.Stores)
	assert.Equal(t, domain.KPISummary{PromoLiftPercent: 20.0}, result.KPIs)
}

func TestRunNilFilterCoversAllStores(t *testing.T) {
	sim := New(DefaultThresholds())

	result, err := sim.Run(testSnapshot(), mustParse(t, "2025-01-01_SKU1"), nil)
	require.NoError(t, err)
	assert.Len(t, result.Stores, 3)
}

func TestRunTotalEqualsSumOfStores(t *testing.T) {
	sim := New(DefaultThresholds())

	result, err := sim.Run(testSnapshot(), mustParse(t, "2025-01-01_SKU1"), nil)
	require.NoError(t, err)

	var sum float64
	for _, s := range result.Stores {
		sum += s.IncrementalSales
	}
	assert.InDelta(t, sum, result.KPIs.IncrementalSales, 0.01)
	assert.Equal(t, 400.0, result.KPIs.IncrementalSales)
}

func TestRunClassificationMonotonicInRatio(t *testing.T) {
	snap := testSnapshot()
	snap.Inventory = []domain.InventoryRecord{
		{StoreID: "ST-001", SKU: "SKU1", OnHand: 5},
		{StoreID: "ST-002", SKU: "SKU1", OnHand: 25},
	}
	snap.Demand = append(snap.Demand, domain.DemandRecord{
		StoreID: "ST-003", SKU: "SKU1", WeekEnding: "2025-01-01", Units: 100,
	})
	snap.Inventory = append(snap.Inventory, domain.InventoryRecord{
		StoreID: "ST-003", SKU: "SKU1", OnHand: 200,
	})

	sim := New(DefaultThresholds())
	result, err := sim.Run(snap, mustParse(t, "2025-01-01_SKU1"), nil)
	require.NoError(t, err)
	require.Len(t, result.Stores, 3)

	for i := 0; i < len(result.Stores); i++ {
		for j := i + 1; j < len(result.Stores); j++ {
			a, b := result.Stores[i], result.Stores[j]
			if a.CurrentInventory < b.CurrentInventory {
				assert.LessOrEqual(t, a.InventoryStatus.Severity(), b.InventoryStatus.Severity())
			}
		}
	}

	// ratio above 1 clamps probability at zero
	assert.Equal(t, 0.0, result.Stores[2].StockoutProbability)
}

func TestRunIsIdempotent(t *testing.T) {
	sim := New(DefaultThresholds())
	snap := testSnapshot()
	id := mustParse(t, "2025-01-01_SKU1")

	first, err := sim.Run(snap, id, nil)
	require.NoError(t, err)
	second, err := sim.Run(snap, id, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunCustomThresholds(t *testing.T) {
	// With a wider stockout band the 0.25 ratio becomes a stockout.
	sim := New(Thresholds{Stockout: 0.26, AtRisk: 0.50})
	snap := testSnapshot()
	snap.Inventory[1].OnHand = 30

	result, err := sim.Run(snap, mustParse(t, "2025-01-01_SKU1"), []string{"ST-002"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStockout, result.Stores[0].InventoryStatus)
}
