package recommend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sopcenter/backend-go/internal/domain"
)

func riskyResult() *domain.SimulationResult {
	return &domain.SimulationResult{
		PromoID:   "2025-11-02_EL-ANR-001",
		PromoName: "Holiday Glow-Up",
		SKU:       "EL-ANR-001",
		KPIs: domain.KPISummary{
			AffectedStores:     3,
			ProjectedStockouts: 1,
			StoresAtRisk:       1,
		},
		Stores: []domain.StoreImpact{
			{
				StoreID: "ST-001", StoreName: "Store One",
				ProjectedDemand: 120, CurrentInventory: 50,
				InventoryStatus: domain.StatusAtRisk, StockoutProbability: 0.58,
			},
			{
				StoreID: "ST-002", StoreName: "Store Two",
				ProjectedDemand: 120, CurrentInventory: 10,
				InventoryStatus: domain.StatusStockout, StockoutProbability: 0.92,
			},
			{
				StoreID: "ST-003", StoreName: "Store Three",
				ProjectedDemand: 120, CurrentInventory: 200,
				InventoryStatus: domain.StatusSufficient, StockoutProbability: 0,
			},
		},
	}
}

func testCatalog() []domain.Product {
	return []domain.Product{
		{SKU: "EL-ANR-001", Name: "Advanced Night Repair", Category: "skincare"},
		{SKU: "EL-DW-002", Name: "Double Wear", Category: "makeup"},
		{SKU: "CL-MS-003", Name: "Moisture Surge", Category: "skincare"},
	}
}

func TestRuleBasedSupplyRecommendationTargetsWorstStore(t *testing.T) {
	g := NewRuleBased(testCatalog())

	recs, err := g.Generate(context.Background(), riskyResult())
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	supply := recs[0]
	assert.Equal(t, "supply", supply.Type)
	assert.Equal(t, "high", supply.Priority)
	assert.Equal(t, "ST-002", supply.StoreID)
	// shortfall = projected 120 - on hand 10
	assert.Contains(t, supply.Description, "110 units")
	assert.Contains(t, supply.Title, "Store Two")
}

func TestRuleBasedSuggestsSameCategorySubstitute(t *testing.T) {
	g := NewRuleBased(testCatalog())

	recs, err := g.Generate(context.Background(), riskyResult())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	demand := recs[1]
	assert.Equal(t, "demand", demand.Type)
	assert.Equal(t, "CL-MS-003", demand.SubstituteSKU)
	assert.Contains(t, demand.Description, "Moisture Surge")
}

func TestRuleBasedNoSubstituteWithoutCatalog(t *testing.T) {
	g := NewRuleBased(nil)

	recs, err := g.Generate(context.Background(), riskyResult())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "supply", recs[0].Type)
}

func TestRuleBasedSkipsHealthySimulations(t *testing.T) {
	g := NewRuleBased(testCatalog())

	healthy := riskyResult()
	healthy.KPIs.ProjectedStockouts = 0
	healthy.KPIs.StoresAtRisk = 0

	recs, err := g.Generate(context.Background(), healthy)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRuleBasedSingleRiskyStoreSkipsSubstitute(t *testing.T) {
	g := NewRuleBased(testCatalog())

	result := riskyResult()
	result.Stores = result.Stores[1:2] // only the stockout store
	result.KPIs.StoresAtRisk = 0

	recs, err := g.Generate(context.Background(), result)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "supply", recs[0].Type)
}
