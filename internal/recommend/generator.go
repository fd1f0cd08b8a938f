// backend-go/internal/recommend/generator.go
package recommend

import (
	"context"
	"fmt"

	"github.com/sopcenter/backend-go/internal/domain"
)

// Generator proposes remediation actions for a simulation result.
type Generator interface {
	Generate(ctx context.Context, result *domain.SimulationResult) ([]domain.Recommendation, error)
}

// atRiskStores returns the stores classified stockout or at_risk, in result order.
func atRiskStores(result *domain.SimulationResult) []domain.StoreImpact {
	var out []domain.StoreImpact
	for _, s := range result.Stores {
		if s.InventoryStatus == domain.StatusStockout || s.InventoryStatus == domain.StatusAtRisk {
			out = append(out, s)
		}
	}
	return out
}

// RuleBased synthesizes deterministic recommendations: a supply-side action
// for the worst store and, when a same-category substitute exists, a
// demand-side alternative. It is also the fallback when LLM generation fails.
type RuleBased struct {
	Products []domain.Product
}

func NewRuleBased(products []domain.Product) *RuleBased {
	return &RuleBased{Products: products}
}

func (g *RuleBased) Generate(ctx context.Context, result *domain.SimulationResult) ([]domain.Recommendation, error) {
	if result.KPIs.ProjectedStockouts == 0 && result.KPIs.StoresAtRisk == 0 {
		return []domain.Recommendation{}, nil
	}

	risky := atRiskStores(result)
	if len(risky) == 0 {
		return []domain.Recommendation{}, nil
	}

	var recommendations []domain.Recommendation

	// Supply-side: expedite to the store with the highest stockout probability.
	top := risky[0]
	for _, s := range risky[1:] {
		if s.StockoutProbability > top.StockoutProbability {
			top = s
		}
	}
	shortfall := int(top.ProjectedDemand - top.CurrentInventory)

	recommendations = append(recommendations, domain.Recommendation{
		ID:          "rec_001",
		Type:        "supply",
		Priority:    "high",
		Title:       fmt.Sprintf("Expedite Shipment to %s", top.StoreName),
		Description: fmt.Sprintf("Rush %d units of %s to prevent stockout during promotion", shortfall, result.SKU),
		Impact: []domain.ImpactMetric{
			{Metric: "Cost", Value: "+$500"},
			{Metric: "Delivery Time", Value: "24 hours"},
			{Metric: "Stockout Risk", Value: fmt.Sprintf("-%d%%", int(top.StockoutProbability*100))},
		},
		Confidence: "high",
		StoreID:    top.StoreID,
	})

	// Demand-side: offer a same-category substitute when several stores are short.
	if len(risky) > 1 {
		if substitute, ok := g.findSubstitute(result.SKU); ok {
			recommendations = append(recommendations, domain.Recommendation{
				ID:          "rec_002",
				Type:        "demand",
				Priority:    "medium",
				Title:       "Suggest Product Substitute",
				Description: fmt.Sprintf("Recommend %s as alternative for stores at risk", substitute.Name),
				Impact: []domain.ImpactMetric{
					{Metric: "Customer Satisfaction", Value: "~90%"},
					{Metric: "Revenue Impact", Value: "-5%"},
				},
				Confidence:    "medium",
				SubstituteSKU: substitute.SKU,
			})
		}
	}

	return recommendations, nil
}

// findSubstitute returns the first catalog product sharing the promoted SKU's
// category.
func (g *RuleBased) findSubstitute(sku string) (domain.Product, bool) {
	var current *domain.Product
	for i := range g.Products {
		if g.Products[i].SKU == sku {
			current = &g.Products[i]
			break
		}
	}
	if current == nil {
		return domain.Product{}, false
	}

	for _, p := range g.Products {
		if p.Category == current.Category && p.SKU != current.SKU {
			return p, true
		}
	}
	return domain.Product{}, false
}

var _ Generator = (*RuleBased)(nil)
