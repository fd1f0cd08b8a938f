// backend-go/internal/simulation/simulator.go
package simulation

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/sopcenter/backend-go/internal/dataset"
	"github.com/sopcenter/backend-go/internal/domain"
)

// Thresholds classify a store's inventory ratio (on hand / projected demand).
// The stockout band is a subset of the at-risk band, so the stockout check
// must run first.
type Thresholds struct {
	Stockout float64
	AtRisk   float64
}

// DefaultThresholds mirror the shipped configuration.
func DefaultThresholds() Thresholds {
	return Thresholds{Stockout: 0.15, AtRisk: 0.30}
}

// Simulator computes promotional impact and inventory sufficiency across
// stores. It is purely functional over the snapshot it is given.
type Simulator struct {
	thresholds Thresholds
}

func New(thresholds Thresholds) *Simulator {
	if thresholds.Stockout <= 0 && thresholds.AtRisk <= 0 {
		thresholds = DefaultThresholds()
	}
	return &Simulator{thresholds: thresholds}
}

type demandKey struct {
	StoreID string
	SKU     string
	Week    string
}

type inventoryKey struct {
	StoreID string
	SKU     string
}

// Run simulates one promotion against the snapshot. storeFilter, when
// non-nil, restricts the analysis to the given store IDs. Store output order
// follows the snapshot's store order.
func (s *Simulator) Run(snap *domain.Snapshot, promoID domain.PromoID, storeFilter []string) (*domain.SimulationResult, error) {
	var promo *domain.Promotion
	for i := range snap.Promotions {
		p := &snap.Promotions[i]
		if p.WeekDate == promoID.WeekDate && p.SKU == promoID.SKU {
			promo = p
			break
		}
	}
	if promo == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPromotionNotFound, promoID)
	}

	upliftFraction := promo.UpliftPercent / 100
	log.Debug().
		Str("promo_id", promoID.String()).
		Float64("uplift_percent", promo.UpliftPercent).
		Float64("promo_price", promo.PromoPrice).
		Msg("running simulation")

	stores := snap.Stores
	if storeFilter != nil {
		wanted := make(map[string]bool, len(storeFilter))
		for _, id := range storeFilter {
			wanted[id] = true
		}
		filtered := make([]domain.Store, 0, len(storeFilter))
		for _, st := range stores {
			if wanted[st.ID] {
				filtered = append(filtered, st)
			}
		}
		stores = filtered
	}

	demandIndex := make(map[demandKey]float64, len(snap.Demand))
	for _, d := range snap.Demand {
		demandIndex[demandKey{d.StoreID, d.SKU, d.WeekEnding}] = d.Units
	}
	inventoryIndex := make(map[inventoryKey]float64, len(snap.Inventory))
	for _, inv := range snap.Inventory {
		inventoryIndex[inventoryKey{inv.StoreID, inv.SKU}] = inv.OnHand
	}

	impacts := make([]domain.StoreImpact, 0, len(stores))
	var totalIncrementalSales float64
	var stockoutCount, atRiskCount int

	for _, st := range stores {
		// Missing demand or inventory rows are not errors; they default to zero.
		baseline := demandIndex[demandKey{st.ID, promoID.SKU, promoID.WeekDate}]
		projected := baseline * (1 + upliftFraction)
		onHand := inventoryIndex[inventoryKey{st.ID, promoID.SKU}]

		// Ratio is undefined at zero projected demand; treat as sufficient.
		ratio := 1.0
		if projected > 0 {
			ratio = onHand / projected
		}

		var status domain.InventoryStatus
		switch {
		case ratio < s.thresholds.Stockout:
			status = domain.StatusStockout
			stockoutCount++
		case ratio < s.thresholds.AtRisk:
			status = domain.StatusAtRisk
			atRiskCount++
		default:
			status = domain.StatusSufficient
		}

		stockoutProbability := 1 - ratio
		if stockoutProbability < 0 {
			stockoutProbability = 0
		}

		incrementalSales := (projected - baseline) * promo.PromoPrice
		totalIncrementalSales += incrementalSales

		impacts = append(impacts, domain.StoreImpact{
			StoreID:             st.ID,
			StoreName:           st.Name,
			Lat:                 st.Lat,
			Lng:                 st.Lng,
			SKU:                 promoID.SKU,
			BaselineDemand:      dataset.Round(baseline, 1),
			ProjectedDemand:     dataset.Round(projected, 1),
			CurrentInventory:    dataset.Round(onHand, 1),
			InventoryStatus:     status,
			StockoutProbability: dataset.Round(stockoutProbability, 2),
			IncrementalSales:    dataset.Round(incrementalSales, 2),
		})
	}

	return &domain.SimulationResult{
		PromoID:   promoID.String(),
		PromoName: promo.CampaignTheme,
		WeekDate:  promoID.WeekDate,
		SKU:       promoID.SKU,
		KPIs: domain.KPISummary{
			IncrementalSales:   dataset.Round(totalIncrementalSales, 2),
			PromoLiftPercent:   dataset.Round(upliftFraction*100, 1),
			AffectedStores:     len(impacts),
			ProjectedStockouts: stockoutCount,
			StoresAtRisk:       atRiskCount,
		},
		Stores: impacts,
	}, nil
}
