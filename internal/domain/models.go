// backend-go/internal/domain/models.go
package domain

// Promotion is one row of the promo plan. Numeric fields arrive with
// currency/percentage decoration in the CSV and are cleaned at load time.
type Promotion struct {
	WeekDate       string  `json:"week_date" db:"week_date"`
	SKU            string  `json:"sku" db:"sku"`
	ProductFocus   string  `json:"product_focus" db:"product_focus"`
	Brand          string  `json:"brand" db:"brand"`
	CampaignTheme  string  `json:"campaign_theme" db:"campaign_theme"`
	TargetAudience string  `json:"target_audience" db:"target_audience"`
	CurrentPrice   float64 `json:"current_price" db:"current_price"`
	PromoPrice     float64 `json:"promo_price" db:"promo_price"`
	UpliftPercent  float64 `json:"demand_uplift_percent" db:"uplift_percent"`
	CurrentMargin  float64 `json:"current_margin" db:"current_margin"`
	NewMargin      float64 `json:"new_margin" db:"new_margin"`
}

// PromoID returns the composite identifier used throughout the API.
func (p Promotion) PromoID() string {
	return p.WeekDate + "_" + p.SKU
}

// Store is immutable reference data for one retail location.
type Store struct {
	ID   string  `json:"store_id" db:"store_id"`
	Name string  `json:"store_name" db:"store_name"`
	Lat  float64 `json:"lat" db:"lat"`
	Lng  float64 `json:"lng" db:"lng"`
}

// DemandRecord is the baseline weekly unit demand for a store/SKU/week.
type DemandRecord struct {
	StoreID    string  `json:"store_id" db:"store_id"`
	SKU        string  `json:"sku" db:"sku"`
	WeekEnding string  `json:"week_ending" db:"week_ending"`
	Units      float64 `json:"demand" db:"units"`
}

// InventoryRecord is the current on-hand unit count for a store/SKU.
type InventoryRecord struct {
	StoreID string  `json:"store_id" db:"store_id"`
	SKU     string  `json:"sku" db:"sku"`
	OnHand  float64 `json:"current_inventory" db:"on_hand"`
}

// Product is a catalog entry, used for substitute lookups.
type Product struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// Snapshot bundles the four reference tables read for one simulation call.
// It is treated as read-only for the duration of the call.
type Snapshot struct {
	Promotions []Promotion
	Stores     []Store
	Demand     []DemandRecord
	Inventory  []InventoryRecord
}

// InventoryStatus classifies a store's inventory against projected demand.
type InventoryStatus string

const (
	StatusStockout   InventoryStatus = "stockout"
	StatusAtRisk     InventoryStatus = "at_risk"
	StatusSufficient InventoryStatus = "sufficient"
)

// Severity orders statuses from worst (0) to best (2).
func (s InventoryStatus) Severity() int {
	switch s {
	case StatusStockout:
		return 0
	case StatusAtRisk:
		return 1
	default:
		return 2
	}
}

// StoreImpact is the per-store outcome of a simulation.
type StoreImpact struct {
	StoreID             string          `json:"store_id"`
	StoreName           string          `json:"store_name"`
	Lat                 float64         `json:"lat"`
	Lng                 float64         `json:"lng"`
	SKU                 string          `json:"sku"`
	BaselineDemand      float64         `json:"baseline_demand"`
	ProjectedDemand     float64         `json:"projected_demand"`
	CurrentInventory    float64         `json:"current_inventory"`
	InventoryStatus     InventoryStatus `json:"inventory_status"`
	StockoutProbability float64         `json:"stockout_probability"`
	IncrementalSales    float64         `json:"incremental_sales"`
}

// KPISummary aggregates a simulation across the considered stores.
type KPISummary struct {
	IncrementalSales   float64 `json:"incremental_sales"`
	PromoLiftPercent   float64 `json:"promo_lift_percent"`
	AffectedStores     int     `json:"affected_stores"`
	ProjectedStockouts int     `json:"projected_stockouts"`
	StoresAtRisk       int     `json:"stores_at_risk"`
}

// SimulationResult is constructed fresh on every simulation call. Store order
// follows the input store iteration order.
type SimulationResult struct {
	PromoID   string        `json:"promo_id"`
	PromoName string        `json:"promo_name"`
	WeekDate  string        `json:"week_date"`
	SKU       string        `json:"sku"`
	KPIs      KPISummary    `json:"kpis"`
	Stores    []StoreImpact `json:"stores"`
}

// ImpactMetric is one quantified effect attached to a recommendation.
type ImpactMetric struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}

// Recommendation is a remediation action for a simulation with at-risk stores.
type Recommendation struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"` // supply|demand|promotion
	Priority      string         `json:"priority"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Impact        []ImpactMetric `json:"impact"`
	Confidence    string         `json:"confidence"`
	StoreID       string         `json:"store_id,omitempty"`
	SubstituteSKU string         `json:"substitute_sku,omitempty"`
}
