package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sopcenter/backend-go/internal/api"
	"github.com/sopcenter/backend-go/internal/domain"
	csvrepo "github.com/sopcenter/backend-go/internal/repository/csv"
	"github.com/sopcenter/backend-go/internal/service"
	"github.com/sopcenter/backend-go/internal/simulation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// fixtureRouter builds the full router over a small on-disk dataset: one
// promotion, two stores, one of them heading for a stockout.
func fixtureRouter(t *testing.T) *gin.Engine {
	t.Helper()
	dir := t.TempDir()

	writeFixture(t, dir, "promo_plan.csv",
		"Week Date,Product Focus,SKU,Brand,Campaign Theme,Target Audience,Current Price,Decreased Promo Price,Demand Uplift (%),Current GrossMargin,New Gross New Margin\n"+
			"2025-11-02,Serum,EL-ANR-001,Estee Lauder,Holiday Glow-Up,Gen Z,\"$75.00\",\"$55.00\",20%,60%,45%\n")
	writeFixture(t, dir, "stores.csv",
		"Synthetic ID,Store Name,Latitude,Longitude\n"+
			"ST-001,Sephora Times Square,40.7580,-73.9855\n"+
			"ST-002,Sephora SoHo,40.7246,-74.0019\n")
	writeFixture(t, dir, "demand.csv",
		"Store ID,SKU,Week Ending,Demand\n"+
			"ST-001,EL-ANR-001,2025-11-02,100\n"+
			"ST-002,EL-ANR-001,2025-11-02,50\n")
	writeFixture(t, dir, "inventory.csv",
		"Store ID,SKU,Current Inventory\n"+
			"ST-001,EL-ANR-001,10\n"+
			"ST-002,EL-ANR-001,100\n")
	writeFixture(t, dir, "products.json",
		`[{"sku":"EL-ANR-001","name":"Advanced Night Repair","category":"skincare","price":75},
		  {"sku":"CL-MS-003","name":"Moisture Surge","category":"skincare","price":39}]`)

	repo := csvrepo.NewRepository(dir)
	svc := service.NewSimulationService(repo, simulation.New(simulation.DefaultThresholds()), nil, nil)
	return api.NewRouter(svc, nil)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := fixtureRouter(t)
	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSearchPromosEndpoint(t *testing.T) {
	router := fixtureRouter(t)
	w := doJSON(t, router, http.MethodGet, "/api/v1/promos?campaign_theme=holiday", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count  int `json:"count"`
		Promos []struct {
			PromoID       string `json:"promo_id"`
			SKU           string `json:"sku"`
			CampaignTheme string `json:"campaign_theme"`
		} `json:"promos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "2025-11-02_EL-ANR-001", body.Promos[0].PromoID)
	assert.Equal(t, "Holiday Glow-Up", body.Promos[0].CampaignTheme)
}

func TestSearchPromosNoMatchReturnsEmptyList(t *testing.T) {
	router := fixtureRouter(t)
	w := doJSON(t, router, http.MethodGet, "/api/v1/promos?sku=UNKNOWN", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Count)
}

func TestSimulateEndpoint(t *testing.T) {
	router := fixtureRouter(t)
	w := doJSON(t, router, http.MethodPost, "/api/v1/simulations",
		map[string]any{"promo_id": "2025-11-02_EL-ANR-001"})
	require.Equal(t, http.StatusOK, w.Code)

	var result domain.SimulationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	assert.Equal(t, "2025-11-02_EL-ANR-001", result.PromoID)
	assert.Equal(t, "Holiday Glow-Up", result.PromoName)
	require.Len(t, result.Stores, 2)
	assert.Equal(t, domain.StatusStockout, result.Stores[0].InventoryStatus)
	assert.Equal(t, domain.StatusSufficient, result.Stores[1].InventoryStatus)

	// (120-100)*55 + (60-50)*55
	assert.Equal(t, 1650.0, result.KPIs.IncrementalSales)
	assert.Equal(t, 2, result.KPIs.AffectedStores)
	assert.Equal(t, 1, result.KPIs.ProjectedStockouts)
}

func TestSimulateStoreSubset(t *testing.T) {
	router := fixtureRouter(t)
	w := doJSON(t, router, http.MethodPost, "/api/v1/simulations",
		map[string]any{"promo_id": "2025-11-02_EL-ANR-001", "stores": []string{"ST-002"}})
	require.Equal(t, http.StatusOK, w.Code)

	var result domain.SimulationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Stores, 1)
	assert.Equal(t, "ST-002", result.Stores[0].StoreID)
	assert.Equal(t, 550.0, result.KPIs.IncrementalSales)
}

func TestSimulateRejectsMissingPromoID(t *testing.T) {
	router := fixtureRouter(t)
	w := doJSON(t, router, http.MethodPost, "/api/v1/simulations", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimulateRejectsMalformedPromoID(t *testing.T) {
	router := fixtureRouter(t)
	w := doJSON(t, router, http.MethodPost, "/api/v1/simulations",
		map[string]any{"promo_id": "no-underscore-here"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimulateUnknownPromoIs404(t *testing.T) {
	router := fixtureRouter(t)
	w := doJSON(t, router, http.MethodPost, "/api/v1/simulations",
		map[string]any{"promo_id": "2030-01-01_NOPE-999"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecommendEndpoint(t *testing.T) {
	router := fixtureRouter(t)

	sim := doJSON(t, router, http.MethodPost, "/api/v1/simulations",
		map[string]any{"promo_id": "2025-11-02_EL-ANR-001"})
	require.Equal(t, http.StatusOK, sim.Code)

	w := doJSON(t, router, http.MethodPost, "/api/v1/recommendations",
		json.RawMessage(sim.Body.Bytes()))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Recommendations []domain.Recommendation `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Recommendations)
	assert.Equal(t, "supply", body.Recommendations[0].Type)
	assert.Equal(t, "ST-001", body.Recommendations[0].StoreID)
}
