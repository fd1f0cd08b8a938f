// backend-go/internal/api/handlers/simulation_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sopcenter/backend-go/internal/domain"
	"github.com/sopcenter/backend-go/internal/service"
	"github.com/sopcenter/backend-go/internal/simulation"
)

type SimulationHandler struct {
	service *service.SimulationService
}

func NewSimulationHandler(service *service.SimulationService) *SimulationHandler {
	return &SimulationHandler{service: service}
}

// SearchPromos handles GET /promos?week_date=&sku=&campaign_theme=
func (h *SimulationHandler) SearchPromos(c *gin.Context) {
	q := simulation.PromoQuery{
		WeekDate:      c.Query("week_date"),
		SKU:           c.Query("sku"),
		CampaignTheme: c.Query("campaign_theme"),
	}

	promos, err := h.service.SearchPromos(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	type promoView struct {
		PromoID string `json:"promo_id"`
		domain.Promotion
	}
	views := make([]promoView, 0, len(promos))
	for _, p := range promos {
		views = append(views, promoView{PromoID: p.PromoID(), Promotion: p})
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(views),
		"promos": views,
	})
}

type simulateRequest struct {
	PromoID string   `json:"promo_id" binding:"required"`
	Stores  []string `json:"stores"`
}

// Simulate handles POST /simulations
func (h *SimulationHandler) Simulate(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := h.service.Simulate(c.Request.Context(), req.PromoID, req.Stores)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Recommend handles POST /recommendations. The body is a previously obtained
// simulation result.
func (h *SimulationHandler) Recommend(c *gin.Context) {
	var result domain.SimulationResult
	if err := c.ShouldBindJSON(&result); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid simulation result", "details": err.Error()})
		return
	}

	recommendations, err := h.service.Recommend(c.Request.Context(), &result)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidPromoID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrPromotionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrDataUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
