// backend-go/internal/simulation/search.go
package simulation

import (
	"strings"

	"github.com/sopcenter/backend-go/internal/domain"
)

// PromoQuery filters the promo plan. Empty fields match everything;
// CampaignTheme is a case-insensitive substring match.
type PromoQuery struct {
	WeekDate      string
	SKU           string
	CampaignTheme string
}

// SearchPromotions returns the plan entries matching the query, in plan order.
func SearchPromotions(promos []domain.Promotion, q PromoQuery) []domain.Promotion {
	theme := strings.ToLower(strings.TrimSpace(q.CampaignTheme))

	results := make([]domain.Promotion, 0, len(promos))
	for _, p := range promos {
		if q.WeekDate != "" && p.WeekDate != q.WeekDate {
			continue
		}
		if q.SKU != "" && p.SKU != q.SKU {
			continue
		}
		if theme != "" && !strings.Contains(strings.ToLower(p.CampaignTheme), theme) {
			continue
		}
		results = append(results, p)
	}
	return results
}
