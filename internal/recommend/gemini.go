// backend-go/internal/recommend/gemini.go
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"github.com/sopcenter/backend-go/internal/domain"
)

const maxRecommendations = 3

// Gemini asks a hosted model for strategic recommendations and falls back to
// the rule-based generator when the call fails or the reply cannot be parsed.
// The model is forced to reply in JSON so no free text is ever scraped for
// control flow.
type Gemini struct {
	client   *genai.Client
	model    string
	fallback *RuleBased
}

func NewGemini(ctx context.Context, apiKey, model string, fallback *RuleBased) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Gemini{client: client, model: model, fallback: fallback}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

// llmRecommendation is the schema the model must fill.
type llmRecommendation struct {
	Type            string `json:"type"`
	Priority        string `json:"priority"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	EstimatedImpact string `json:"estimated_impact"`
}

type llmReply struct {
	Recommendations []llmRecommendation `json:"recommendations"`
}

func (g *Gemini) Generate(ctx context.Context, result *domain.SimulationResult) ([]domain.Recommendation, error) {
	if result.KPIs.ProjectedStockouts == 0 && result.KPIs.StoresAtRisk == 0 {
		return []domain.Recommendation{}, nil
	}

	recs, err := g.generateFromModel(ctx, result)
	if err != nil {
		log.Warn().Err(err).Msg("llm recommendation failed, using rule-based fallback")
		return g.fallback.Generate(ctx, result)
	}
	return recs, nil
}

func (g *Gemini) generateFromModel(ctx context.Context, result *domain.SimulationResult) ([]domain.Recommendation, error) {
	model := g.client.GenerativeModel(g.model)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(result)))
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	var reply llmReply
	if err := json.Unmarshal([]byte(stripFences(text)), &reply); err != nil {
		return nil, fmt.Errorf("decode llm reply: %w", err)
	}
	if len(reply.Recommendations) == 0 {
		return nil, fmt.Errorf("llm reply contained no recommendations")
	}

	risky := atRiskStores(result)
	recommendations := make([]domain.Recommendation, 0, maxRecommendations)
	for i, rec := range reply.Recommendations {
		if i == maxRecommendations {
			break
		}

		structured := domain.Recommendation{
			ID:          fmt.Sprintf("rec_%03d", i+1),
			Type:        defaultString(rec.Type, "supply"),
			Priority:    defaultString(rec.Priority, "medium"),
			Title:       defaultString(rec.Title, "Strategic Recommendation"),
			Description: rec.Description,
			Impact: []domain.ImpactMetric{
				{Metric: "Estimated Impact", Value: defaultString(rec.EstimatedImpact, "TBD")},
			},
			Confidence: "medium",
		}
		if structured.Priority == "high" {
			structured.Confidence = "high"
		}
		if structured.Type == "supply" && len(risky) > 0 {
			structured.StoreID = risky[0].StoreID
		}

		recommendations = append(recommendations, structured)
	}

	return recommendations, nil
}

func buildPrompt(result *domain.SimulationResult) string {
	risky := atRiskStores(result)
	sort.SliceStable(risky, func(i, j int) bool {
		return risky[i].StockoutProbability > risky[j].StockoutProbability
	})
	if len(risky) > 5 {
		risky = risky[:5]
	}

	var critical strings.Builder
	for _, s := range risky {
		fmt.Fprintf(&critical, "- %s: %.0f units vs %.0f demand (stockout risk: %.0f%%)\n",
			s.StoreName, s.CurrentInventory, s.ProjectedDemand, s.StockoutProbability*100)
	}

	return fmt.Sprintf(`You are an S&OP strategy advisor.

SIMULATION RESULTS:
- Campaign: %s
- SKU: %s
- Total stores analyzed: %d
- Stores with stockout risk: %d
- Stores at risk: %d
- Incremental sales opportunity: $%.0f

CRITICAL STORES:
%s
YOUR TASK:
Generate 2-3 strategic recommendations to address these supply chain constraints.

RECOMMENDATION TYPES TO CONSIDER:
1. Supply-side solutions (expedited shipments, inventory transfers)
2. Demand-shaping solutions (product substitutes, alternative SKUs)
3. Promotional adjustments (timing changes, store selection)

Reply with JSON only, shaped as:
{"recommendations":[{"type":"supply|demand|promotion","priority":"high|medium|low","title":"...","description":"...","estimated_impact":"..."}]}

Be specific, actionable, and data-driven.`,
		result.PromoName, result.SKU, result.KPIs.AffectedStores,
		result.KPIs.ProjectedStockouts, result.KPIs.StoresAtRisk,
		result.KPIs.IncrementalSales, critical.String())
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("llm returned no candidates")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("llm returned no text parts")
	}
	return sb.String(), nil
}

// stripFences removes a markdown code fence if the model wrapped its JSON in
// one despite the response MIME type.
func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

var _ Generator = (*Gemini)(nil)
