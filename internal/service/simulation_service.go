// backend-go/internal/service/simulation_service.go
package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/sopcenter/backend-go/internal/cache"
	"github.com/sopcenter/backend-go/internal/domain"
	"github.com/sopcenter/backend-go/internal/recommend"
	"github.com/sopcenter/backend-go/internal/repository"
	"github.com/sopcenter/backend-go/internal/simulation"
)

// SimulationService wires the dataset repository, the simulator and the
// recommendation generator. Each call takes a fresh snapshot; nothing is
// shared across invocations unless the optional cache is enabled.
type SimulationService struct {
	repo      repository.DatasetRepository
	simulator *simulation.Simulator
	cache     cache.SimulationCache
	generator recommend.Generator
}

func NewSimulationService(
	repo repository.DatasetRepository,
	simulator *simulation.Simulator,
	cacheImpl cache.SimulationCache,
	generator recommend.Generator,
) *SimulationService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSimulationCache()
	}
	return &SimulationService{
		repo:      repo,
		simulator: simulator,
		cache:     cacheImpl,
		generator: generator,
	}
}

// Simulate runs the promotional-impact simulation for one promo id, optionally
// restricted to a store subset.
func (s *SimulationService) Simulate(ctx context.Context, rawPromoID string, stores []string) (*domain.SimulationResult, error) {
	promoID, err := domain.ParsePromoID(rawPromoID)
	if err != nil {
		return nil, err
	}

	if result, ok, err := s.cache.Get(ctx, promoID.String(), stores); err == nil && ok {
		return result, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("simulation: cache get failed")
	}

	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.simulator.Run(snap, promoID, stores)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, promoID.String(), stores, result); err != nil {
		log.Warn().Err(err).Msg("simulation: cache set failed")
	}

	return result, nil
}

// SearchPromos filters the promo plan.
func (s *SimulationService) SearchPromos(ctx context.Context, q simulation.PromoQuery) ([]domain.Promotion, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return simulation.SearchPromotions(snap.Promotions, q), nil
}

// Recommend proposes remediation actions for a previously obtained result.
// With no generator configured it falls back to the deterministic rules.
func (s *SimulationService) Recommend(ctx context.Context, result *domain.SimulationResult) ([]domain.Recommendation, error) {
	generator := s.generator
	if generator == nil {
		products, err := s.repo.Products(ctx)
		if err != nil {
			return nil, err
		}
		generator = recommend.NewRuleBased(products)
	}
	return generator.Generate(ctx, result)
}
