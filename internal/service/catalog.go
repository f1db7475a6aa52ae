package service

import (
	"context"
	"time"

	"evrental-backend/internal/cache"
	"evrental-backend/internal/domain"
	"evrental-backend/internal/logger"
	"evrental-backend/internal/repository"
)

const catalogCacheKey = "penalty_catalog"

// CatalogCache is the read-through cache seam for the penalty catalog.
// *cache.RedisCache implements it.
type CatalogCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

type penaltyCatalogService struct {
	repo     repository.PenaltyFeeRepository
	cacheSvc CatalogCache
	ttl      time.Duration
}

func NewPenaltyCatalogService(repo repository.PenaltyFeeRepository, cacheSvc CatalogCache, ttl time.Duration) PenaltyCatalogService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &penaltyCatalogService{repo: repo, cacheSvc: cacheSvc, ttl: ttl}
}

// List returns the penalty catalog, cache-first. A backend failure
// surfaces as an empty catalog plus the error; callers that only need
// base rent can continue, callers pricing penalties cannot.
func (s *penaltyCatalogService) List(ctx context.Context) ([]domain.PenaltyFee, error) {
	if s.cacheSvc != nil {
		var cached []domain.PenaltyFee
		err := s.cacheSvc.Get(ctx, catalogCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !cache.IsMiss(err) {
			logger.Warn("Penalty catalog cache read failed", "error", err)
		}
	}

	fees, err := s.repo.List(ctx)
	if err != nil {
		return []domain.PenaltyFee{}, domain.ExternalError("failed to load penalty catalog", err)
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.Set(ctx, catalogCacheKey, fees, s.ttl); err != nil {
			logger.Warn("Penalty catalog cache write failed", "error", err)
		}
	}
	return fees, nil
}
