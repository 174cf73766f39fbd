package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventboard/internal/domain"
)

type statsService struct {
	hitRepo        domain.HitRepository
	contextTimeout time.Duration
}

// NewStatsService returns the StatsService of the hit-counter binary.
func NewStatsService(hitRepo domain.HitRepository, timeout time.Duration) domain.StatsService {
	return &statsService{
		hitRepo:        hitRepo,
		contextTimeout: timeout,
	}
}

func (s *statsService) RecordHit(ctx context.Context, hit *domain.EndpointHit) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(hit.App) == "" || strings.TrimSpace(hit.URI) == "" || strings.TrimSpace(hit.IP) == "" {
		return domain.Validationf("app, uri and ip are required")
	}
	if hit.Timestamp.IsZero() {
		hit.Timestamp = time.Now()
	}
	if err := s.hitRepo.Save(ctx, hit); err != nil {
		return fmt.Errorf("save hit: %w", err)
	}
	return nil
}

func (s *statsService) GetStats(ctx context.Context, q domain.StatsQuery) ([]domain.ViewStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if q.Start.After(q.End) {
		return nil, domain.Validationf("start must not be after end")
	}
	return s.hitRepo.Stats(ctx, q)
}
