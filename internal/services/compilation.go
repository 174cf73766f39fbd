package services

import (
	"context"
	"fmt"
	"time"

	"eventboard/internal/domain"
)

type compilationService struct {
	compilationRepo domain.CompilationRepository
	eventRepo       domain.EventRepository
	tx              domain.TxRunner
	contextTimeout  time.Duration
}

func NewCompilationService(compilationRepo domain.CompilationRepository, eventRepo domain.EventRepository, tx domain.TxRunner, timeout time.Duration) domain.CompilationService {
	return &compilationService{
		compilationRepo: compilationRepo,
		eventRepo:       eventRepo,
		tx:              tx,
		contextTimeout:  timeout,
	}
}

func (s *compilationService) CreateCompilation(ctx context.Context, in domain.NewCompilationInput) (*domain.Compilation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ids := dedupeIDs(in.EventIDs)
	c := &domain.Compilation{Title: in.Title, Pinned: in.Pinned}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requireEvents(ctx, ids); err != nil {
			return err
		}
		return s.compilationRepo.Create(ctx, c, ids)
	})
	if err != nil {
		return nil, fmt.Errorf("create compilation: %w", err)
	}
	return s.compilationRepo.GetByID(ctx, c.ID)
}

func (s *compilationService) UpdateCompilation(ctx context.Context, id int64, in domain.UpdateCompilationInput) (*domain.Compilation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.compilationRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if in.Title != nil || in.Pinned != nil {
			if in.Title != nil {
				c.Title = *in.Title
			}
			if in.Pinned != nil {
				c.Pinned = *in.Pinned
			}
			if err := s.compilationRepo.Update(ctx, c); err != nil {
				return err
			}
		}
		if in.EventIDs != nil {
			ids := dedupeIDs(*in.EventIDs)
			if err := s.requireEvents(ctx, ids); err != nil {
				return err
			}
			return s.compilationRepo.ReplaceEvents(ctx, id, ids)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update compilation: %w", err)
	}
	return s.compilationRepo.GetByID(ctx, id)
}

// requireEvents fails with NotFound naming the first id that has no event.
func (s *compilationService) requireEvents(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	events, err := s.eventRepo.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	found := make(map[int64]struct{}, len(events))
	for _, e := range events {
		found[e.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return domain.NotFoundf("event with id=%d was not found", id)
		}
	}
	return nil
}

func (s *compilationService) DeleteCompilation(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.compilationRepo.Delete(ctx, id)
}

func (s *compilationService) GetCompilation(ctx context.Context, id int64) (*domain.Compilation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.compilationRepo.GetByID(ctx, id)
}

func (s *compilationService) ListCompilations(ctx context.Context, pinned *bool, page domain.PaginationParams) ([]*domain.Compilation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.compilationRepo.List(ctx, pinned, page)
}
