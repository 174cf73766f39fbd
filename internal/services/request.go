package services

import (
	"context"
	"fmt"
	"time"

	"eventboard/internal/domain"
)

type requestService struct {
	requestRepo    domain.RequestRepository
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	tx             domain.TxRunner
	now            func() time.Time
	contextTimeout time.Duration
}

// NewRequestService returns the RequestService. Creating a request and
// resolving a moderation batch both run in one transaction with the event
// row locked, so the confirmed counter cannot be overbooked.
func NewRequestService(
	requestRepo domain.RequestRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	tx domain.TxRunner,
	timeout time.Duration,
) domain.RequestService {
	return &requestService{
		requestRepo:    requestRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		tx:             tx,
		now:            time.Now,
		contextTimeout: timeout,
	}
}

func (s *requestService) CreateRequest(ctx context.Context, userID, eventID int64) (*domain.ParticipationRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var req *domain.ParticipationRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		e, err := s.eventRepo.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
			return err
		}

		confirmedBefore := e.ConfirmedRequests
		req, err = domain.NewRequestFor(e, userID, s.now())
		if err != nil {
			return err
		}
		if err := s.requestRepo.Create(ctx, req); err != nil {
			return err
		}
		if e.ConfirmedRequests != confirmedBefore {
			return s.eventRepo.UpdateConfirmedRequests(ctx, e.ID, e.ConfirmedRequests)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// CancelRequest does not check that userID owns the request and does not
// release a confirmed seat.
// TODO: enforce ownership and decrement confirmed_requests once product confirms both.
func (s *requestService) CancelRequest(ctx context.Context, userID, requestID int64) (*domain.ParticipationRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.requestRepo.UpdateStatus(ctx, domain.RequestStatusCanceled, []int64{req.ID}); err != nil {
		return nil, fmt.Errorf("cancel request: %w", err)
	}
	req.Status = domain.RequestStatusCanceled
	return req, nil
}

func (s *requestService) ListUserRequests(ctx context.Context, userID int64) ([]*domain.ParticipationRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.requestRepo.ListByRequester(ctx, userID)
}

func (s *requestService) ListEventRequests(ctx context.Context, userID, eventID int64) ([]*domain.ParticipationRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	e, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.Initiator.ID != userID {
		return nil, domain.NotFoundf("event with id=%d was not found", eventID)
	}
	return s.requestRepo.ListByEvent(ctx, eventID)
}

func (s *requestService) UpdateRequestsStatus(ctx context.Context, userID, eventID int64, ids []int64, status domain.RequestStatus) (*domain.StatusUpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if status != domain.RequestStatusConfirmed && status != domain.RequestStatusRejected {
		return nil, domain.Validationf("status must be CONFIRMED or REJECTED, got %q", status)
	}
	ids = dedupeIDs(ids)

	var res *domain.StatusUpdateResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		e, err := s.eventRepo.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if e.Initiator.ID != userID {
			return domain.NotFoundf("event with id=%d was not found", eventID)
		}

		locked, err := s.requestRepo.ListByEventAndIDsForUpdate(ctx, eventID, ids)
		if err != nil {
			return err
		}
		reqs, err := inCallerOrder(ids, locked, eventID)
		if err != nil {
			return err
		}

		confirmedBefore := e.ConfirmedRequests
		res, err = domain.Admit(e, reqs, status)
		if err != nil {
			return err
		}

		if err := s.requestRepo.UpdateStatus(ctx, domain.RequestStatusConfirmed,
			domain.IDs(withStatus(res.Confirmed, domain.RequestStatusConfirmed))); err != nil {
			return err
		}
		if err := s.requestRepo.UpdateStatus(ctx, domain.RequestStatusRejected,
			domain.IDs(withStatus(res.Rejected, domain.RequestStatusRejected))); err != nil {
			return err
		}
		if e.ConfirmedRequests != confirmedBefore {
			return s.eventRepo.UpdateConfirmedRequests(ctx, e.ID, e.ConfirmedRequests)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// inCallerOrder arranges the locked rows in the order of ids. Every id must
// name a request of the event.
func inCallerOrder(ids []int64, locked []*domain.ParticipationRequest, eventID int64) ([]*domain.ParticipationRequest, error) {
	byID := make(map[int64]*domain.ParticipationRequest, len(locked))
	for _, r := range locked {
		byID[r.ID] = r
	}
	out := make([]*domain.ParticipationRequest, 0, len(ids))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			return nil, domain.NotFoundf("request with id=%d was not found for event id=%d", id, eventID)
		}
		out = append(out, r)
	}
	return out, nil
}

// withStatus keeps the requests whose status was set to status. The
// unconditional admission path reports requests as confirmed without
// changing them, and those rows are left alone.
func withStatus(reqs []*domain.ParticipationRequest, status domain.RequestStatus) []*domain.ParticipationRequest {
	out := make([]*domain.ParticipationRequest, 0, len(reqs))
	for _, r := range reqs {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}
