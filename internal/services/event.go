package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventboard/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	categoryRepo   domain.CategoryRepository
	tx             domain.TxRunner
	notifier       domain.ModerationNotifier
	logger         *slog.Logger
	now            func() time.Time
	contextTimeout time.Duration
}

// NewEventService returns the EventService that drives the event lifecycle.
// Edits lock the event row through tx, the same lock request admission takes.
// notifier may be nil, in which case moderation outcomes are not mailed.
func NewEventService(
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	categoryRepo domain.CategoryRepository,
	tx domain.TxRunner,
	notifier domain.ModerationNotifier,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		categoryRepo:   categoryRepo,
		tx:             tx,
		notifier:       notifier,
		logger:         logger,
		now:            time.Now,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, userID int64, in domain.NewEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Validate the date before touching the store.
	now := s.now()
	if err := domain.ValidateLeadTime(in.EventDate, now, domain.OwnerLeadTime); err != nil {
		return nil, err
	}

	initiator, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	moderation := true
	if in.RequestModeration != nil {
		moderation = *in.RequestModeration
	}
	e := &domain.Event{
		Annotation:        in.Annotation,
		Description:       in.Description,
		Title:             in.Title,
		Category:          *category,
		Initiator:         *initiator,
		EventDate:         in.EventDate,
		Location:          in.Location,
		Paid:              in.Paid,
		ParticipantLimit:  in.ParticipantLimit,
		RequestModeration: moderation,
	}
	if err := domain.SubmitForReview(e, now); err != nil {
		return nil, err
	}
	if err := s.eventRepo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return e, nil
}

func (s *eventService) ListUserEvents(ctx context.Context, userID int64, page domain.PaginationParams) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	f := domain.NewEventFilter().Where(domain.ByInitiators([]int64{userID}))
	f.Page = page
	return s.eventRepo.Find(ctx, f)
}

func (s *eventService) GetUserEvent(ctx context.Context, userID, eventID int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	e, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return ownedBy(e, userID)
}

// ownedBy hides events of other initiators behind NotFound.
func ownedBy(e *domain.Event, userID int64) (*domain.Event, error) {
	if e.Initiator.ID != userID {
		return nil, domain.NotFoundf("event with id=%d was not found", e.ID)
	}
	return e, nil
}

func (s *eventService) UpdateEventByOwner(ctx context.Context, userID, eventID int64, in domain.UpdateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in.EventDate != nil {
		if err := domain.ValidateLeadTime(*in.EventDate, s.now(), domain.OwnerLeadTime); err != nil {
			return nil, err
		}
	}
	if in.StateAction == nil {
		return nil, domain.ErrInvalidStateAction
	}

	var updated *domain.Event
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		e, err := s.eventRepo.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if e, err = ownedBy(e, userID); err != nil {
			return err
		}
		if err := s.merge(ctx, e, in); err != nil {
			return err
		}
		if err := domain.ApplyOwnerTransition(e, *in.StateAction); err != nil {
			return err
		}
		if err := s.eventRepo.Update(ctx, e); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *eventService) UpdateEventByAdmin(ctx context.Context, eventID int64, in domain.UpdateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := s.now()
	if in.EventDate != nil {
		if err := domain.ValidateLeadTime(*in.EventDate, now, domain.AdminLeadTime); err != nil {
			return nil, err
		}
	}

	var updated *domain.Event
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		e, err := s.eventRepo.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if err := s.merge(ctx, e, in); err != nil {
			return err
		}
		if in.StateAction != nil {
			if err := domain.ApplyAdminTransition(e, *in.StateAction, now); err != nil {
				return err
			}
		}
		if err := s.eventRepo.Update(ctx, e); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Mail only after commit, a rolled back decision must not reach the initiator.
	if in.StateAction != nil {
		s.notifyModeration(ctx, updated, *in.StateAction)
	}
	return updated, nil
}

// merge resolves the referenced category and copies the present fields onto e.
func (s *eventService) merge(ctx context.Context, e *domain.Event, in domain.UpdateEventInput) error {
	var category *domain.Category
	if in.CategoryID != nil {
		c, err := s.categoryRepo.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return err
		}
		category = c
	}
	if in.ParticipantLimit != nil && *in.ParticipantLimit > 0 && *in.ParticipantLimit < e.ConfirmedRequests {
		return fmt.Errorf("%w: participant limit %d is below the %d confirmed requests",
			domain.ErrConflict, *in.ParticipantLimit, e.ConfirmedRequests)
	}
	in.Merge(e, category)
	return nil
}

// notifyModeration mails the initiator about a publish or reject decision.
// Failures are logged, the decision itself is already stored.
func (s *eventService) notifyModeration(ctx context.Context, e *domain.Event, action domain.StateAction) {
	if s.notifier == nil {
		return
	}
	var err error
	switch action {
	case domain.StateActionPublish:
		err = s.notifier.EventPublished(ctx, e)
	case domain.StateActionReject:
		err = s.notifier.EventRejected(ctx, e)
	default:
		return
	}
	if err != nil {
		s.logger.WarnContext(ctx, "moderation notification failed", "event_id", e.ID, "action", string(action), "err", err)
	}
}

func (s *eventService) SearchEvents(ctx context.Context, q domain.AdminEventQuery) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	f, err := q.Filter()
	if err != nil {
		return nil, err
	}
	return s.eventRepo.Find(ctx, f)
}
