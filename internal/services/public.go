package services

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"eventboard/internal/domain"
)

// viewsWindowYears bounds the stats query used to annotate events with views.
const viewsWindowYears = 10

type publicEventService struct {
	eventRepo      domain.EventRepository
	views          domain.ViewCounter
	app            string
	logger         *slog.Logger
	now            func() time.Time
	contextTimeout time.Duration
}

// NewPublicEventService returns the read side of published events. app is the
// name reported with every recorded hit.
func NewPublicEventService(eventRepo domain.EventRepository, views domain.ViewCounter, app string, logger *slog.Logger, timeout time.Duration) domain.PublicEventService {
	return &publicEventService{
		eventRepo:      eventRepo,
		views:          views,
		app:            app,
		logger:         logger,
		now:            time.Now,
		contextTimeout: timeout,
	}
}

func (s *publicEventService) SearchPublishedEvents(ctx context.Context, q domain.PublicEventQuery) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	f, err := q.Filter(s.now())
	if err != nil {
		return nil, err
	}
	if f.Sort != domain.SortByViews {
		events, err := s.eventRepo.Find(ctx, f)
		if err != nil {
			return nil, err
		}
		s.annotateViews(ctx, events)
		return events, nil
	}

	// Views live in the stats service, so the page is cut after sorting.
	page := f.Page
	f.Page = domain.PaginationParams{}
	f.Sort = domain.SortByIDDesc
	events, err := s.eventRepo.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	s.annotateViews(ctx, events)
	slices.SortStableFunc(events, func(a, b *domain.Event) int {
		return cmp.Compare(b.Views, a.Views)
	})
	return domain.Slice(events, page), nil
}

func (s *publicEventService) GetPublishedEvent(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.State != domain.EventStatePublished {
		return nil, domain.NotFoundf("event with id=%d was not found", id)
	}
	s.annotateViews(ctx, []*domain.Event{e})
	return e, nil
}

// TrackView records a hit for uri. Errors are logged and dropped.
func (s *publicEventService) TrackView(ctx context.Context, uri, ip string) {
	if s.views == nil {
		return
	}
	hit := domain.EndpointHit{App: s.app, URI: uri, IP: ip, Timestamp: s.now()}
	if err := s.views.Hit(ctx, hit); err != nil {
		s.logger.WarnContext(ctx, "record hit failed", "uri", uri, "err", err)
	}
}

// annotateViews fills Views from the stats service. When the service is
// unavailable the events keep zero views.
func (s *publicEventService) annotateViews(ctx context.Context, events []*domain.Event) {
	if s.views == nil || len(events) == 0 {
		return
	}
	uris := make([]string, 0, len(events))
	for _, e := range events {
		uris = append(uris, domain.EventURI(e.ID))
	}
	now := s.now()
	stats, err := s.views.Stats(ctx, domain.StatsQuery{
		Start:  now.AddDate(-viewsWindowYears, 0, 0),
		End:    now.AddDate(viewsWindowYears, 0, 0),
		URIs:   uris,
		Unique: true,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "view stats unavailable", "err", err)
		return
	}
	hits := make(map[string]int64, len(stats))
	for _, st := range stats {
		hits[st.URI] += st.Hits
	}
	for _, e := range events {
		e.Views = hits[domain.EventURI(e.ID)]
	}
}
