package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"

	"eventboard/internal/domain"
)

var errStore = errors.New("store unavailable")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEventRepo is an in-memory EventRepository. Find evaluates the filter
// clauses in memory.
type fakeEventRepo struct {
	mu      sync.Mutex
	byID    map[int64]*domain.Event
	nextID  int64
	updates int
	findErr error
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{byID: make(map[int64]*domain.Event), nextID: 1}
	for _, e := range events {
		f.byID[e.ID] = e
		if e.ID >= f.nextID {
			f.nextID = e.ID + 1
		}
	}
	return f
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = f.nextID
	f.nextID++
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.NotFoundf("event with id=%d was not found", id)
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Event, error) {
	return f.GetByID(ctx, id)
}

// Update leaves ConfirmedRequests alone, like the postgres UPDATE, which only
// UpdateConfirmedRequests writes.
func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.byID[e.ID]
	if !ok {
		return domain.NotFoundf("event with id=%d was not found", e.ID)
	}
	cp := *e
	cp.ConfirmedRequests = stored.ConfirmedRequests
	f.byID[e.ID] = &cp
	f.updates++
	return nil
}

func (f *fakeEventRepo) UpdateConfirmedRequests(ctx context.Context, id int64, confirmed int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return domain.NotFoundf("event with id=%d was not found", id)
	}
	e.ConfirmedRequests = confirmed
	return nil
}

func (f *fakeEventRepo) Find(ctx context.Context, filter *domain.EventFilter) ([]*domain.Event, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.Event{}
	for _, e := range f.byID {
		if filter.Matches(e) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.Sort == domain.SortByEventDate {
			return out[i].EventDate.Before(out[j].EventDate)
		}
		return out[i].ID > out[j].ID
	})
	return domain.Slice(out, filter.Page), nil
}

func (f *fakeEventRepo) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.Event{}
	for _, id := range ids {
		if e, ok := f.byID[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ExistsByCategory(ctx context.Context, categoryID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.byID {
		if e.Category.ID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

type fakeUserRepo struct {
	byID   map[int64]*domain.User
	nextID int64
	err    error // if set, Create returns this error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: make(map[int64]*domain.User), nextID: 100}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.err != nil {
		return f.err
	}
	u.ID = f.nextID
	f.nextID++
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.NotFoundf("user with id=%d was not found", id)
	}
	return u, nil
}

func (f *fakeUserRepo) List(ctx context.Context, ids []int64, page domain.PaginationParams) ([]*domain.User, error) {
	out := []*domain.User{}
	for _, u := range f.byID {
		if len(ids) == 0 || containsInt64(ids, u.ID) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return domain.Slice(out, page), nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.NotFoundf("user with id=%d was not found", id)
	}
	delete(f.byID, id)
	return nil
}

func containsInt64(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type fakeCategoryRepo struct {
	byID   map[int64]*domain.Category
	nextID int64
}

func newFakeCategoryRepo(cats ...*domain.Category) *fakeCategoryRepo {
	f := &fakeCategoryRepo{byID: make(map[int64]*domain.Category), nextID: 50}
	for _, c := range cats {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	for _, existing := range f.byID {
		if existing.Name == c.Name {
			return domain.ErrDuplicateCategory
		}
	}
	c.ID = f.nextID
	f.nextID++
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.NotFoundf("category with id=%d was not found", id)
	}
	return c, nil
}

func (f *fakeCategoryRepo) List(ctx context.Context, page domain.PaginationParams) ([]*domain.Category, error) {
	out := []*domain.Category{}
	for _, c := range f.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return domain.Slice(out, page), nil
}

func (f *fakeCategoryRepo) Rename(ctx context.Context, id int64, name string) (*domain.Category, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.NotFoundf("category with id=%d was not found", id)
	}
	c.Name = name
	return c, nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.NotFoundf("category with id=%d was not found", id)
	}
	delete(f.byID, id)
	return nil
}

type fakeRequestRepo struct {
	mu     sync.Mutex
	byID   map[int64]*domain.ParticipationRequest
	nextID int64
}

func newFakeRequestRepo(reqs ...*domain.ParticipationRequest) *fakeRequestRepo {
	f := &fakeRequestRepo{byID: make(map[int64]*domain.ParticipationRequest), nextID: 1000}
	for _, r := range reqs {
		f.byID[r.ID] = r
	}
	return f
}

func (f *fakeRequestRepo) Create(ctx context.Context, r *domain.ParticipationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.EventID == r.EventID && existing.RequesterID == r.RequesterID {
			return domain.ErrDuplicateRequest
		}
	}
	r.ID = f.nextID
	f.nextID++
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id int64) (*domain.ParticipationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, domain.NotFoundf("request with id=%d was not found", id)
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRequestRepo) list(keep func(r *domain.ParticipationRequest) bool) []*domain.ParticipationRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.ParticipationRequest{}
	for _, r := range f.byID {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeRequestRepo) ListByEvent(ctx context.Context, eventID int64) ([]*domain.ParticipationRequest, error) {
	return f.list(func(r *domain.ParticipationRequest) bool { return r.EventID == eventID }), nil
}

func (f *fakeRequestRepo) ListByRequester(ctx context.Context, requesterID int64) ([]*domain.ParticipationRequest, error) {
	return f.list(func(r *domain.ParticipationRequest) bool { return r.RequesterID == requesterID }), nil
}

func (f *fakeRequestRepo) ListByEventAndIDsForUpdate(ctx context.Context, eventID int64, ids []int64) ([]*domain.ParticipationRequest, error) {
	return f.list(func(r *domain.ParticipationRequest) bool {
		return r.EventID == eventID && containsInt64(ids, r.ID)
	}), nil
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, status domain.RequestStatus, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		if r, ok := f.byID[id]; ok {
			r.Status = status
		}
	}
	return nil
}

func (f *fakeRequestRepo) status(id int64) domain.RequestStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id].Status
}

// fakeTx serializes units of work, standing in for the event row lock.
type fakeTx struct {
	mu    sync.Mutex
	calls int
}

func (t *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++
	return fn(ctx)
}

type fakeViewCounter struct {
	mu       sync.Mutex
	hits     []domain.EndpointHit
	stats    []domain.ViewStats
	statsErr error
	hitErr   error
	queries  []domain.StatsQuery
}

func (v *fakeViewCounter) Hit(ctx context.Context, hit domain.EndpointHit) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.hitErr != nil {
		return v.hitErr
	}
	v.hits = append(v.hits, hit)
	return nil
}

func (v *fakeViewCounter) Stats(ctx context.Context, q domain.StatsQuery) ([]domain.ViewStats, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.queries = append(v.queries, q)
	if v.statsErr != nil {
		return nil, v.statsErr
	}
	return v.stats, nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	published []int64
	rejected  []int64
	err       error
}

func (n *fakeNotifier) EventPublished(ctx context.Context, e *domain.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.published = append(n.published, e.ID)
	return n.err
}

func (n *fakeNotifier) EventRejected(ctx context.Context, e *domain.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rejected = append(n.rejected, e.ID)
	return n.err
}
