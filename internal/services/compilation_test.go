package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventboard/internal/domain"
)

type fakeCompilationRepo struct {
	events *fakeEventRepo
	byID   map[int64]*domain.Compilation
	links  map[int64][]int64
	nextID int64
}

func newFakeCompilationRepo(events *fakeEventRepo) *fakeCompilationRepo {
	return &fakeCompilationRepo{
		events: events,
		byID:   make(map[int64]*domain.Compilation),
		links:  make(map[int64][]int64),
		nextID: 1,
	}
}

func (f *fakeCompilationRepo) Create(ctx context.Context, c *domain.Compilation, eventIDs []int64) error {
	c.ID = f.nextID
	f.nextID++
	cp := *c
	f.byID[c.ID] = &cp
	f.links[c.ID] = eventIDs
	return nil
}

func (f *fakeCompilationRepo) GetByID(ctx context.Context, id int64) (*domain.Compilation, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.NotFoundf("compilation with id=%d was not found", id)
	}
	cp := *c
	events, _ := f.events.ListByIDs(ctx, f.links[id])
	cp.Events = events
	return &cp, nil
}

func (f *fakeCompilationRepo) List(ctx context.Context, pinned *bool, page domain.PaginationParams) ([]*domain.Compilation, error) {
	out := []*domain.Compilation{}
	for id, c := range f.byID {
		if pinned == nil || c.Pinned == *pinned {
			full, _ := f.GetByID(ctx, id)
			out = append(out, full)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return domain.Slice(out, page), nil
}

func (f *fakeCompilationRepo) Update(ctx context.Context, c *domain.Compilation) error {
	if _, ok := f.byID[c.ID]; !ok {
		return domain.NotFoundf("compilation with id=%d was not found", c.ID)
	}
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCompilationRepo) ReplaceEvents(ctx context.Context, id int64, eventIDs []int64) error {
	f.links[id] = eventIDs
	return nil
}

func (f *fakeCompilationRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.NotFoundf("compilation with id=%d was not found", id)
	}
	delete(f.byID, id)
	delete(f.links, id)
	return nil
}

func TestCompilationService(t *testing.T) {
	ctx := context.Background()
	events := newFakeEventRepo(pendingEvent(1), pendingEvent(2), pendingEvent(3))
	tx := &fakeTx{}
	svc := NewCompilationService(newFakeCompilationRepo(events), events, tx, time.Second)

	c, err := svc.CreateCompilation(ctx, domain.NewCompilationInput{Title: "Summer", EventIDs: []int64{1, 2, 1}})
	require.NoError(t, err)
	assert.False(t, c.Pinned)
	assert.Equal(t, []int64{1, 2}, eventIDs(c.Events))

	_, err = svc.CreateCompilation(ctx, domain.NewCompilationInput{Title: "Bad", EventIDs: []int64{1, 42}})
	require.ErrorIs(t, err, domain.ErrNotFound)

	updated, err := svc.UpdateCompilation(ctx, c.ID, domain.UpdateCompilationInput{
		Pinned:   ptr(true),
		EventIDs: ptr([]int64{3}),
	})
	require.NoError(t, err)
	assert.Equal(t, "Summer", updated.Title)
	assert.True(t, updated.Pinned)
	assert.Equal(t, []int64{3}, eventIDs(updated.Events))

	// Absent events keep the current set.
	updated, err = svc.UpdateCompilation(ctx, c.ID, domain.UpdateCompilationInput{Title: ptr("Autumn")})
	require.NoError(t, err)
	assert.Equal(t, "Autumn", updated.Title)
	assert.Equal(t, []int64{3}, eventIDs(updated.Events))

	pinned, err := svc.ListCompilations(ctx, ptr(true), domain.PaginationParams{Size: 10})
	require.NoError(t, err)
	assert.Len(t, pinned, 1)
	unpinned, err := svc.ListCompilations(ctx, ptr(false), domain.PaginationParams{Size: 10})
	require.NoError(t, err)
	assert.Empty(t, unpinned)

	_, err = svc.UpdateCompilation(ctx, 99, domain.UpdateCompilationInput{Title: ptr("x")})
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.DeleteCompilation(ctx, c.ID))
	_, err = svc.GetCompilation(ctx, c.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
