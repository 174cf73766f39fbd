package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventboard/internal/domain"
)

type fakeHitRepo struct {
	saved []*domain.EndpointHit
	query domain.StatsQuery
	stats []domain.ViewStats
}

func (f *fakeHitRepo) Save(ctx context.Context, hit *domain.EndpointHit) error {
	hit.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, hit)
	return nil
}

func (f *fakeHitRepo) Stats(ctx context.Context, q domain.StatsQuery) ([]domain.ViewStats, error) {
	f.query = q
	return f.stats, nil
}

func TestStatsService_RecordHit(t *testing.T) {
	ctx := context.Background()
	repo := &fakeHitRepo{}
	svc := NewStatsService(repo, time.Second)

	hit := &domain.EndpointHit{App: "eventboard", URI: "/events/1", IP: "10.0.0.1", Timestamp: testNow}
	require.NoError(t, svc.RecordHit(ctx, hit))
	assert.Equal(t, int64(1), hit.ID)

	untimed := &domain.EndpointHit{App: "eventboard", URI: "/events", IP: "10.0.0.1"}
	require.NoError(t, svc.RecordHit(ctx, untimed))
	assert.False(t, untimed.Timestamp.IsZero())

	require.ErrorIs(t, svc.RecordHit(ctx, &domain.EndpointHit{App: "eventboard", URI: " "}), domain.ErrValidation)
	assert.Len(t, repo.saved, 2)
}

func TestStatsService_GetStats(t *testing.T) {
	ctx := context.Background()
	repo := &fakeHitRepo{stats: []domain.ViewStats{{App: "eventboard", URI: "/events/1", Hits: 3}}}
	svc := NewStatsService(repo, time.Second)

	q := domain.StatsQuery{Start: testNow, End: testNow.Add(time.Hour), Unique: true}
	stats, err := svc.GetStats(ctx, q)
	require.NoError(t, err)
	assert.Len(t, stats, 1)
	assert.Equal(t, q, repo.query)

	_, err = svc.GetStats(ctx, domain.StatsQuery{Start: testNow, End: testNow.Add(-time.Hour)})
	require.ErrorIs(t, err, domain.ErrValidation)
}
