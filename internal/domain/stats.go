package domain

import (
	"context"
	"fmt"
	"time"
)

// EndpointHit is one recorded request to a tracked URI.
type EndpointHit struct {
	ID        int64
	App       string
	URI       string
	IP        string
	Timestamp time.Time
}

// ViewStats is the hit count of one URI of one app.
type ViewStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}

// StatsQuery selects the hits to aggregate. Empty URIs means every URI.
type StatsQuery struct {
	Start  time.Time
	End    time.Time
	URIs   []string
	Unique bool
}

// ViewCounter is the client side of the statistics service.
type ViewCounter interface {
	Hit(ctx context.Context, hit EndpointHit) error
	Stats(ctx context.Context, q StatsQuery) ([]ViewStats, error)
}

// HitRepository stores hits for the statistics service.
type HitRepository interface {
	Save(ctx context.Context, hit *EndpointHit) error
	Stats(ctx context.Context, q StatsQuery) ([]ViewStats, error)
}

// StatsService is the statistics service API.
type StatsService interface {
	RecordHit(ctx context.Context, hit *EndpointHit) error
	GetStats(ctx context.Context, q StatsQuery) ([]ViewStats, error)
}

// EventURI is the public path of an event, the key views are counted under.
func EventURI(id int64) string {
	return fmt.Sprintf("/events/%d", id)
}
