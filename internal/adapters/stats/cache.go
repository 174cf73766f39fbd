package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"eventboard/internal/domain"
)

const keyPrefix = "views:"

type cachedViewCounter struct {
	next   domain.ViewCounter
	rdb    redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedViewCounter caches hit counts in redis for ttl, one hash per URI
// with a field per (unique, start, end) window. Queries without URIs and any
// redis failure go straight to next.
func NewCachedViewCounter(next domain.ViewCounter, rdb redis.UniversalClient, ttl time.Duration, logger *slog.Logger) domain.ViewCounter {
	return &cachedViewCounter{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func cacheKey(uri string) string {
	return keyPrefix + uri
}

func cacheField(q domain.StatsQuery) string {
	return fmt.Sprintf("%t:%d:%d", q.Unique, q.Start.Unix(), q.End.Unix())
}

// Hit records the hit and drops every cached window of its URI.
func (c *cachedViewCounter) Hit(ctx context.Context, hit domain.EndpointHit) error {
	if err := c.next.Hit(ctx, hit); err != nil {
		return err
	}
	if err := c.rdb.Del(ctx, cacheKey(hit.URI)).Err(); err != nil {
		c.logger.WarnContext(ctx, "view cache invalidation failed", "uri", hit.URI, "err", err)
	}
	return nil
}

func (c *cachedViewCounter) Stats(ctx context.Context, q domain.StatsQuery) ([]domain.ViewStats, error) {
	if len(q.URIs) == 0 {
		return c.next.Stats(ctx, q)
	}

	field := cacheField(q)
	pipe := c.rdb.Pipeline()
	cmds := make([]*redis.StringCmd, len(q.URIs))
	for i, uri := range q.URIs {
		cmds[i] = pipe.HGet(ctx, cacheKey(uri), field)
	}
	// A miss on any field surfaces as redis.Nil from Exec.
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "view cache read failed", "err", err)
		return c.next.Stats(ctx, q)
	}

	out := make([]domain.ViewStats, 0, len(q.URIs))
	var missing []string
	for i, cmd := range cmds {
		hits, err := cmd.Int64()
		if err != nil {
			missing = append(missing, q.URIs[i])
			continue
		}
		if hits > 0 {
			out = append(out, domain.ViewStats{URI: q.URIs[i], Hits: hits})
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	miss := q
	miss.URIs = missing
	fresh, err := c.next.Stats(ctx, miss)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(missing))
	for _, uri := range missing {
		counts[uri] = 0
	}
	for _, s := range fresh {
		counts[s.URI] += s.Hits
	}
	pipe = c.rdb.Pipeline()
	for uri, hits := range counts {
		pipe.HSet(ctx, cacheKey(uri), field, hits)
		pipe.Expire(ctx, cacheKey(uri), c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.WarnContext(ctx, "view cache write failed", "err", err)
	}
	return append(out, fresh...), nil
}

// NewRedisClient connects to redis and verifies the connection with a ping.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
