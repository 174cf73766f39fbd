package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"eventboard/internal/domain"
)

type hitRepository struct {
	DB *sql.DB
}

// NewHitRepository returns a domain.HitRepository implemented with Postgres.
func NewHitRepository(db *sql.DB) domain.HitRepository {
	return &hitRepository{DB: db}
}

func (r *hitRepository) Save(ctx context.Context, hit *domain.EndpointHit) error {
	query := `
		INSERT INTO endpoint_hits (app, uri, ip, "timestamp")
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return conn(ctx, r.DB).QueryRowContext(ctx, query, hit.App, hit.URI, hit.IP, hit.Timestamp).Scan(&hit.ID)
}

func (r *hitRepository) Stats(ctx context.Context, q domain.StatsQuery) ([]domain.ViewStats, error) {
	count := "COUNT(ip)"
	if q.Unique {
		count = "COUNT(DISTINCT ip)"
	}
	query := `
		SELECT app, uri, ` + count + ` AS hits
		FROM endpoint_hits
		WHERE "timestamp" BETWEEN $1 AND $2`
	args := []any{q.Start, q.End}
	if len(q.URIs) > 0 {
		args = append(args, pq.Array(q.URIs))
		query += ` AND uri = ANY($3)`
	}
	query += `
		GROUP BY app, uri
		ORDER BY hits DESC`

	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]domain.ViewStats, 0)
	for rows.Next() {
		var s domain.ViewStats
		if err := rows.Scan(&s.App, &s.URI, &s.Hits); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
