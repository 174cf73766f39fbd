package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventboard/internal/domain"
)

type compilationRepository struct {
	DB *sql.DB
}

// NewCompilationRepository returns a domain.CompilationRepository implemented with Postgres.
// Writes that touch the event set must run inside a transaction (see NewTxRunner).
func NewCompilationRepository(db *sql.DB) domain.CompilationRepository {
	return &compilationRepository{DB: db}
}

func (r *compilationRepository) Create(ctx context.Context, c *domain.Compilation, eventIDs []int64) error {
	err := conn(ctx, r.DB).QueryRowContext(ctx,
		`INSERT INTO compilations (title, pinned) VALUES ($1, $2) RETURNING id`, c.Title, c.Pinned).Scan(&c.ID)
	if err != nil {
		if isPQCode(err, pqUniqueViolation) {
			return domain.ErrDuplicateCompilation
		}
		return err
	}
	return r.insertEvents(ctx, c.ID, eventIDs)
}

func (r *compilationRepository) insertEvents(ctx context.Context, id int64, eventIDs []int64) error {
	if len(eventIDs) == 0 {
		return nil
	}
	_, err := conn(ctx, r.DB).ExecContext(ctx, `
		INSERT INTO compilation_events (compilation_id, event_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING`, id, pq.Array(eventIDs))
	if err != nil && isPQCode(err, pqForeignKeyViolation) {
		return domain.NotFoundf("one or more events of compilation were not found")
	}
	return err
}

func (r *compilationRepository) GetByID(ctx context.Context, id int64) (*domain.Compilation, error) {
	c := &domain.Compilation{}
	err := conn(ctx, r.DB).QueryRowContext(ctx,
		`SELECT id, title, pinned FROM compilations WHERE id = $1`, id).Scan(&c.ID, &c.Title, &c.Pinned)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("compilation with id=%d was not found", id)
		}
		return nil, err
	}
	if err := r.attachEvents(ctx, []*domain.Compilation{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *compilationRepository) List(ctx context.Context, pinned *bool, page domain.PaginationParams) ([]*domain.Compilation, error) {
	query := `SELECT id, title, pinned FROM compilations`
	var args []any
	if pinned != nil {
		args = append(args, *pinned)
		query += ` WHERE pinned = $1`
	}
	query += ` ORDER BY id DESC`
	query, args = appendPaging(query, args, page)

	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comps := make([]*domain.Compilation, 0)
	for rows.Next() {
		c := &domain.Compilation{}
		if err := rows.Scan(&c.ID, &c.Title, &c.Pinned); err != nil {
			return nil, err
		}
		comps = append(comps, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachEvents(ctx, comps); err != nil {
		return nil, err
	}
	return comps, nil
}

// attachEvents loads the events of every compilation in one query.
func (r *compilationRepository) attachEvents(ctx context.Context, comps []*domain.Compilation) error {
	if len(comps) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Compilation, len(comps))
	ids := make([]int64, 0, len(comps))
	for _, c := range comps {
		c.Events = []*domain.Event{}
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}

	query := `SELECT ce.compilation_id, ` + eventColumns + eventFrom + `
		JOIN compilation_events ce ON ce.event_id = e.id
		WHERE ce.compilation_id = ANY($1)
		ORDER BY e.id`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var compID int64
		e, err := scanEvent(prefixScanner{rows: rows, prefix: []any{&compID}})
		if err != nil {
			return err
		}
		if c, ok := byID[compID]; ok {
			c.Events = append(c.Events, e)
		}
	}
	return rows.Err()
}

// prefixScanner scans leading columns into prefix before the destinations scanEvent passes.
type prefixScanner struct {
	rows   *sql.Rows
	prefix []any
}

func (p prefixScanner) Scan(dest ...any) error {
	return p.rows.Scan(append(p.prefix, dest...)...)
}

func (r *compilationRepository) Update(ctx context.Context, c *domain.Compilation) error {
	result, err := conn(ctx, r.DB).ExecContext(ctx,
		`UPDATE compilations SET title = $1, pinned = $2 WHERE id = $3`, c.Title, c.Pinned, c.ID)
	if err != nil {
		if isPQCode(err, pqUniqueViolation) {
			return domain.ErrDuplicateCompilation
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.NotFoundf("compilation with id=%d was not found", c.ID)
	}
	return nil
}

func (r *compilationRepository) ReplaceEvents(ctx context.Context, id int64, eventIDs []int64) error {
	if _, err := conn(ctx, r.DB).ExecContext(ctx,
		`DELETE FROM compilation_events WHERE compilation_id = $1`, id); err != nil {
		return err
	}
	return r.insertEvents(ctx, id, eventIDs)
}

func (r *compilationRepository) Delete(ctx context.Context, id int64) error {
	result, err := conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM compilations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.NotFoundf("compilation with id=%d was not found", id)
	}
	return nil
}
