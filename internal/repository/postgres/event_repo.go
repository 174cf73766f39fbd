package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventboard/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `e.id, e.annotation, e.description, e.title, e.event_date, e.location_lat, e.location_lon,
		e.paid, e.participant_limit, e.request_moderation, e.confirmed_requests, e.state, e.created_on, e.published_on,
		c.id, c.name, u.id, u.name, u.email`

const eventFrom = `
		FROM events e
		JOIN categories c ON c.id = e.category_id
		JOIN users u ON u.id = e.initiator_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(s rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var state string
	var publishedNull sql.NullTime
	err := s.Scan(
		&e.ID, &e.Annotation, &e.Description, &e.Title, &e.EventDate, &e.Location.Lat, &e.Location.Lon,
		&e.Paid, &e.ParticipantLimit, &e.RequestModeration, &e.ConfirmedRequests, &state, &e.CreatedOn, &publishedNull,
		&e.Category.ID, &e.Category.Name, &e.Initiator.ID, &e.Initiator.Name, &e.Initiator.Email,
	)
	if err != nil {
		return nil, err
	}
	e.State = domain.EventState(state)
	if publishedNull.Valid {
		e.PublishedOn = &publishedNull.Time
	}
	return e, nil
}

func scanEvents(rows *sql.Rows) ([]*domain.Event, error) {
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (annotation, description, title, category_id, initiator_id, event_date,
			location_lat, location_lon, paid, participant_limit, request_moderation, confirmed_requests,
			state, created_on, published_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query,
		e.Annotation, e.Description, e.Title, e.Category.ID, e.Initiator.ID, e.EventDate,
		e.Location.Lat, e.Location.Lon, e.Paid, e.ParticipantLimit, e.RequestModeration, e.ConfirmedRequests,
		string(e.State), e.CreatedOn, e.PublishedOn,
	).Scan(&e.ID)
	if err != nil {
		if isPQCode(err, pqForeignKeyViolation) {
			return domain.NotFoundf("category or initiator of event was not found")
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	return r.getByID(ctx, id, "")
}

func (r *eventRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Event, error) {
	return r.getByID(ctx, id, " FOR UPDATE OF e")
}

func (r *eventRepository) getByID(ctx context.Context, id int64, lock string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + eventFrom + `
		WHERE e.id = $1` + lock
	e, err := scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("event with id=%d was not found", id)
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events SET annotation = $1, description = $2, title = $3, category_id = $4, event_date = $5,
			location_lat = $6, location_lon = $7, paid = $8, participant_limit = $9, request_moderation = $10,
			state = $11, published_on = $12
		WHERE id = $13
	`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query,
		e.Annotation, e.Description, e.Title, e.Category.ID, e.EventDate,
		e.Location.Lat, e.Location.Lon, e.Paid, e.ParticipantLimit, e.RequestModeration,
		string(e.State), e.PublishedOn, e.ID,
	)
	if err != nil {
		if isPQCode(err, pqForeignKeyViolation) {
			return domain.NotFoundf("category with id=%d was not found", e.Category.ID)
		}
		if isPQCode(err, pqCheckViolation) {
			return fmt.Errorf("%w: participant limit %d is below the confirmed requests of event id=%d",
				domain.ErrConflict, e.ParticipantLimit, e.ID)
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.NotFoundf("event with id=%d was not found", e.ID)
	}
	return nil
}

func (r *eventRepository) UpdateConfirmedRequests(ctx context.Context, id int64, confirmed int) error {
	result, err := conn(ctx, r.DB).ExecContext(ctx,
		`UPDATE events SET confirmed_requests = $1 WHERE id = $2`, confirmed, id)
	if err != nil {
		if isPQCode(err, pqCheckViolation) {
			return domain.ErrParticipantLimit
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.NotFoundf("event with id=%d was not found", id)
	}
	return nil
}

func (r *eventRepository) Find(ctx context.Context, filter *domain.EventFilter) ([]*domain.Event, error) {
	where, args, err := buildEventWhere(filter)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + eventColumns + eventFrom + where + eventOrderBy(filter.Sort)
	query, args = appendPaging(query, args, filter.Page)

	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func (r *eventRepository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Event, error) {
	if len(ids) == 0 {
		return []*domain.Event{}, nil
	}
	query := `SELECT ` + eventColumns + eventFrom + `
		WHERE e.id = ANY($1)
		ORDER BY e.id`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func (r *eventRepository) ExistsByCategory(ctx context.Context, categoryID int64) (bool, error) {
	var exists bool
	err := conn(ctx, r.DB).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE category_id = $1)`, categoryID).Scan(&exists)
	return exists, err
}
