package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventboard/internal/domain"
)

type requestRepository struct {
	DB *sql.DB
}

func NewRequestRepository(db *sql.DB) domain.RequestRepository {
	return &requestRepository{
		DB: db,
	}
}

func scanRequests(rows *sql.Rows) ([]*domain.ParticipationRequest, error) {
	defer rows.Close()
	reqs := make([]*domain.ParticipationRequest, 0)
	for rows.Next() {
		req := &domain.ParticipationRequest{}
		var status string
		if err := rows.Scan(&req.ID, &req.EventID, &req.RequesterID, &status, &req.Created); err != nil {
			return nil, err
		}
		req.Status = domain.RequestStatus(status)
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *requestRepository) Create(ctx context.Context, req *domain.ParticipationRequest) error {
	query := `
		INSERT INTO requests (event_id, requester_id, status, created)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, req.EventID, req.RequesterID, string(req.Status), req.Created).
		Scan(&req.ID)
	if err != nil {
		if isPQCode(err, pqUniqueViolation) {
			return domain.ErrDuplicateRequest
		}
		if isPQCode(err, pqForeignKeyViolation) {
			return domain.NotFoundf("event or requester was not found")
		}
		return err
	}
	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (*domain.ParticipationRequest, error) {
	query := `
		SELECT id, event_id, requester_id, status, created
		FROM requests
		WHERE id = $1
	`
	req := &domain.ParticipationRequest{}
	var status string
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, id).
		Scan(&req.ID, &req.EventID, &req.RequesterID, &status, &req.Created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("request with id=%d was not found", id)
		}
		return nil, err
	}
	req.Status = domain.RequestStatus(status)
	return req, nil
}

func (r *requestRepository) ListByEvent(ctx context.Context, eventID int64) ([]*domain.ParticipationRequest, error) {
	query := `
		SELECT id, event_id, requester_id, status, created
		FROM requests
		WHERE event_id = $1
		ORDER BY id
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	return scanRequests(rows)
}

func (r *requestRepository) ListByRequester(ctx context.Context, requesterID int64) ([]*domain.ParticipationRequest, error) {
	query := `
		SELECT id, event_id, requester_id, status, created
		FROM requests
		WHERE requester_id = $1
		ORDER BY id
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, requesterID)
	if err != nil {
		return nil, err
	}
	return scanRequests(rows)
}

func (r *requestRepository) ListByEventAndIDsForUpdate(ctx context.Context, eventID int64, ids []int64) ([]*domain.ParticipationRequest, error) {
	if len(ids) == 0 {
		return []*domain.ParticipationRequest{}, nil
	}
	query := `
		SELECT id, event_id, requester_id, status, created
		FROM requests
		WHERE event_id = $1 AND id = ANY($2)
		ORDER BY id
		FOR UPDATE
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, eventID, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	return scanRequests(rows)
}

func (r *requestRepository) UpdateStatus(ctx context.Context, status domain.RequestStatus, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := conn(ctx, r.DB).ExecContext(ctx,
		`UPDATE requests SET status = $1 WHERE id = ANY($2)`, string(status), pq.Array(ids))
	return err
}
