package domain

import (
	"context"
	"time"
)

// RequestStatus is the state of a participation request.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusConfirmed RequestStatus = "CONFIRMED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCanceled  RequestStatus = "CANCELED"
)

// ParseDecision converts s into one of the two statuses an initiator may
// request for a batch: CONFIRMED or REJECTED.
func ParseDecision(s string) (RequestStatus, error) {
	switch st := RequestStatus(s); st {
	case RequestStatusConfirmed, RequestStatusRejected:
		return st, nil
	default:
		return "", Validationf("status must be CONFIRMED or REJECTED, got %q", s)
	}
}

// ParticipationRequest is one user's ask to join one event.
type ParticipationRequest struct {
	ID          int64
	EventID     int64
	RequesterID int64
	Status      RequestStatus
	Created     time.Time
}

// StatusUpdateResult partitions a moderated batch into its two outcomes.
type StatusUpdateResult struct {
	Confirmed []*ParticipationRequest
	Rejected  []*ParticipationRequest
}

// RequestRepository defines the interface for participation request storage.
type RequestRepository interface {
	Create(ctx context.Context, r *ParticipationRequest) error
	GetByID(ctx context.Context, id int64) (*ParticipationRequest, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*ParticipationRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]*ParticipationRequest, error)
	// ListByEventAndIDsForUpdate returns the requests of eventID among ids and
	// locks their rows until the surrounding transaction ends.
	ListByEventAndIDsForUpdate(ctx context.Context, eventID int64, ids []int64) ([]*ParticipationRequest, error)
	UpdateStatus(ctx context.Context, status RequestStatus, ids []int64) error
}

// TxRunner runs fn inside one database transaction, committing when fn
// returns nil and rolling back otherwise.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RequestService is the participation request API.
type RequestService interface {
	CreateRequest(ctx context.Context, userID, eventID int64) (*ParticipationRequest, error)
	CancelRequest(ctx context.Context, userID, requestID int64) (*ParticipationRequest, error)
	ListUserRequests(ctx context.Context, userID int64) ([]*ParticipationRequest, error)
	ListEventRequests(ctx context.Context, userID, eventID int64) ([]*ParticipationRequest, error)
	UpdateRequestsStatus(ctx context.Context, userID, eventID int64, ids []int64, status RequestStatus) (*StatusUpdateResult, error)
}
