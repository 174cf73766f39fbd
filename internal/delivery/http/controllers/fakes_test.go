package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// serve routes one request through a ServeMux so path values are populated.
func serve(t *testing.T, pattern string, h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

// decodeData unmarshals the data member of the envelope into dest.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var env struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	require.Nil(t, env.Error)
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var env helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	require.NotNil(t, env.Error)
	return env.Error.Code
}

type fakeEventService struct {
	event       *domain.Event
	events      []*domain.Event
	err         error
	lastUserID  int64
	lastEventID int64
	lastNew     domain.NewEventInput
	lastUpdate  domain.UpdateEventInput
	lastQuery   domain.AdminEventQuery
	lastPage    domain.PaginationParams
}

func (f *fakeEventService) CreateEvent(_ context.Context, userID int64, in domain.NewEventInput) (*domain.Event, error) {
	f.lastUserID, f.lastNew = userID, in
	return f.event, f.err
}

func (f *fakeEventService) ListUserEvents(_ context.Context, userID int64, page domain.PaginationParams) ([]*domain.Event, error) {
	f.lastUserID, f.lastPage = userID, page
	return f.events, f.err
}

func (f *fakeEventService) GetUserEvent(_ context.Context, userID, eventID int64) (*domain.Event, error) {
	f.lastUserID, f.lastEventID = userID, eventID
	return f.event, f.err
}

func (f *fakeEventService) UpdateEventByOwner(_ context.Context, userID, eventID int64, in domain.UpdateEventInput) (*domain.Event, error) {
	f.lastUserID, f.lastEventID, f.lastUpdate = userID, eventID, in
	return f.event, f.err
}

func (f *fakeEventService) UpdateEventByAdmin(_ context.Context, eventID int64, in domain.UpdateEventInput) (*domain.Event, error) {
	f.lastEventID, f.lastUpdate = eventID, in
	return f.event, f.err
}

func (f *fakeEventService) SearchEvents(_ context.Context, q domain.AdminEventQuery) ([]*domain.Event, error) {
	f.lastQuery = q
	return f.events, f.err
}

type fakePublicEventService struct {
	event     *domain.Event
	events    []*domain.Event
	err       error
	lastQuery domain.PublicEventQuery
	lastID    int64

	mu     sync.Mutex
	tracks []string
}

func (f *fakePublicEventService) SearchPublishedEvents(_ context.Context, q domain.PublicEventQuery) ([]*domain.Event, error) {
	f.lastQuery = q
	return f.events, f.err
}

func (f *fakePublicEventService) GetPublishedEvent(_ context.Context, id int64) (*domain.Event, error) {
	f.lastID = id
	return f.event, f.err
}

func (f *fakePublicEventService) TrackView(_ context.Context, uri, ip string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tracks = append(f.tracks, uri+"@"+ip)
}

type fakeRequestService struct {
	req        *domain.ParticipationRequest
	reqs       []*domain.ParticipationRequest
	result     *domain.StatusUpdateResult
	err        error
	lastUserID int64
	lastID     int64
	lastIDs    []int64
	lastStatus domain.RequestStatus
}

func (f *fakeRequestService) CreateRequest(_ context.Context, userID, eventID int64) (*domain.ParticipationRequest, error) {
	f.lastUserID, f.lastID = userID, eventID
	return f.req, f.err
}

func (f *fakeRequestService) CancelRequest(_ context.Context, userID, requestID int64) (*domain.ParticipationRequest, error) {
	f.lastUserID, f.lastID = userID, requestID
	return f.req, f.err
}

func (f *fakeRequestService) ListUserRequests(_ context.Context, userID int64) ([]*domain.ParticipationRequest, error) {
	f.lastUserID = userID
	return f.reqs, f.err
}

func (f *fakeRequestService) ListEventRequests(_ context.Context, userID, eventID int64) ([]*domain.ParticipationRequest, error) {
	f.lastUserID, f.lastID = userID, eventID
	return f.reqs, f.err
}

func (f *fakeRequestService) UpdateRequestsStatus(_ context.Context, userID, eventID int64, ids []int64, status domain.RequestStatus) (*domain.StatusUpdateResult, error) {
	f.lastUserID, f.lastID, f.lastIDs, f.lastStatus = userID, eventID, ids, status
	return f.result, f.err
}

type fakeUserService struct {
	users    []*domain.User
	err      error
	lastIDs  []int64
	lastPage domain.PaginationParams
	deleted  int64
}

func (f *fakeUserService) CreateUser(_ context.Context, name, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.User{ID: 1, Name: name, Email: email}, nil
}

func (f *fakeUserService) ListUsers(_ context.Context, ids []int64, page domain.PaginationParams) ([]*domain.User, error) {
	f.lastIDs, f.lastPage = ids, page
	return f.users, f.err
}

func (f *fakeUserService) DeleteUser(_ context.Context, id int64) error {
	f.deleted = id
	return f.err
}

type fakeCategoryService struct {
	cats []*domain.Category
	err  error
	last int64
}

func (f *fakeCategoryService) CreateCategory(_ context.Context, name string) (*domain.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Category{ID: 1, Name: name}, nil
}

func (f *fakeCategoryService) RenameCategory(_ context.Context, id int64, name string) (*domain.Category, error) {
	f.last = id
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Category{ID: id, Name: name}, nil
}

func (f *fakeCategoryService) DeleteCategory(_ context.Context, id int64) error {
	f.last = id
	return f.err
}

func (f *fakeCategoryService) GetCategory(_ context.Context, id int64) (*domain.Category, error) {
	f.last = id
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Category{ID: id, Name: "Concerts"}, nil
}

func (f *fakeCategoryService) ListCategories(_ context.Context, _ domain.PaginationParams) ([]*domain.Category, error) {
	return f.cats, f.err
}

type fakeCompilationService struct {
	comp       *domain.Compilation
	comps      []*domain.Compilation
	err        error
	lastNew    domain.NewCompilationInput
	lastUpdate domain.UpdateCompilationInput
	lastPinned *bool
	last       int64
}

func (f *fakeCompilationService) CreateCompilation(_ context.Context, in domain.NewCompilationInput) (*domain.Compilation, error) {
	f.lastNew = in
	return f.comp, f.err
}

func (f *fakeCompilationService) UpdateCompilation(_ context.Context, id int64, in domain.UpdateCompilationInput) (*domain.Compilation, error) {
	f.last, f.lastUpdate = id, in
	return f.comp, f.err
}

func (f *fakeCompilationService) DeleteCompilation(_ context.Context, id int64) error {
	f.last = id
	return f.err
}

func (f *fakeCompilationService) GetCompilation(_ context.Context, id int64) (*domain.Compilation, error) {
	f.last = id
	return f.comp, f.err
}

func (f *fakeCompilationService) ListCompilations(_ context.Context, pinned *bool, _ domain.PaginationParams) ([]*domain.Compilation, error) {
	f.lastPinned = pinned
	return f.comps, f.err
}

type fakeStatsService struct {
	stats     []domain.ViewStats
	err       error
	lastHit   *domain.EndpointHit
	lastQuery domain.StatsQuery
}

func (f *fakeStatsService) RecordHit(_ context.Context, hit *domain.EndpointHit) error {
	f.lastHit = hit
	return f.err
}

func (f *fakeStatsService) GetStats(_ context.Context, q domain.StatsQuery) ([]domain.ViewStats, error) {
	f.lastQuery = q
	return f.stats, f.err
}
