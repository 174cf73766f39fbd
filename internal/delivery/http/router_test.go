package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventboard/internal/delivery/http/controllers"
	"eventboard/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubCategories struct{ domain.CategoryService }

func (stubCategories) ListCategories(context.Context, domain.PaginationParams) ([]*domain.Category, error) {
	return []*domain.Category{{ID: 1, Name: "Concerts"}}, nil
}

type stubStats struct{ domain.StatsService }

func (stubStats) GetStats(context.Context, domain.StatsQuery) ([]domain.ViewStats, error) {
	return []domain.ViewStats{}, nil
}

func newTestRouter(guard func(http.Handler) http.Handler) *http.ServeMux {
	return NewRouter(Controllers{
		Events:       controllers.NewEventController(testLogger, nil),
		PublicEvents: controllers.NewPublicEventController(testLogger, nil),
		Requests:     controllers.NewRequestController(testLogger, nil),
		Users:        controllers.NewUserController(testLogger, nil),
		Categories:   controllers.NewCategoryController(testLogger, stubCategories{}),
		Compilations: controllers.NewCompilationController(testLogger, nil),
	}, guard)
}

func TestNewRouter_AdminGuard(t *testing.T) {
	denied := 0
	guard := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			denied++
			w.WriteHeader(http.StatusUnauthorized)
		})
	}
	mux := newTestRouter(guard)

	adminRoutes := []struct{ method, path string }{
		{http.MethodPost, "/admin/users"},
		{http.MethodGet, "/admin/users"},
		{http.MethodDelete, "/admin/users/1"},
		{http.MethodPost, "/admin/categories"},
		{http.MethodPatch, "/admin/categories/1"},
		{http.MethodDelete, "/admin/categories/1"},
		{http.MethodGet, "/admin/events"},
		{http.MethodPatch, "/admin/events/1"},
		{http.MethodPost, "/admin/compilations"},
		{http.MethodPatch, "/admin/compilations/1"},
		{http.MethodDelete, "/admin/compilations/1"},
	}
	for _, rt := range adminRoutes {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(rt.method, rt.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", rt.method, rt.path)
	}
	assert.Equal(t, len(adminRoutes), denied)
}

func TestNewRouter_PublicRoutes(t *testing.T) {
	mux := newTestRouter(nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/categories", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/categories", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestNewStatsRouter(t *testing.T) {
	mux := NewStatsRouter(controllers.NewStatsController(testLogger, stubStats{}))

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/stats?start=2020-01-01+00:00:00&end=2030-01-01+00:00:00", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/hit", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
