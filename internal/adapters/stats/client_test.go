package stats

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventboard/internal/domain"
)

func TestHTTPClient_Hit(t *testing.T) {
	var got HitRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/hit", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	ts := time.Date(2027, 1, 2, 3, 4, 5, 0, time.UTC)
	err := NewHTTPClient(srv.URL+"/", srv.Client()).Hit(context.Background(), domain.EndpointHit{
		App: "eventboard", URI: "/events/1", IP: "10.0.0.1", Timestamp: ts,
	})
	require.NoError(t, err)
	assert.Equal(t, HitRequest{App: "eventboard", URI: "/events/1", IP: "10.0.0.1", Timestamp: "2027-01-02 03:04:05"}, got)
}

func TestHTTPClient_Hit_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewHTTPClient(srv.URL, srv.Client()).Hit(context.Background(), domain.EndpointHit{})
	require.Error(t, err)
}

func TestHTTPClient_Stats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stats", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2017-01-01 00:00:00", q.Get("start"))
		assert.Equal(t, "2037-01-01 00:00:00", q.Get("end"))
		assert.Equal(t, []string{"/events/1", "/events/2"}, q["uris"])
		assert.Equal(t, "true", q.Get("unique"))
		_ = json.NewEncoder(w).Encode([]domain.ViewStats{{App: "eventboard", URI: "/events/1", Hits: 3}})
	}))
	defer srv.Close()

	stats, err := NewHTTPClient(srv.URL, srv.Client()).Stats(context.Background(), domain.StatsQuery{
		Start:  time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2037, 1, 1, 0, 0, 0, 0, time.UTC),
		URIs:   []string{"/events/1", "/events/2"},
		Unique: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.ViewStats{{App: "eventboard", URI: "/events/1", Hits: 3}}, stats)
}

func TestHTTPClient_Stats_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPClient(url, nil).Stats(context.Background(), domain.StatsQuery{})
	require.Error(t, err)
}
