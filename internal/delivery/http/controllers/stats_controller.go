package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// HitRequest is the body of POST /hit on the statistics service.
type HitRequest struct {
	App       string `json:"app"`
	URI       string `json:"uri"`
	IP        string `json:"ip"`
	Timestamp string `json:"timestamp"`
}

// Validate implements Validator.
func (r HitRequest) Validate() []string {
	var errs []string
	errs = helpers.CheckBlank(errs, "app", r.App)
	errs = helpers.CheckBlank(errs, "uri", r.URI)
	errs = helpers.CheckBlank(errs, "ip", r.IP)
	return errs
}

// StatsController serves the statistics service. GET /stats answers with a
// bare JSON array, the format its clients decode.
type StatsController struct {
	Logger  *slog.Logger
	Service domain.StatsService
}

func NewStatsController(logger *slog.Logger, svc domain.StatsService) *StatsController {
	return &StatsController{Logger: logger, Service: svc}
}

// Hit godoc
// @Summary Record a hit
// @Tags stats
// @Accept json
// @Param hit body HitRequest true "App, URI, client IP and yyyy-MM-dd HH:mm:ss timestamp"
// @Success 201
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /hit [post]
func (c *StatsController) Hit(w http.ResponseWriter, r *http.Request) {
	var req HitRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	hit := &domain.EndpointHit{App: req.App, URI: req.URI, IP: req.IP}
	if req.Timestamp != "" {
		ts, err := domain.ParseDateTime(req.Timestamp)
		if err != nil {
			helpers.WriteServiceError(w, r, c.Logger, err)
			return
		}
		hit.Timestamp = ts
	}
	if err := c.Service.RecordHit(r.Context(), hit); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// Stats godoc
// @Summary Hit counts per URI
// @Description Sorted by hits descending. unique counts distinct IPs. Without uris every URI is counted.
// @Tags stats
// @Produce json
// @Param start query string true "Lower bound, yyyy-MM-dd HH:mm:ss"
// @Param end query string true "Upper bound, yyyy-MM-dd HH:mm:ss"
// @Param uris query []string false "URIs" collectionFormat(multi)
// @Param unique query bool false "Count distinct IPs" default(false)
// @Success 200 {array} domain.ViewStats
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /stats [get]
func (c *StatsController) Stats(w http.ResponseWriter, r *http.Request) {
	q, err := parseStatsQuery(r)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	stats, err := c.Service.GetStats(r.Context(), q)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(stats)
}

func parseStatsQuery(r *http.Request) (domain.StatsQuery, error) {
	var q domain.StatsQuery
	start, err := requiredDateTime(r, "start")
	if err != nil {
		return q, err
	}
	end, err := requiredDateTime(r, "end")
	if err != nil {
		return q, err
	}
	unique, err := helpers.QueryBool(r, "unique")
	if err != nil {
		return q, err
	}
	q.Start, q.End = start, end
	q.URIs = helpers.QueryValues(r, "uris")
	q.Unique = unique != nil && *unique
	return q, nil
}

func requiredDateTime(r *http.Request, name string) (time.Time, error) {
	t, err := helpers.QueryDateTime(r, name)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, domain.Validationf("%s is required", name)
	}
	return *t, nil
}
