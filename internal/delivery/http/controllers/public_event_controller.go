package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// EventShortListSuccessResponse is the success envelope for public event listings.
type EventShortListSuccessResponse struct {
	Data  []EventShortDTO   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// PublicEventController serves the anonymous event reads. Every call is
// reported to the statistics service without waiting for it.
type PublicEventController struct {
	Logger  *slog.Logger
	Service domain.PublicEventService
	// track runs the hit recording; tests replace it to run synchronously.
	track func(fn func())
}

func NewPublicEventController(logger *slog.Logger, svc domain.PublicEventService) *PublicEventController {
	return &PublicEventController{
		Logger:  logger,
		Service: svc,
		track:   func(fn func()) { go fn() },
	}
}

func (c *PublicEventController) trackView(r *http.Request) {
	ctx := context.WithoutCancel(r.Context())
	uri, ip := r.URL.Path, helpers.ClientIP(r)
	c.track(func() { c.Service.TrackView(ctx, uri, ip) })
}

// ListEvents godoc
// @Summary Search published events
// @Description Only PUBLISHED events are returned. Without rangeStart and rangeEnd only future events are listed. sort is EVENT_DATE or VIEWS.
// @Tags public-events
// @Produce json
// @Param text query string false "Substring of annotation or description, case-insensitive"
// @Param categories query []int false "Category IDs" collectionFormat(csv)
// @Param paid query bool false "Paid flag"
// @Param rangeStart query string false "Lower date bound"
// @Param rangeEnd query string false "Upper date bound"
// @Param onlyAvailable query bool false "Exclude events without free seats" default(false)
// @Param sort query string false "EVENT_DATE or VIEWS"
// @Param from query int false "Rows to skip" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} controllers.EventShortListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /events [get]
func (c *PublicEventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	q, err := parsePublicEventQuery(r)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.trackView(r)
	events, err := c.Service.SearchPublishedEvents(r.Context(), q)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventShortList(events))
}

// GetEvent godoc
// @Summary Get a published event
// @Tags public-events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{id} [get]
func (c *PublicEventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	event, err := c.Service.GetPublishedEvent(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.trackView(r)
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventFull(event))
}

func parsePublicEventQuery(r *http.Request) (domain.PublicEventQuery, error) {
	var q domain.PublicEventQuery
	var err error
	q.Text = r.URL.Query().Get("text")
	if q.Categories, err = helpers.QueryIDs(r, "categories"); err != nil {
		return q, err
	}
	if q.Paid, err = helpers.QueryBool(r, "paid"); err != nil {
		return q, err
	}
	if q.RangeStart, err = helpers.QueryDateTime(r, "rangeStart"); err != nil {
		return q, err
	}
	if q.RangeEnd, err = helpers.QueryDateTime(r, "rangeEnd"); err != nil {
		return q, err
	}
	onlyAvailable, err := helpers.QueryBool(r, "onlyAvailable")
	if err != nil {
		return q, err
	}
	q.OnlyAvailable = onlyAvailable != nil && *onlyAvailable
	if q.Sort, err = domain.ParseEventSort(r.URL.Query().Get("sort")); err != nil {
		return q, err
	}
	q.Page, err = helpers.ParsePagination(r)
	return q, err
}
