package controllers

import (
	"log/slog"
	"net/http"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// EventSuccessResponse is the success envelope for single-event responses.
type EventSuccessResponse struct {
	Data  EventFullDTO      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success envelope for event listings.
type EventListSuccessResponse struct {
	Data  []EventFullDTO    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description The user submits a new event. It starts PENDING and must be at least two hours away. requestModeration defaults to true.
// @Tags private-events
// @Accept json
// @Produce json
// @Param userId path int true "Initiator ID"
// @Param event body NewEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/{userId}/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, err := helpers.PathID(r, "userId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	var req NewEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	in, err := req.toInput()
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), userID, in)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toEventFull(event))
}

// ListUserEvents godoc
// @Summary List the user's events
// @Tags private-events
// @Produce json
// @Param userId path int true "Initiator ID"
// @Param from query int false "Rows to skip" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /users/{userId}/events [get]
func (c *EventController) ListUserEvents(w http.ResponseWriter, r *http.Request) {
	userID, err := helpers.PathID(r, "userId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	page, err := helpers.ParsePagination(r)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	events, err := c.Service.ListUserEvents(r.Context(), userID, page)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventShortList(events))
}

// GetUserEvent godoc
// @Summary Get one of the user's events
// @Tags private-events
// @Produce json
// @Param userId path int true "Initiator ID"
// @Param eventId path int true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userId}/events/{eventId} [get]
func (c *EventController) GetUserEvent(w http.ResponseWriter, r *http.Request) {
	userID, eventID, ok := c.userAndEvent(w, r)
	if !ok {
		return
	}
	event, err := c.Service.GetUserEvent(r.Context(), userID, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventFull(event))
}

// UpdateUserEvent godoc
// @Summary Edit one of the user's events
// @Description Partial update. stateAction is required and must be SEND_TO_REVIEW or CANCEL_REVIEW. A new eventDate must be at least two hours away.
// @Tags private-events
// @Accept json
// @Produce json
// @Param userId path int true "Initiator ID"
// @Param eventId path int true "Event ID"
// @Param event body UpdateEventRequest true "Changed fields"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /users/{userId}/events/{eventId} [patch]
func (c *EventController) UpdateUserEvent(w http.ResponseWriter, r *http.Request) {
	userID, eventID, ok := c.userAndEvent(w, r)
	if !ok {
		return
	}
	in, ok := c.decodeUpdate(w, r)
	if !ok {
		return
	}
	event, err := c.Service.UpdateEventByOwner(r.Context(), userID, eventID, in)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventFull(event))
}

// SearchEvents godoc
// @Summary Search events (admin)
// @Description Every criterion is optional. Dates use the yyyy-MM-dd HH:mm:ss layout.
// @Tags admin-events
// @Produce json
// @Security BearerAuth
// @Param users query []int false "Initiator IDs" collectionFormat(csv)
// @Param states query []string false "States" collectionFormat(csv)
// @Param categories query []int false "Category IDs" collectionFormat(csv)
// @Param rangeStart query string false "Lower date bound"
// @Param rangeEnd query string false "Upper date bound"
// @Param from query int false "Rows to skip" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /admin/events [get]
func (c *EventController) SearchEvents(w http.ResponseWriter, r *http.Request) {
	q, err := parseAdminEventQuery(r)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	events, err := c.Service.SearchEvents(r.Context(), q)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventFullList(events))
}

// UpdateEventByAdmin godoc
// @Summary Moderate or edit an event (admin)
// @Description Partial update. stateAction, when present, must be PUBLISH_EVENT or REJECT_EVENT. A new eventDate must be at least one hour away.
// @Tags admin-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Param event body UpdateEventRequest true "Changed fields"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /admin/events/{eventId} [patch]
func (c *EventController) UpdateEventByAdmin(w http.ResponseWriter, r *http.Request) {
	eventID, err := helpers.PathID(r, "eventId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	in, ok := c.decodeUpdate(w, r)
	if !ok {
		return
	}
	event, err := c.Service.UpdateEventByAdmin(r.Context(), eventID, in)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventFull(event))
}

func (c *EventController) userAndEvent(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	userID, err := helpers.PathID(r, "userId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return 0, 0, false
	}
	eventID, err := helpers.PathID(r, "eventId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return 0, 0, false
	}
	return userID, eventID, true
}

func (c *EventController) decodeUpdate(w http.ResponseWriter, r *http.Request) (domain.UpdateEventInput, bool) {
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return domain.UpdateEventInput{}, false
	}
	in, err := req.toInput()
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return domain.UpdateEventInput{}, false
	}
	return in, true
}

func parseAdminEventQuery(r *http.Request) (domain.AdminEventQuery, error) {
	var q domain.AdminEventQuery
	var err error
	if q.Users, err = helpers.QueryIDs(r, "users"); err != nil {
		return q, err
	}
	for _, s := range helpers.QueryValues(r, "states") {
		st, err := domain.ParseEventState(s)
		if err != nil {
			return q, err
		}
		q.States = append(q.States, st)
	}
	if q.Categories, err = helpers.QueryIDs(r, "categories"); err != nil {
		return q, err
	}
	if q.RangeStart, err = helpers.QueryDateTime(r, "rangeStart"); err != nil {
		return q, err
	}
	if q.RangeEnd, err = helpers.QueryDateTime(r, "rangeEnd"); err != nil {
		return q, err
	}
	q.Page, err = helpers.ParsePagination(r)
	return q, err
}
