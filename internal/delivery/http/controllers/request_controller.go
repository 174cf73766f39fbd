package controllers

import (
	"log/slog"
	"net/http"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

type RequestController struct {
	Logger  *slog.Logger
	Service domain.RequestService
}

func NewRequestController(logger *slog.Logger, svc domain.RequestService) *RequestController {
	return &RequestController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateRequest godoc
// @Summary Request to join an event
// @Description Events without moderation confirm the request at once.
// @Tags private-requests
// @Produce json
// @Param userId path int true "Requester ID"
// @Param eventId query int true "Event ID"
// @Success 201 {object} controllers.RequestDTO
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /users/{userId}/requests [post]
func (c *RequestController) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := helpers.PathID(r, "userId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	eventID, err := helpers.QueryID(r, "eventId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	req, err := c.Service.CreateRequest(r.Context(), userID, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toRequest(req))
}

// ListUserRequests godoc
// @Summary List the user's participation requests
// @Tags private-requests
// @Produce json
// @Param userId path int true "Requester ID"
// @Success 200 {array} controllers.RequestDTO
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userId}/requests [get]
func (c *RequestController) ListUserRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := helpers.PathID(r, "userId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	reqs, err := c.Service.ListUserRequests(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toRequestList(reqs))
}

// CancelRequest godoc
// @Summary Cancel a participation request
// @Tags private-requests
// @Produce json
// @Param userId path int true "Requester ID"
// @Param requestId path int true "Request ID"
// @Success 200 {object} controllers.RequestDTO
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userId}/requests/{requestId}/cancel [patch]
func (c *RequestController) CancelRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := helpers.PathID(r, "userId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	requestID, err := helpers.PathID(r, "requestId")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	req, err := c.Service.CancelRequest(r.Context(), userID, requestID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toRequest(req))
}

// ListEventRequests godoc
// @Summary List requests for one of the user's events
// @Tags private-requests
// @Produce json
// @Param userId path int true "Initiator ID"
// @Param eventId path int true "Event ID"
// @Success 200 {array} controllers.RequestDTO
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userId}/events/{eventId}/requests [get]
func (c *RequestController) ListEventRequests(w http.ResponseWriter, r *http.Request) {
	userID, eventID, ok := c.userAndEvent(w, r)
	if !ok {
		return
	}
	reqs, err := c.Service.ListEventRequests(r.Context(), userID, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toRequestList(reqs))
}

// UpdateRequestsStatus godoc
// @Summary Confirm or reject a batch of requests
// @Description Requests are processed in the given order. Once the participant limit is reached the rest of a CONFIRMED batch is rejected.
// @Tags private-requests
// @Accept json
// @Produce json
// @Param userId path int true "Initiator ID"
// @Param eventId path int true "Event ID"
// @Param body body StatusUpdateRequest true "Request IDs and the wanted status"
// @Success 200 {object} controllers.StatusUpdateResultDTO
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /users/{userId}/events/{eventId}/requests [patch]
func (c *RequestController) UpdateRequestsStatus(w http.ResponseWriter, r *http.Request) {
	userID, eventID, ok := c.userAndEvent(w, r)
	if !ok {
		return
	}
	var body StatusUpdateRequest
	if !helpers.DecodeAndValidate(w, r, &body) {
		return
	}
	status, err := domain.ParseDecision(body.Status)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	res, err := c.Service.UpdateRequestsStatus(r.Context(), userID, eventID, body.RequestIDs, status)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusUpdateResultDTO{
		ConfirmedRequests: toRequestList(res.Confirmed),
		RejectedRequests:  toRequestList(res.Rejected),
	})
}

func (c *RequestController) userAndEvent(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
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
