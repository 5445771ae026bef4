package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// RequestController serves the requester-side participation API.
type RequestController struct {
	Logger    *slog.Logger
	Admission domain.AdmissionService
}

func NewRequestController(logger *slog.Logger, admission domain.AdmissionService) *RequestController {
	return &RequestController{Logger: logger, Admission: admission}
}

// List godoc
// @Summary List the caller's participation requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param userID path int true "Requester user id"
// @Success 200 {object} helpers.APIResponse "data contains the request list"
// @Router /users/{userID}/requests [get]
func (c *RequestController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSelf(w, r, "userID")
	if !ok {
		return
	}
	requests, err := c.Admission.ListOwnRequests(r.Context(), userID)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, requests)
}

// Create godoc
// @Summary Request participation in an event
// @Description The event must be published, the caller must not be its initiator, and the participant limit must not be reached. Unmoderated or unlimited events confirm the request immediately.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param userID path int true "Requester user id"
// @Param eventId query int true "Target event id"
// @Success 201 {object} helpers.APIResponse "data contains the created request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /users/{userID}/requests [post]
func (c *RequestController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSelf(w, r, "userID")
	if !ok {
		return
	}
	eventID, err := strconv.ParseInt(r.URL.Query().Get("eventId"), 10, 64)
	if err != nil || eventID <= 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventId query parameter is required")
		return
	}
	request, err := c.Admission.CreateRequest(r.Context(), userID, eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "create request failed", "user_id", userID, "event_id", eventID, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, request)
}

// Cancel godoc
// @Summary Cancel one of the caller's participation requests
// @Description A confirmed request releases its slot. An already-canceled request is refused.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param userID path int true "Requester user id"
// @Param requestID path int true "Request id"
// @Success 200 {object} helpers.APIResponse "data contains the canceled request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /users/{userID}/requests/{requestID}/cancel [patch]
func (c *RequestController) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSelf(w, r, "userID")
	if !ok {
		return
	}
	requestID, ok := helpers.ParseID(r, "requestID")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid requestID")
		return
	}
	request, err := c.Admission.CancelRequest(r.Context(), userID, requestID)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, request)
}
