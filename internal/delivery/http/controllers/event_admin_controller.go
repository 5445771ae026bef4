package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// AdminEventController serves event moderation under /admin/events.
type AdminEventController struct {
	Logger      *slog.Logger
	Publication domain.PublicationService
	Query       domain.QueryService
}

func NewAdminEventController(logger *slog.Logger, publication domain.PublicationService, query domain.QueryService) *AdminEventController {
	return &AdminEventController{Logger: logger, Publication: publication, Query: query}
}

// Search godoc
// @Summary Search events across all states
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param users query []int false "Initiator user ids"
// @Param states query []string false "Event states"
// @Param categories query []int false "Category ids"
// @Param rangeStart query string false "RFC3339 lower bound on event date"
// @Param rangeEnd query string false "RFC3339 upper bound on event date"
// @Param from query int false "Zero-based offset"
// @Param size query int false "Page size"
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /admin/events [get]
func (c *AdminEventController) Search(w http.ResponseWriter, r *http.Request) {
	var filter domain.EventFilter
	var err error

	if filter.InitiatorIDs, err = parseIDList(r, "users"); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	if filter.CategoryIDs, err = parseIDList(r, "categories"); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	for _, s := range r.URL.Query()["states"] {
		filter.States = append(filter.States, domain.EventState(s))
	}
	if filter.RangeStart, err = parseTimeParam(r, "rangeStart"); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	if filter.RangeEnd, err = parseTimeParam(r, "rangeEnd"); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	from, size := helpers.ParsePagination(r)

	events, err := c.Query.AdminSearch(r.Context(), filter, from, size)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// AdminUpdateEventRequest is the request body for admin PATCH; nil fields
// stay unchanged.
type AdminUpdateEventRequest struct {
	Title             *string    `json:"title"`
	Annotation        *string    `json:"annotation"`
	Description       *string    `json:"description"`
	Category          *int64     `json:"category"`
	Lat               *float64   `json:"lat"`
	Lon               *float64   `json:"lon"`
	EventDate         *time.Time `json:"event_date"`
	Paid              *bool      `json:"paid"`
	ParticipantLimit  *int32     `json:"participant_limit"`
	RequestModeration *bool      `json:"request_moderation"`
	StateAction       *string    `json:"state_action"`
}

// Update godoc
// @Summary Moderate an event
// @Description Applies field edits and an optional PUBLISH_EVENT / REJECT_EVENT verdict. Publishing requires the event to be PENDING; a published event cannot be rejected.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event id"
// @Param body body AdminUpdateEventRequest true "Field edits and verdict"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /admin/events/{eventID} [patch]
func (c *AdminEventController) Update(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.ParseID(r, "eventID")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	var req AdminUpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	upd := domain.AdminEventUpdate{
		EventUpdate: domain.EventUpdate{
			Title:             req.Title,
			Annotation:        req.Annotation,
			Description:       req.Description,
			CategoryID:        req.Category,
			Lat:               req.Lat,
			Lon:               req.Lon,
			EventDate:         req.EventDate,
			Paid:              req.Paid,
			ParticipantLimit:  req.ParticipantLimit,
			RequestModeration: req.RequestModeration,
		},
	}
	if req.StateAction != nil {
		action := domain.AdminStateAction(*req.StateAction)
		upd.StateAction = &action
	}
	event, err := c.Publication.AdminUpdate(r.Context(), eventID, upd)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "admin update failed", "event_id", eventID, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
