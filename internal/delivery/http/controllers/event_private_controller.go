package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// PrivateEventController serves the event-owner API under /users/{userID}.
type PrivateEventController struct {
	Logger      *slog.Logger
	Publication domain.PublicationService
	Admission   domain.AdmissionService
	Query       domain.QueryService
}

func NewPrivateEventController(
	logger *slog.Logger,
	publication domain.PublicationService,
	admission domain.AdmissionService,
	query domain.QueryService,
) *PrivateEventController {
	return &PrivateEventController{
		Logger:      logger,
		Publication: publication,
		Admission:   admission,
		Query:       query,
	}
}

// CreateEventRequest is the request body for POST /users/{userID}/events.
type CreateEventRequest struct {
	Title             string    `json:"title"`
	Annotation        string    `json:"annotation"`
	Description       string    `json:"description"`
	Category          int64     `json:"category"`
	Lat               float64   `json:"lat"`
	Lon               float64   `json:"lon"`
	EventDate         time.Time `json:"event_date"`
	Paid              bool      `json:"paid"`
	ParticipantLimit  int32     `json:"participant_limit"`
	RequestModeration *bool     `json:"request_moderation"`
}

// Validate implements Validator.
func (r CreateEventRequest) Validate() []string {
	var errs []string
	if r.Title == "" {
		errs = append(errs, "title is required")
	}
	if r.Annotation == "" {
		errs = append(errs, "annotation is required")
	}
	if r.Category <= 0 {
		errs = append(errs, "category is required")
	}
	if r.EventDate.IsZero() {
		errs = append(errs, "event_date is required")
	}
	if r.ParticipantLimit < 0 {
		errs = append(errs, "participant_limit cannot be negative")
	}
	return errs
}

// Create godoc
// @Summary Create an event
// @Description Creates an event in PENDING state. The event date must be at least two hours in the future.
// @Tags owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path int true "Owner user id"
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userID}/events [post]
func (c *PrivateEventController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSelf(w, r, "userID")
	if !ok {
		return
	}
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Publication.Create(r.Context(), userID, domain.NewEvent{
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
	})
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "create event failed", "user_id", userID, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// List godoc
// @Summary List the caller's events
// @Tags owner
// @Produce json
// @Security BearerAuth
// @Param userID path int true "Owner user id"
// @Param from query int false "Zero-based offset"
// @Param size query int false "Page size"
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Router /users/{userID}/events [get]
func (c *PrivateEventController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSelf(w, r, "userID")
	if !ok {
		return
	}
	from, size := helpers.ParsePagination(r)
	events, err := c.Query.OwnerEvents(r.Context(), userID, from, size)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Get godoc
// @Summary Get one of the caller's events
// @Tags owner
// @Produce json
// @Security BearerAuth
// @Param userID path int true "Owner user id"
// @Param eventID path int true "Event id"
// @Success 200 {object} helpers.APIResponse "data contains the event with views"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userID}/events/{eventID} [get]
func (c *PrivateEventController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSelf(w, r, "userID")
	if !ok {
		return
	}
	eventID, ok := helpers.ParseID(r, "eventID")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	event, err := c.Query.OwnerEvent(r.Context(), userID, eventID)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEventRequest is the request body for owner PATCH; nil fields stay
// unchanged.
type UpdateEventRequest struct {
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

func (r UpdateEventRequest) edits() domain.EventUpdate {
	return domain.EventUpdate{
		Title:             r.Title,
		Annotation:        r.Annotation,
		Description:       r.Description,
		CategoryID:        r.Category,
		Lat:               r.Lat,
		Lon:               r.Lon,
		EventDate:         r.EventDate,
		Paid:              r.Paid,
		ParticipantLimit:  r.ParticipantLimit,
		RequestModeration: r.RequestModeration,
	}
}

// Update godoc
// @Summary Edit one of the caller's events
// @Description Applies field edits and an optional SEND_TO_REVIEW / CANCEL_REVIEW action. Refused for published events.
// @Tags owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path int true "Owner user id"
// @Param eventID path int true "Event id"
// @Param body body UpdateEventRequest true "Field edits"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /users/{userID}/events/{eventID} [patch]
func (c *PrivateEventController) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSelf(w, r, "userID")
	if !ok {
		return
	}
	eventID, ok := helpers.ParseID(r, "eventID")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	upd := domain.OwnerEventUpdate{EventUpdate: req.edits()}
	if req.StateAction != nil {
		action := domain.OwnerStateAction(*req.StateAction)
		upd.StateAction = &action
	}
	event, err := c.Publication.OwnerUpdate(r.Context(), userID, eventID, upd)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListRequests godoc
// @Summary List participation requests for one of the caller's events
// @Tags owner
// @Produce json
// @Security BearerAuth
// @Param userID path int true "Owner user id"
// @Param eventID path int true "Event id"
// @Success 200 {object} helpers.APIResponse "data contains the request list"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userID}/events/{eventID}/requests [get]
func (c *PrivateEventController) ListRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSelf(w, r, "userID")
	if !ok {
		return
	}
	eventID, ok := helpers.ParseID(r, "eventID")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	requests, err := c.Admission.ListEventRequests(r.Context(), userID, eventID)
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, requests)
}

// ResolveRequestsRequest is the request body for the bulk status update.
type ResolveRequestsRequest struct {
	RequestIDs []int64 `json:"request_ids"`
	Status     string  `json:"status"`
}

// Validate implements Validator.
func (r ResolveRequestsRequest) Validate() []string {
	var errs []string
	if len(r.RequestIDs) == 0 {
		errs = append(errs, "request_ids is required")
	}
	if !domain.ResolveAction(r.Status).Valid() {
		errs = append(errs, "status must be CONFIRMED or REJECTED")
	}
	return errs
}

// ResolveRequests godoc
// @Summary Confirm or reject pending participation requests in bulk
// @Description All-or-nothing: the whole batch is applied or the call fails. Confirming past the participant limit fails with 409.
// @Tags owner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path int true "Owner user id"
// @Param eventID path int true "Event id"
// @Param body body ResolveRequestsRequest true "Request ids and target status"
// @Success 200 {object} helpers.APIResponse "data contains confirmed and rejected request lists"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /users/{userID}/events/{eventID}/requests [patch]
func (c *PrivateEventController) ResolveRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireSelf(w, r, "userID")
	if !ok {
		return
	}
	eventID, ok := helpers.ParseID(r, "eventID")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	var req ResolveRequestsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Admission.BulkResolve(r.Context(), userID, eventID, req.RequestIDs, domain.ResolveAction(req.Status))
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
