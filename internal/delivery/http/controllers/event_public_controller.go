package controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// PublicEventController serves the unauthenticated event read API.
type PublicEventController struct {
	Logger *slog.Logger
	Query  domain.QueryService
}

func NewPublicEventController(logger *slog.Logger, query domain.QueryService) *PublicEventController {
	return &PublicEventController{Logger: logger, Query: query}
}

// Search godoc
// @Summary Search published events
// @Description Full-text, category, paid and date-range filtering over published events. Results carry view counts from the statistics service.
// @Tags events
// @Produce json
// @Param text query string false "Text to match in annotation or description"
// @Param categories query []int false "Category ids"
// @Param paid query bool false "Paid events only"
// @Param rangeStart query string false "RFC3339 lower bound on event date"
// @Param rangeEnd query string false "RFC3339 upper bound on event date"
// @Param onlyAvailable query bool false "Events with free slots only"
// @Param sort query string false "EVENT_DATE or VIEWS"
// @Param from query int false "Zero-based offset"
// @Param size query int false "Page size"
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /events [get]
func (c *PublicEventController) Search(w http.ResponseWriter, r *http.Request) {
	filter, err := c.parseFilter(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	from, size := helpers.ParsePagination(r)

	events, err := c.Query.PublicSearch(r.Context(), filter, from, size, clientIP(r))
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "public search failed", "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	if filter.Sort == domain.EventSortViews {
		sort.SliceStable(events, func(i, j int) bool { return events[i].Views > events[j].Views })
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Get godoc
// @Summary Get a published event by id
// @Tags events
// @Produce json
// @Param eventID path int true "Event id"
// @Success 200 {object} helpers.APIResponse "data contains the event with views"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *PublicEventController) Get(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.ParseID(r, "eventID")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	event, err := c.Query.GetPublished(r.Context(), eventID, clientIP(r))
	if err != nil {
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

func (c *PublicEventController) parseFilter(r *http.Request) (domain.EventFilter, error) {
	filter := domain.EventFilter{Text: r.URL.Query().Get("text")}

	categories, err := parseIDList(r, "categories")
	if err != nil {
		return filter, err
	}
	filter.CategoryIDs = categories

	if s := r.URL.Query().Get("paid"); s != "" {
		paid, err := strconv.ParseBool(s)
		if err != nil {
			return filter, err
		}
		filter.Paid = &paid
	}
	if filter.RangeStart, err = parseTimeParam(r, "rangeStart"); err != nil {
		return filter, err
	}
	if filter.RangeEnd, err = parseTimeParam(r, "rangeEnd"); err != nil {
		return filter, err
	}
	if s := r.URL.Query().Get("onlyAvailable"); s != "" {
		only, err := strconv.ParseBool(s)
		if err != nil {
			return filter, err
		}
		filter.OnlyAvailable = only
	}
	if s := r.URL.Query().Get("sort"); s != "" {
		order := domain.EventSort(s)
		if order != domain.EventSortDate && order != domain.EventSortViews {
			return filter, fmt.Errorf("unknown sort %q", s)
		}
		filter.Sort = order
	}
	return filter, nil
}
