package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventboard/internal/domain"
)

// statsLookback bounds the view-count window; events older than this report
// zero views.
const statsLookback = 10 * 365 * 24 * time.Hour

type queryService struct {
	eventRepo domain.EventRepository
	userRepo  domain.UserRepository
	stats     domain.StatsClient
	logger    *slog.Logger
	now       func() time.Time
}

// NewQueryService creates a QueryService. The stats client is consulted
// read-through only; its failures degrade to zero view counts.
func NewQueryService(
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	stats domain.StatsClient,
	logger *slog.Logger,
) domain.QueryService {
	return &queryService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		stats:     stats,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *queryService) PublicSearch(ctx context.Context, filter domain.EventFilter, from, size int, clientIP string) ([]*domain.EventWithViews, error) {
	if err := validateRange(filter.RangeStart, filter.RangeEnd); err != nil {
		return nil, err
	}
	filter.States = []domain.EventState{domain.EventStatePublished}
	if filter.RangeStart == nil && filter.RangeEnd == nil {
		// Default window: upcoming events only.
		now := s.now()
		filter.RangeStart = &now
	}

	s.recordHit(ctx, "/events", clientIP)

	events, err := s.eventRepo.Search(ctx, filter, from, size)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return s.decorate(ctx, events), nil
}

func (s *queryService) GetPublished(ctx context.Context, eventID int64, clientIP string) (*domain.EventWithViews, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: event %d", domain.ErrNotFound, eventID)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.State != domain.EventStatePublished {
		return nil, fmt.Errorf("%w: event %d", domain.ErrNotFound, eventID)
	}

	s.recordHit(ctx, fmt.Sprintf("/events/%d", eventID), clientIP)

	return s.decorate(ctx, []*domain.Event{event})[0], nil
}

func (s *queryService) AdminSearch(ctx context.Context, filter domain.EventFilter, from, size int) ([]*domain.EventWithViews, error) {
	if err := validateRange(filter.RangeStart, filter.RangeEnd); err != nil {
		return nil, err
	}
	for _, st := range filter.States {
		if !st.Valid() {
			return nil, fmt.Errorf("%w: unknown event state %q", domain.ErrValidation, st)
		}
	}
	events, err := s.eventRepo.Search(ctx, filter, from, size)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return s.decorate(ctx, events), nil
}

func (s *queryService) OwnerEvents(ctx context.Context, ownerID int64, from, size int) ([]*domain.EventWithViews, error) {
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, ownerID)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	events, err := s.eventRepo.ListByInitiator(ctx, ownerID, from, size)
	if err != nil {
		return nil, fmt.Errorf("list owner events: %w", err)
	}
	return s.decorate(ctx, events), nil
}

func (s *queryService) OwnerEvent(ctx context.Context, ownerID, eventID int64) (*domain.EventWithViews, error) {
	event, err := s.eventRepo.GetByIDAndInitiator(ctx, eventID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: event %d for user %d", domain.ErrNotFound, eventID, ownerID)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return s.decorate(ctx, []*domain.Event{event})[0], nil
}

// decorate attaches view counts to events. Stats failures are logged and
// reported as zero views; they never fail the query.
func (s *queryService) decorate(ctx context.Context, events []*domain.Event) []*domain.EventWithViews {
	result := make([]*domain.EventWithViews, 0, len(events))
	if len(events) == 0 {
		return result
	}

	ids := make([]int64, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	now := s.now()
	views, err := s.stats.Views(ctx, now.Add(-statsLookback), now.Add(time.Hour), ids, true)
	if err != nil {
		s.logger.WarnContext(ctx, "view counts unavailable", "err", err)
		views = map[int64]int64{}
	}
	for _, e := range events {
		result = append(result, &domain.EventWithViews{Event: e, Views: views[e.ID]})
	}
	return result
}

func (s *queryService) recordHit(ctx context.Context, uri, ip string) {
	if err := s.stats.Hit(ctx, uri, ip); err != nil {
		s.logger.WarnContext(ctx, "stats hit failed", "uri", uri, "err", err)
	}
}

func validateRange(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return fmt.Errorf("%w: range start is after range end", domain.ErrValidation)
	}
	return nil
}
