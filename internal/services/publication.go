package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventboard/internal/domain"
)

// Minimum lead time between "now" and an event's start date.
const (
	ownerEditLeadTime = 2 * time.Hour
	adminEditLeadTime = 1 * time.Hour
)

type publicationService struct {
	eventRepo    domain.EventRepository
	categoryRepo domain.CategoryRepository
	userRepo     domain.UserRepository
	notifier     domain.Notifier
	logger       *slog.Logger
	now          func() time.Time
}

// NewPublicationService creates a PublicationService. notifier may be nil.
func NewPublicationService(
	eventRepo domain.EventRepository,
	categoryRepo domain.CategoryRepository,
	userRepo domain.UserRepository,
	notifier domain.Notifier,
	logger *slog.Logger,
) domain.PublicationService {
	return &publicationService{
		eventRepo:    eventRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *publicationService) Create(ctx context.Context, initiatorID int64, draft domain.NewEvent) (*domain.Event, error) {
	if _, err := s.userRepo.GetByID(ctx, initiatorID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, initiatorID)
		}
		return nil, fmt.Errorf("get initiator: %w", err)
	}
	if _, err := s.categoryRepo.GetByID(ctx, draft.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %d", domain.ErrNotFound, draft.CategoryID)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	now := s.now()
	if draft.EventDate.Before(now.Add(ownerEditLeadTime)) {
		return nil, fmt.Errorf("%w: event date must be at least 2 hours in the future", domain.ErrValidation)
	}

	moderation := true
	if draft.RequestModeration != nil {
		moderation = *draft.RequestModeration
	}
	event := &domain.Event{
		Title:             draft.Title,
		Annotation:        draft.Annotation,
		Description:       draft.Description,
		CategoryID:        draft.CategoryID,
		InitiatorID:       initiatorID,
		Lat:               draft.Lat,
		Lon:               draft.Lon,
		CreatedOn:         now,
		EventDate:         draft.EventDate,
		Paid:              draft.Paid,
		ParticipantLimit:  draft.ParticipantLimit,
		RequestModeration: moderation,
		State:             domain.EventStatePending,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// AdminUpdate applies field edits and an optional moderation verdict.
// The stored event date (not the edited one) is checked against the 1-hour
// threshold when a date edit arrives; this keeps republication of imminent
// events blocked even when the edit moves the date out.
func (s *publicationService) AdminUpdate(ctx context.Context, eventID int64, upd domain.AdminEventUpdate) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: event %d", domain.ErrNotFound, eventID)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if upd.StateAction != nil {
		switch *upd.StateAction {
		case domain.AdminActionReject:
			if event.State == domain.EventStatePublished {
				return nil, fmt.Errorf("%w: cannot reject a published event", domain.ErrConflict)
			}
		case domain.AdminActionPublish:
			if event.State != domain.EventStatePending {
				return nil, fmt.Errorf("%w: only pending events can be published", domain.ErrConflict)
			}
		default:
			return nil, fmt.Errorf("%w: unknown state action %q", domain.ErrValidation, *upd.StateAction)
		}
	}
	now := s.now()
	if upd.EventDate != nil && event.EventDate.Before(now.Add(adminEditLeadTime)) {
		return nil, fmt.Errorf("%w: event starts less than an hour from now", domain.ErrConflict)
	}

	if err := s.applyEdits(ctx, event, upd.EventUpdate); err != nil {
		return nil, err
	}
	if upd.StateAction != nil {
		switch *upd.StateAction {
		case domain.AdminActionPublish:
			event.State = domain.EventStatePublished
			event.PublishedOn = &now
		case domain.AdminActionReject:
			event.State = domain.EventStateCanceled
		}
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if upd.StateAction != nil {
		s.notifyModerationOutcome(ctx, event, *upd.StateAction)
	}
	return event, nil
}

func (s *publicationService) OwnerUpdate(ctx context.Context, ownerID, eventID int64, upd domain.OwnerEventUpdate) (*domain.Event, error) {
	event, err := s.eventRepo.GetByIDAndInitiator(ctx, eventID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: event %d for user %d", domain.ErrNotFound, eventID, ownerID)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.State == domain.EventStatePublished {
		return nil, fmt.Errorf("%w: published events cannot be edited by the owner", domain.ErrConflict)
	}
	if upd.EventDate != nil && upd.EventDate.Before(s.now().Add(ownerEditLeadTime)) {
		return nil, fmt.Errorf("%w: event date must be at least 2 hours in the future", domain.ErrValidation)
	}

	if err := s.applyEdits(ctx, event, upd.EventUpdate); err != nil {
		return nil, err
	}
	if upd.StateAction != nil {
		switch *upd.StateAction {
		case domain.OwnerActionSendToReview:
			event.State = domain.EventStatePending
		case domain.OwnerActionCancelReview:
			event.State = domain.EventStateCanceled
		default:
			return nil, fmt.Errorf("%w: unknown state action %q", domain.ErrValidation, *upd.StateAction)
		}
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

// applyEdits copies the provided edits onto the event. A category change is
// validated against the category repository.
func (s *publicationService) applyEdits(ctx context.Context, event *domain.Event, upd domain.EventUpdate) error {
	if upd.CategoryID != nil && *upd.CategoryID != event.CategoryID {
		if _, err := s.categoryRepo.GetByID(ctx, *upd.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: category %d", domain.ErrNotFound, *upd.CategoryID)
			}
			return fmt.Errorf("get category: %w", err)
		}
		event.CategoryID = *upd.CategoryID
	}
	if upd.Title != nil {
		event.Title = *upd.Title
	}
	if upd.Annotation != nil {
		event.Annotation = *upd.Annotation
	}
	if upd.Description != nil {
		event.Description = *upd.Description
	}
	if upd.Lat != nil {
		event.Lat = *upd.Lat
	}
	if upd.Lon != nil {
		event.Lon = *upd.Lon
	}
	if upd.EventDate != nil {
		event.EventDate = *upd.EventDate
	}
	if upd.Paid != nil {
		event.Paid = *upd.Paid
	}
	if upd.ParticipantLimit != nil {
		if *upd.ParticipantLimit < 0 {
			return fmt.Errorf("%w: participant limit cannot be negative", domain.ErrValidation)
		}
		event.ParticipantLimit = *upd.ParticipantLimit
	}
	if upd.RequestModeration != nil {
		event.RequestModeration = *upd.RequestModeration
	}
	return nil
}

// notifyModerationOutcome emails the initiator about the verdict. Failures
// are logged and swallowed; notification must never fail the update.
func (s *publicationService) notifyModerationOutcome(ctx context.Context, event *domain.Event, action domain.AdminStateAction) {
	if s.notifier == nil {
		return
	}
	initiator, err := s.userRepo.GetByID(ctx, event.InitiatorID)
	if err != nil {
		s.logger.WarnContext(ctx, "moderation notification skipped", "event_id", event.ID, "err", err)
		return
	}
	switch action {
	case domain.AdminActionPublish:
		err = s.notifier.EventPublished(ctx, initiator, event)
	case domain.AdminActionReject:
		err = s.notifier.EventRejected(ctx, initiator, event)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "moderation notification failed", "event_id", event.ID, "err", err)
	}
}
