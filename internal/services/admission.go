package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventboard/internal/domain"
)

type admissionService struct {
	store       domain.AdmissionStore
	requestRepo domain.RequestRepository
	eventRepo   domain.EventRepository
	userRepo    domain.UserRepository
}

// NewAdmissionService creates an AdmissionService backed by the given store
// and repositories.
func NewAdmissionService(
	store domain.AdmissionStore,
	requestRepo domain.RequestRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
) domain.AdmissionService {
	return &admissionService{
		store:       store,
		requestRepo: requestRepo,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
	}
}

// CreateRequest registers a participation request for the event. Every check
// that involves the confirmed counter runs under the event row lock, in the
// same transaction as the insert and the counter increment, so a concurrent
// creator cannot slip past the limit.
func (s *admissionService) CreateRequest(ctx context.Context, requesterID, eventID int64) (*domain.ParticipationRequest, error) {
	if _, err := s.userRepo.GetByID(ctx, requesterID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, requesterID)
		}
		return nil, fmt.Errorf("get requester: %w", err)
	}

	var created *domain.ParticipationRequest
	err := s.store.WithEventLock(ctx, eventID, func(ctx context.Context, tx domain.AdmissionTx) error {
		event := tx.Event()

		dup, err := tx.HasActiveRequest(ctx, requesterID)
		if err != nil {
			return fmt.Errorf("check duplicate request: %w", err)
		}
		if dup {
			return fmt.Errorf("%w: duplicate request", domain.ErrConflict)
		}
		if event.InitiatorID == requesterID {
			return fmt.Errorf("%w: initiator cannot request own event", domain.ErrConflict)
		}
		if event.State != domain.EventStatePublished {
			return fmt.Errorf("%w: event not published", domain.ErrConflict)
		}
		if event.ParticipantLimit > 0 {
			confirmed, err := tx.CountConfirmed(ctx)
			if err != nil {
				return fmt.Errorf("count confirmed requests: %w", err)
			}
			if confirmed >= int64(event.ParticipantLimit) {
				return fmt.Errorf("%w: participant limit reached", domain.ErrConflict)
			}
		}

		status := domain.RequestStatusPending
		if !event.RequestModeration || event.ParticipantLimit == 0 {
			status = domain.RequestStatusConfirmed
		}

		req := &domain.ParticipationRequest{
			Created:     time.Now(),
			RequesterID: requesterID,
			EventID:     eventID,
			Status:      status,
		}
		if err := tx.InsertRequest(ctx, req); err != nil {
			return fmt.Errorf("insert request: %w", err)
		}
		if status == domain.RequestStatusConfirmed {
			if err := tx.SetConfirmedCount(ctx, event.ConfirmedRequests+1); err != nil {
				return fmt.Errorf("increment confirmed count: %w", err)
			}
		}
		created = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CancelRequest moves the caller's request to CANCELED. Canceling a
// CONFIRMED request releases its slot by decrementing the event counter in
// the same transaction as the status write; an already-CANCELED request is
// refused so the counter can never be decremented twice.
func (s *admissionService) CancelRequest(ctx context.Context, requesterID, requestID int64) (*domain.ParticipationRequest, error) {
	req, err := s.requestRepo.GetByIDAndRequester(ctx, requestID, requesterID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: request %d for user %d", domain.ErrNotFound, requestID, requesterID)
		}
		return nil, fmt.Errorf("get request: %w", err)
	}

	var canceled *domain.ParticipationRequest
	err = s.store.WithEventLock(ctx, req.EventID, func(ctx context.Context, tx domain.AdmissionTx) error {
		cur, err := tx.GetRequest(ctx, requestID)
		if err != nil {
			return fmt.Errorf("reread request: %w", err)
		}
		if cur.Status == domain.RequestStatusCanceled {
			return fmt.Errorf("%w: request already canceled", domain.ErrConflict)
		}
		if err := tx.UpdateRequestStatuses(ctx, []int64{requestID}, domain.RequestStatusCanceled); err != nil {
			return fmt.Errorf("cancel request: %w", err)
		}
		if cur.Status == domain.RequestStatusConfirmed {
			if err := tx.SetConfirmedCount(ctx, tx.Event().ConfirmedRequests-1); err != nil {
				return fmt.Errorf("decrement confirmed count: %w", err)
			}
		}
		cur.Status = domain.RequestStatusCanceled
		canceled = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return canceled, nil
}

// BulkResolve applies one ResolveAction to a batch of pending requests.
// The batch is all-or-nothing: any invalid member fails the whole call and
// the transaction is rolled back wholesale. For confirmation, the limit is
// re-validated against the locked event row so two concurrent batches cannot
// jointly overshoot it.
func (s *admissionService) BulkResolve(ctx context.Context, ownerID, eventID int64, requestIDs []int64, action domain.ResolveAction) (*domain.BulkResolveResult, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("%w: unknown resolve action %q", domain.ErrValidation, action)
	}
	if len(requestIDs) == 0 {
		return nil, fmt.Errorf("%w: empty request id list", domain.ErrValidation)
	}

	var result *domain.BulkResolveResult
	err := s.store.WithEventLock(ctx, eventID, func(ctx context.Context, tx domain.AdmissionTx) error {
		event := tx.Event()
		if event.InitiatorID != ownerID {
			return fmt.Errorf("%w: event %d for user %d", domain.ErrNotFound, eventID, ownerID)
		}

		requests, err := tx.ListRequests(ctx, requestIDs)
		if err != nil {
			return fmt.Errorf("load requests: %w", err)
		}
		if len(requests) != len(requestIDs) {
			return fmt.Errorf("%w: batch names unknown requests", domain.ErrConflict)
		}
		for _, req := range requests {
			if req.EventID != eventID {
				return fmt.Errorf("%w: request %d does not belong to event %d", domain.ErrConflict, req.ID, eventID)
			}
			if req.Status != domain.RequestStatusPending {
				return fmt.Errorf("%w: request %d is not pending", domain.ErrConflict, req.ID)
			}
		}

		if action == domain.ResolveReject {
			if err := tx.UpdateRequestStatuses(ctx, requestIDs, domain.RequestStatusRejected); err != nil {
				return fmt.Errorf("reject requests: %w", err)
			}
			for _, req := range requests {
				req.Status = domain.RequestStatusRejected
			}
			result = &domain.BulkResolveResult{Rejected: requests, Confirmed: []*domain.ParticipationRequest{}}
			return nil
		}

		next := event.ConfirmedRequests + int32(len(requests))
		if event.ParticipantLimit > 0 && next > event.ParticipantLimit {
			return fmt.Errorf("%w: participant limit exceeded", domain.ErrConflict)
		}
		if err := tx.UpdateRequestStatuses(ctx, requestIDs, domain.RequestStatusConfirmed); err != nil {
			return fmt.Errorf("confirm requests: %w", err)
		}
		if err := tx.SetConfirmedCount(ctx, next); err != nil {
			return fmt.Errorf("update confirmed count: %w", err)
		}
		for _, req := range requests {
			req.Status = domain.RequestStatusConfirmed
		}
		result = &domain.BulkResolveResult{Confirmed: requests, Rejected: []*domain.ParticipationRequest{}}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *admissionService) ListOwnRequests(ctx context.Context, requesterID int64) ([]*domain.ParticipationRequest, error) {
	if _, err := s.userRepo.GetByID(ctx, requesterID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, requesterID)
		}
		return nil, fmt.Errorf("get requester: %w", err)
	}
	requests, err := s.requestRepo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	if requests == nil {
		requests = []*domain.ParticipationRequest{}
	}
	return requests, nil
}

func (s *admissionService) ListEventRequests(ctx context.Context, ownerID, eventID int64) ([]*domain.ParticipationRequest, error) {
	if _, err := s.eventRepo.GetByIDAndInitiator(ctx, eventID, ownerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: event %d for user %d", domain.ErrNotFound, eventID, ownerID)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	requests, err := s.requestRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list event requests: %w", err)
	}
	if requests == nil {
		requests = []*domain.ParticipationRequest{}
	}
	return requests, nil
}
