package domain

import (
	"context"
	"time"
)

// RequestStatus is the approval lifecycle state of a participation request.
// PENDING -> {CONFIRMED, REJECTED, CANCELED}; CONFIRMED -> {CANCELED};
// REJECTED and CANCELED are terminal.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusConfirmed RequestStatus = "CONFIRMED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCanceled  RequestStatus = "CANCELED"
)

// ParticipationRequest is a user's bid to attend an event. A CONFIRMED
// request consumes one unit of the event's participant capacity.
type ParticipationRequest struct {
	ID          int64         `json:"id"`
	Created     time.Time     `json:"created"`
	RequesterID int64         `json:"requester"`
	EventID     int64         `json:"event"`
	Status      RequestStatus `json:"status"`
}

// ResolveAction is the target outcome of a bulk resolution. It is the single
// tagged variant used by BulkResolve for both confirm and reject batches.
type ResolveAction string

const (
	ResolveConfirm ResolveAction = "CONFIRMED"
	ResolveReject  ResolveAction = "REJECTED"
)

// Valid reports whether a is a known resolve action.
func (a ResolveAction) Valid() bool {
	return a == ResolveConfirm || a == ResolveReject
}

// BulkResolveResult partitions a resolved batch. Exactly one of the two
// slices is non-empty on success.
type BulkResolveResult struct {
	Confirmed []*ParticipationRequest `json:"confirmed_requests"`
	Rejected  []*ParticipationRequest `json:"rejected_requests"`
}

// RequestRepository defines the plain read paths for participation requests.
// All writes go through the AdmissionStore under the event row lock.
type RequestRepository interface {
	ListByRequester(ctx context.Context, requesterID int64) ([]*ParticipationRequest, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*ParticipationRequest, error)
	GetByIDAndRequester(ctx context.Context, id, requesterID int64) (*ParticipationRequest, error)
}

// AdmissionService owns the participation-request state machine, the
// eligibility rules for creating a request, and the atomic bulk-confirmation
// algorithm that allocates participant slots.
type AdmissionService interface {
	CreateRequest(ctx context.Context, requesterID, eventID int64) (*ParticipationRequest, error)
	CancelRequest(ctx context.Context, requesterID, requestID int64) (*ParticipationRequest, error)
	BulkResolve(ctx context.Context, ownerID, eventID int64, requestIDs []int64, action ResolveAction) (*BulkResolveResult, error)
	ListOwnRequests(ctx context.Context, requesterID int64) ([]*ParticipationRequest, error)
	ListEventRequests(ctx context.Context, ownerID, eventID int64) ([]*ParticipationRequest, error)
}
