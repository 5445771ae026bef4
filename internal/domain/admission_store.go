package domain

import "context"

// AdmissionTx exposes the storage operations available while an event row is
// locked. All reads and writes issued through it run in the transaction
// opened by WithEventLock and see each other's effects.
type AdmissionTx interface {
	// Event returns the locked event row as read at lock acquisition.
	Event() *Event
	// HasActiveRequest reports whether the requester already has a
	// non-canceled request for the locked event.
	HasActiveRequest(ctx context.Context, requesterID int64) (bool, error)
	// CountConfirmed counts CONFIRMED requests for the locked event.
	CountConfirmed(ctx context.Context) (int64, error)
	// InsertRequest persists a new request and fills in its ID.
	InsertRequest(ctx context.Context, req *ParticipationRequest) error
	// GetRequest re-reads a request of the locked event inside the
	// transaction. Returns ErrNotFound if it does not exist.
	GetRequest(ctx context.Context, requestID int64) (*ParticipationRequest, error)
	// ListRequests loads the requests with the given ids, whichever event
	// they belong to; the caller validates membership.
	ListRequests(ctx context.Context, ids []int64) ([]*ParticipationRequest, error)
	// UpdateRequestStatuses sets the status of every request in ids.
	UpdateRequestStatuses(ctx context.Context, ids []int64, status RequestStatus) error
	// SetConfirmedCount writes the event's confirmed-request counter.
	SetConfirmedCount(ctx context.Context, count int32) error
}

// AdmissionStore is the unit-of-work boundary for every operation that reads
// and later writes an event's confirmed-request counter. WithEventLock opens
// a transaction, acquires a row lock on the event (serializing concurrent
// callers on the same event id), runs fn, and commits; any error from fn
// rolls the whole transaction back. It returns ErrNotFound when the event
// does not exist.
type AdmissionStore interface {
	WithEventLock(ctx context.Context, eventID int64, fn func(ctx context.Context, tx AdmissionTx) error) error
}
