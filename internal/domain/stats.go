package domain

import (
	"context"
	"time"
)

// StatsClient is the read-through interface to the view-statistics
// collaborator. It has no write-path interaction with the admission or
// publication engines; a failing stats call must never leave engine state
// inconsistent, so callers treat errors as "zero views".
type StatsClient interface {
	// Hit records a view of the given resource URI by the given client IP.
	Hit(ctx context.Context, uri, ip string) error
	// Views returns the view count per event id within [start, end].
	// unique counts each visitor IP at most once.
	Views(ctx context.Context, start, end time.Time, eventIDs []int64, unique bool) (map[int64]int64, error)
}

// Notifier delivers moderation-outcome notifications to event initiators.
// Delivery is best effort; implementations must not block engine calls on
// failure.
type Notifier interface {
	EventPublished(ctx context.Context, initiator *User, event *Event) error
	EventRejected(ctx context.Context, initiator *User, event *Event) error
}
