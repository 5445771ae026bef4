package domain

import (
	"context"
	"time"
)

// EventState is the publication lifecycle state of an event.
// PENDING -> {PUBLISHED, CANCELED}; PUBLISHED and CANCELED are terminal
// except that an owner may move a CANCELED event back to PENDING.
type EventState string

const (
	EventStatePending   EventState = "PENDING"
	EventStatePublished EventState = "PUBLISHED"
	EventStateCanceled  EventState = "CANCELED"
)

// Valid reports whether s is one of the known lifecycle states.
func (s EventState) Valid() bool {
	switch s {
	case EventStatePending, EventStatePublished, EventStateCanceled:
		return true
	}
	return false
}

// Event represents a publishable activity with a capacity-limited
// participant roster. ParticipantLimit == 0 means unlimited.
type Event struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Annotation        string     `json:"annotation"`
	Description       string     `json:"description"`
	CategoryID        int64      `json:"category"`
	InitiatorID       int64      `json:"initiator"`
	Lat               float64    `json:"lat"`
	Lon               float64    `json:"lon"`
	CreatedOn         time.Time  `json:"created_on"`
	EventDate         time.Time  `json:"event_date"`
	PublishedOn       *time.Time `json:"published_on,omitempty"`
	Paid              bool       `json:"paid"`
	ParticipantLimit  int32      `json:"participant_limit"`
	RequestModeration bool       `json:"request_moderation"`
	ConfirmedRequests int32      `json:"confirmed_requests"`
	State             EventState `json:"state"`
}

// HasFreeSlots reports whether the event can accept another confirmed request.
func (e *Event) HasFreeSlots() bool {
	return e.ParticipantLimit == 0 || e.ConfirmedRequests < e.ParticipantLimit
}

// EventSort orders public search results.
type EventSort string

const (
	EventSortDate  EventSort = "EVENT_DATE"
	EventSortViews EventSort = "VIEWS"
)

// EventFilter narrows event searches. Nil pointer fields and empty slices
// mean "no constraint".
type EventFilter struct {
	Text          string
	CategoryIDs   []int64
	InitiatorIDs  []int64
	States        []EventState
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
	Sort          EventSort
}

// EventRepository defines storage operations for events. The confirmed
// counter is never written through this interface; counter writes go through
// the AdmissionStore so they always happen under the event row lock.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	GetByIDAndInitiator(ctx context.Context, id, initiatorID int64) (*Event, error)
	Update(ctx context.Context, event *Event) error
	Search(ctx context.Context, filter EventFilter, from, size int) ([]*Event, error)
	ListByInitiator(ctx context.Context, initiatorID int64, from, size int) ([]*Event, error)
	ExistsByCategory(ctx context.Context, categoryID int64) (bool, error)
}

// NewEvent carries the caller-supplied fields for event creation.
type NewEvent struct {
	Title             string
	Annotation        string
	Description       string
	CategoryID        int64
	Lat               float64
	Lon               float64
	EventDate         time.Time
	Paid              bool
	ParticipantLimit  int32
	RequestModeration *bool
}

// AdminStateAction is the moderation verdict attached to an admin update.
type AdminStateAction string

const (
	AdminActionPublish AdminStateAction = "PUBLISH_EVENT"
	AdminActionReject  AdminStateAction = "REJECT_EVENT"
)

// OwnerStateAction is the review toggle attached to an owner update.
type OwnerStateAction string

const (
	OwnerActionSendToReview OwnerStateAction = "SEND_TO_REVIEW"
	OwnerActionCancelReview OwnerStateAction = "CANCEL_REVIEW"
)

// EventUpdate holds the optional field edits shared by admin and owner
// updates; nil means "leave unchanged".
type EventUpdate struct {
	Title             *string
	Annotation        *string
	Description       *string
	CategoryID        *int64
	Lat               *float64
	Lon               *float64
	EventDate         *time.Time
	Paid              *bool
	ParticipantLimit  *int32
	RequestModeration *bool
}

// AdminEventUpdate is the payload of an admin moderation update.
type AdminEventUpdate struct {
	EventUpdate
	StateAction *AdminStateAction
}

// OwnerEventUpdate is the payload of an owner-initiated update.
type OwnerEventUpdate struct {
	EventUpdate
	StateAction *OwnerStateAction
}

// PublicationService owns admin/owner-driven event state transitions and the
// validation rules gating them.
type PublicationService interface {
	Create(ctx context.Context, initiatorID int64, draft NewEvent) (*Event, error)
	AdminUpdate(ctx context.Context, eventID int64, upd AdminEventUpdate) (*Event, error)
	OwnerUpdate(ctx context.Context, ownerID, eventID int64, upd OwnerEventUpdate) (*Event, error)
}

// EventWithViews decorates an event with its view count from the stats
// collaborator.
type EventWithViews struct {
	*Event
	Views int64 `json:"views"`
}

// QueryService builds filtered, paginated, view-decorated projections over
// events. It never mutates engine state.
type QueryService interface {
	PublicSearch(ctx context.Context, filter EventFilter, from, size int, clientIP string) ([]*EventWithViews, error)
	GetPublished(ctx context.Context, eventID int64, clientIP string) (*EventWithViews, error)
	AdminSearch(ctx context.Context, filter EventFilter, from, size int) ([]*EventWithViews, error)
	OwnerEvents(ctx context.Context, ownerID int64, from, size int) ([]*EventWithViews, error)
	OwnerEvent(ctx context.Context, ownerID, eventID int64) (*EventWithViews, error)
}
