package domain

import (
	"context"
	"time"
)

// EventState is the moderation status of an event.
type EventState string

const (
	EventStatePending   EventState = "PENDING"
	EventStatePublished EventState = "PUBLISHED"
	EventStateCanceled  EventState = "CANCELED"
)

// ParseEventState converts s into an EventState.
func ParseEventState(s string) (EventState, error) {
	switch st := EventState(s); st {
	case EventStatePending, EventStatePublished, EventStateCanceled:
		return st, nil
	default:
		return "", Validationf("unknown event state %q", s)
	}
}

// Location is the geographic point an event takes place at.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Event is an organizer's proposed gathering.
type Event struct {
	ID                int64
	Annotation        string
	Description       string
	Title             string
	Category          Category
	Initiator         User
	EventDate         time.Time
	Location          Location
	Paid              bool
	ParticipantLimit  int
	RequestModeration bool
	ConfirmedRequests int
	State             EventState
	CreatedOn         time.Time
	PublishedOn       *time.Time
	// Views is populated from the view statistics service and never stored.
	Views int64
}

// HasParticipantLimit reports whether the event caps the number of participants.
func (e *Event) HasParticipantLimit() bool {
	return e.ParticipantLimit > 0
}

// IsFull reports whether every seat of a limited event is taken.
func (e *Event) IsFull() bool {
	return e.HasParticipantLimit() && e.ConfirmedRequests >= e.ParticipantLimit
}

// RemainingCapacity returns the number of seats still free. Unlimited events report -1.
func (e *Event) RemainingCapacity() int {
	if !e.HasParticipantLimit() {
		return -1
	}
	if r := e.ParticipantLimit - e.ConfirmedRequests; r > 0 {
		return r
	}
	return 0
}

// NewEventInput carries the fields an initiator submits for a new event.
type NewEventInput struct {
	Annotation        string
	CategoryID        int64
	Description       string
	EventDate         time.Time
	Location          Location
	Paid              bool
	ParticipantLimit  int
	RequestModeration *bool
	Title             string
}

// UpdateEventInput is a partial update: nil fields leave the event untouched.
type UpdateEventInput struct {
	Annotation        *string
	CategoryID        *int64
	Description       *string
	EventDate         *time.Time
	Location          *Location
	Paid              *bool
	ParticipantLimit  *int
	RequestModeration *bool
	StateAction       *StateAction
	Title             *string
}

// Merge copies every present field onto e. Category is resolved by the caller
// because it needs a repository lookup; state is handled by the transition rules.
func (in UpdateEventInput) Merge(e *Event, category *Category) {
	if in.Annotation != nil {
		e.Annotation = *in.Annotation
	}
	if category != nil {
		e.Category = *category
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.EventDate != nil {
		e.EventDate = *in.EventDate
	}
	if in.Location != nil {
		e.Location = *in.Location
	}
	if in.Paid != nil {
		e.Paid = *in.Paid
	}
	if in.ParticipantLimit != nil {
		e.ParticipantLimit = *in.ParticipantLimit
	}
	if in.RequestModeration != nil {
		e.RequestModeration = *in.RequestModeration
	}
	if in.Title != nil {
		e.Title = *in.Title
	}
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	// GetByIDForUpdate loads the event and locks its row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*Event, error)
	// Update writes every mutable column of e.
	Update(ctx context.Context, e *Event) error
	UpdateConfirmedRequests(ctx context.Context, id int64, confirmed int) error
	Find(ctx context.Context, filter *EventFilter) ([]*Event, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*Event, error)
	ExistsByCategory(ctx context.Context, categoryID int64) (bool, error)
}

// EventService is the initiator- and admin-facing event lifecycle API.
type EventService interface {
	CreateEvent(ctx context.Context, userID int64, in NewEventInput) (*Event, error)
	ListUserEvents(ctx context.Context, userID int64, page PaginationParams) ([]*Event, error)
	GetUserEvent(ctx context.Context, userID, eventID int64) (*Event, error)
	UpdateEventByOwner(ctx context.Context, userID, eventID int64, in UpdateEventInput) (*Event, error)
	UpdateEventByAdmin(ctx context.Context, eventID int64, in UpdateEventInput) (*Event, error)
	SearchEvents(ctx context.Context, q AdminEventQuery) ([]*Event, error)
}

// PublicEventService serves the anonymous read paths, annotated with view counts.
type PublicEventService interface {
	SearchPublishedEvents(ctx context.Context, q PublicEventQuery) ([]*Event, error)
	GetPublishedEvent(ctx context.Context, id int64) (*Event, error)
	// TrackView records a hit; failures are logged and never returned.
	TrackView(ctx context.Context, uri, ip string)
}
