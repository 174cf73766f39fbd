package controllers

import (
	"regexp"
	"time"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

func formatTime(t time.Time) string { return t.Format(domain.DateTimeLayout) }

// UserShortDTO is the public view of an event initiator.
type UserShortDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EventFullDTO is the complete view of one event.
// swagger:model EventFullDTO
type EventFullDTO struct {
	ID                int64           `json:"id"`
	Annotation        string          `json:"annotation"`
	Category          domain.Category `json:"category"`
	ConfirmedRequests int             `json:"confirmedRequests"`
	CreatedOn         string          `json:"createdOn"`
	Description       string          `json:"description"`
	EventDate         string          `json:"eventDate"`
	Initiator         UserShortDTO    `json:"initiator"`
	Location          domain.Location `json:"location"`
	Paid              bool            `json:"paid"`
	ParticipantLimit  int             `json:"participantLimit"`
	PublishedOn       *string         `json:"publishedOn"`
	RequestModeration bool            `json:"requestModeration"`
	State             string          `json:"state"`
	Title             string          `json:"title"`
	Views             int64           `json:"views"`
}

// EventShortDTO is the list view of an event.
// swagger:model EventShortDTO
type EventShortDTO struct {
	ID                int64           `json:"id"`
	Annotation        string          `json:"annotation"`
	Category          domain.Category `json:"category"`
	ConfirmedRequests int             `json:"confirmedRequests"`
	EventDate         string          `json:"eventDate"`
	Initiator         UserShortDTO    `json:"initiator"`
	Paid              bool            `json:"paid"`
	Title             string          `json:"title"`
	Views             int64           `json:"views"`
}

func toEventFull(e *domain.Event) EventFullDTO {
	dto := EventFullDTO{
		ID:                e.ID,
		Annotation:        e.Annotation,
		Category:          e.Category,
		ConfirmedRequests: e.ConfirmedRequests,
		CreatedOn:         formatTime(e.CreatedOn),
		Description:       e.Description,
		EventDate:         formatTime(e.EventDate),
		Initiator:         UserShortDTO{ID: e.Initiator.ID, Name: e.Initiator.Name},
		Location:          e.Location,
		Paid:              e.Paid,
		ParticipantLimit:  e.ParticipantLimit,
		RequestModeration: e.RequestModeration,
		State:             string(e.State),
		Title:             e.Title,
		Views:             e.Views,
	}
	if e.PublishedOn != nil {
		s := formatTime(*e.PublishedOn)
		dto.PublishedOn = &s
	}
	return dto
}

func toEventShort(e *domain.Event) EventShortDTO {
	return EventShortDTO{
		ID:                e.ID,
		Annotation:        e.Annotation,
		Category:          e.Category,
		ConfirmedRequests: e.ConfirmedRequests,
		EventDate:         formatTime(e.EventDate),
		Initiator:         UserShortDTO{ID: e.Initiator.ID, Name: e.Initiator.Name},
		Paid:              e.Paid,
		Title:             e.Title,
		Views:             e.Views,
	}
}

func toEventFullList(events []*domain.Event) []EventFullDTO {
	out := make([]EventFullDTO, 0, len(events))
	for _, e := range events {
		out = append(out, toEventFull(e))
	}
	return out
}

func toEventShortList(events []*domain.Event) []EventShortDTO {
	out := make([]EventShortDTO, 0, len(events))
	for _, e := range events {
		out = append(out, toEventShort(e))
	}
	return out
}

// RequestDTO is the view of a participation request.
// swagger:model RequestDTO
type RequestDTO struct {
	ID        int64  `json:"id"`
	Created   string `json:"created"`
	Event     int64  `json:"event"`
	Requester int64  `json:"requester"`
	Status    string `json:"status"`
}

func toRequest(r *domain.ParticipationRequest) RequestDTO {
	return RequestDTO{
		ID:        r.ID,
		Created:   formatTime(r.Created),
		Event:     r.EventID,
		Requester: r.RequesterID,
		Status:    string(r.Status),
	}
}

func toRequestList(reqs []*domain.ParticipationRequest) []RequestDTO {
	out := make([]RequestDTO, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toRequest(r))
	}
	return out
}

// StatusUpdateResultDTO partitions a moderated batch.
type StatusUpdateResultDTO struct {
	ConfirmedRequests []RequestDTO `json:"confirmedRequests"`
	RejectedRequests  []RequestDTO `json:"rejectedRequests"`
}

// CompilationDTO is the view of a compilation with its events.
// swagger:model CompilationDTO
type CompilationDTO struct {
	ID     int64           `json:"id"`
	Events []EventShortDTO `json:"events"`
	Pinned bool            `json:"pinned"`
	Title  string          `json:"title"`
}

func toCompilation(c *domain.Compilation) CompilationDTO {
	return CompilationDTO{ID: c.ID, Events: toEventShortList(c.Events), Pinned: c.Pinned, Title: c.Title}
}

// NewEventRequest is the request body for POST /users/{userId}/events.
type NewEventRequest struct {
	Annotation        string           `json:"annotation"`
	Category          int64            `json:"category"`
	Description       string           `json:"description"`
	EventDate         string           `json:"eventDate"`
	Location          *domain.Location `json:"location"`
	Paid              bool             `json:"paid"`
	ParticipantLimit  int              `json:"participantLimit"`
	RequestModeration *bool            `json:"requestModeration"`
	Title             string           `json:"title"`
}

// Validate implements Validator.
func (r NewEventRequest) Validate() []string {
	var errs []string
	errs = helpers.CheckBlank(errs, "annotation", r.Annotation)
	errs = helpers.CheckLength(errs, "annotation", r.Annotation, 20, 2000)
	errs = helpers.CheckBlank(errs, "description", r.Description)
	errs = helpers.CheckLength(errs, "description", r.Description, 20, 7000)
	errs = helpers.CheckBlank(errs, "title", r.Title)
	errs = helpers.CheckLength(errs, "title", r.Title, 3, 120)
	if r.Category < 1 {
		errs = append(errs, "category is required")
	}
	if r.EventDate == "" {
		errs = append(errs, "eventDate is required")
	}
	if r.Location == nil {
		errs = append(errs, "location is required")
	}
	if r.ParticipantLimit < 0 {
		errs = append(errs, "participantLimit must be zero or positive")
	}
	return errs
}

func (r NewEventRequest) toInput() (domain.NewEventInput, error) {
	date, err := domain.ParseDateTime(r.EventDate)
	if err != nil {
		return domain.NewEventInput{}, err
	}
	return domain.NewEventInput{
		Annotation:        r.Annotation,
		CategoryID:        r.Category,
		Description:       r.Description,
		EventDate:         date,
		Location:          *r.Location,
		Paid:              r.Paid,
		ParticipantLimit:  r.ParticipantLimit,
		RequestModeration: r.RequestModeration,
		Title:             r.Title,
	}, nil
}

// UpdateEventRequest is the body of both the owner and the admin event PATCH.
// All fields are optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Annotation        *string          `json:"annotation"`
	Category          *int64           `json:"category"`
	Description       *string          `json:"description"`
	EventDate         *string          `json:"eventDate"`
	Location          *domain.Location `json:"location"`
	Paid              *bool            `json:"paid"`
	ParticipantLimit  *int             `json:"participantLimit"`
	RequestModeration *bool            `json:"requestModeration"`
	StateAction       *string          `json:"stateAction"`
	Title             *string          `json:"title"`
}

// Validate implements Validator.
func (r UpdateEventRequest) Validate() []string {
	var errs []string
	if r.Annotation != nil {
		errs = helpers.CheckLength(errs, "annotation", *r.Annotation, 20, 2000)
	}
	if r.Description != nil {
		errs = helpers.CheckLength(errs, "description", *r.Description, 20, 7000)
	}
	if r.Title != nil {
		errs = helpers.CheckLength(errs, "title", *r.Title, 3, 120)
	}
	if r.Category != nil && *r.Category < 1 {
		errs = append(errs, "category must be positive")
	}
	if r.ParticipantLimit != nil && *r.ParticipantLimit < 0 {
		errs = append(errs, "participantLimit must be zero or positive")
	}
	return errs
}

func (r UpdateEventRequest) toInput() (domain.UpdateEventInput, error) {
	in := domain.UpdateEventInput{
		Annotation:        r.Annotation,
		CategoryID:        r.Category,
		Description:       r.Description,
		Location:          r.Location,
		Paid:              r.Paid,
		ParticipantLimit:  r.ParticipantLimit,
		RequestModeration: r.RequestModeration,
		Title:             r.Title,
	}
	if r.EventDate != nil {
		date, err := domain.ParseDateTime(*r.EventDate)
		if err != nil {
			return domain.UpdateEventInput{}, err
		}
		in.EventDate = &date
	}
	if r.StateAction != nil {
		action, err := domain.ParseStateAction(*r.StateAction)
		if err != nil {
			return domain.UpdateEventInput{}, err
		}
		in.StateAction = &action
	}
	return in, nil
}

// StatusUpdateRequest is the body of PATCH /users/{userId}/events/{eventId}/requests.
type StatusUpdateRequest struct {
	RequestIDs []int64 `json:"requestIds"`
	Status     string  `json:"status"`
}

// Validate implements Validator.
func (r StatusUpdateRequest) Validate() []string {
	var errs []string
	if len(r.RequestIDs) == 0 {
		errs = append(errs, "requestIds must not be empty")
	}
	if r.Status == "" {
		errs = append(errs, "status is required")
	}
	return errs
}

// NewUserRequest is the body of POST /admin/users.
type NewUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate implements Validator.
func (r NewUserRequest) Validate() []string {
	var errs []string
	errs = helpers.CheckBlank(errs, "name", r.Name)
	errs = helpers.CheckLength(errs, "name", r.Name, 2, 250)
	errs = helpers.CheckLength(errs, "email", r.Email, 6, 254)
	if !emailRegex.MatchString(r.Email) {
		errs = append(errs, "email must be a valid email address")
	}
	return errs
}

// CategoryRequest is the body of the category create and rename calls.
type CategoryRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (r CategoryRequest) Validate() []string {
	errs := helpers.CheckBlank(nil, "name", r.Name)
	return helpers.CheckLength(errs, "name", r.Name, 1, 50)
}

// NewCompilationRequest is the body of POST /admin/compilations.
type NewCompilationRequest struct {
	Events []int64 `json:"events"`
	Pinned bool    `json:"pinned"`
	Title  string  `json:"title"`
}

// Validate implements Validator.
func (r NewCompilationRequest) Validate() []string {
	errs := helpers.CheckBlank(nil, "title", r.Title)
	return helpers.CheckLength(errs, "title", r.Title, 1, 50)
}

// UpdateCompilationRequest is the body of PATCH /admin/compilations/{compId}.
type UpdateCompilationRequest struct {
	Events *[]int64 `json:"events"`
	Pinned *bool    `json:"pinned"`
	Title  *string  `json:"title"`
}

// Validate implements Validator.
func (r UpdateCompilationRequest) Validate() []string {
	if r.Title == nil {
		return nil
	}
	errs := helpers.CheckBlank(nil, "title", *r.Title)
	return helpers.CheckLength(errs, "title", *r.Title, 1, 50)
}
