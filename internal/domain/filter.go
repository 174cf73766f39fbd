package domain

import (
	"strings"
	"time"
)

// EventSort selects the ordering of an event listing.
type EventSort string

const (
	SortByIDDesc    EventSort = "ID_DESC"
	SortByEventDate EventSort = "EVENT_DATE"
	SortByViews     EventSort = "VIEWS"
)

// ParseEventSort converts s into an EventSort; empty means SortByIDDesc.
func ParseEventSort(s string) (EventSort, error) {
	switch st := EventSort(s); st {
	case "":
		return SortByIDDesc, nil
	case SortByIDDesc, SortByEventDate, SortByViews:
		return st, nil
	default:
		return "", Validationf("unknown sort %q", s)
	}
}

// Clause is one named predicate over events. Storage layers translate the
// concrete clause types; Matches evaluates the same predicate in memory.
type Clause interface {
	Name() string
	Matches(e *Event) bool
}

// EventFilter is a conjunction of clauses plus ordering and paging.
// A filter with no clauses matches every event.
type EventFilter struct {
	Clauses []Clause
	Sort    EventSort
	Page    PaginationParams
}

// NewEventFilter returns an empty filter ordered by id descending.
func NewEventFilter() *EventFilter {
	return &EventFilter{Sort: SortByIDDesc}
}

// Where adds c to the conjunction. A nil clause adds nothing.
func (f *EventFilter) Where(c Clause) *EventFilter {
	if c != nil {
		f.Clauses = append(f.Clauses, c)
	}
	return f
}

// Matches reports whether e satisfies every clause.
func (f *EventFilter) Matches(e *Event) bool {
	for _, c := range f.Clauses {
		if !c.Matches(e) {
			return false
		}
	}
	return true
}

// InitiatorIn restricts events to those created by one of ids.
type InitiatorIn struct{ IDs []int64 }

func (InitiatorIn) Name() string { return "initiator_in" }

func (c InitiatorIn) Matches(e *Event) bool { return containsID(c.IDs, e.Initiator.ID) }

// StateIn restricts events to the given states.
type StateIn struct{ States []EventState }

func (StateIn) Name() string { return "state_in" }

func (c StateIn) Matches(e *Event) bool {
	for _, s := range c.States {
		if e.State == s {
			return true
		}
	}
	return false
}

// CategoryIn restricts events to the given categories.
type CategoryIn struct{ IDs []int64 }

func (CategoryIn) Name() string { return "category_in" }

func (c CategoryIn) Matches(e *Event) bool { return containsID(c.IDs, e.Category.ID) }

// TextMatch is a case-insensitive substring match on annotation or description.
type TextMatch struct{ Text string }

func (TextMatch) Name() string { return "text" }

func (c TextMatch) Matches(e *Event) bool {
	t := strings.ToLower(c.Text)
	return strings.Contains(strings.ToLower(e.Annotation), t) ||
		strings.Contains(strings.ToLower(e.Description), t)
}

// PaidIs restricts events by their paid flag.
type PaidIs struct{ Paid bool }

func (PaidIs) Name() string { return "paid" }

func (c PaidIs) Matches(e *Event) bool { return e.Paid == c.Paid }

// DateAfter keeps events strictly after T.
type DateAfter struct{ T time.Time }

func (DateAfter) Name() string { return "date_after" }

func (c DateAfter) Matches(e *Event) bool { return e.EventDate.After(c.T) }

// DateBefore keeps events strictly before T.
type DateBefore struct{ T time.Time }

func (DateBefore) Name() string { return "date_before" }

func (c DateBefore) Matches(e *Event) bool { return e.EventDate.Before(c.T) }

// DateBetween keeps events within [Start, End], both inclusive.
type DateBetween struct{ Start, End time.Time }

func (DateBetween) Name() string { return "date_between" }

func (c DateBetween) Matches(e *Event) bool {
	return !e.EventDate.Before(c.Start) && !e.EventDate.After(c.End)
}

// Available drops limited events whose seats are all taken.
type Available struct{}

func (Available) Name() string { return "available" }

func (Available) Matches(e *Event) bool { return !e.IsFull() }

// ByInitiators returns an InitiatorIn clause, or nil when ids is empty.
func ByInitiators(ids []int64) Clause {
	if len(ids) == 0 {
		return nil
	}
	return InitiatorIn{IDs: ids}
}

// ByStates returns a StateIn clause, or nil when states is empty.
func ByStates(states []EventState) Clause {
	if len(states) == 0 {
		return nil
	}
	return StateIn{States: states}
}

// ByCategories returns a CategoryIn clause, or nil when ids is empty.
func ByCategories(ids []int64) Clause {
	if len(ids) == 0 {
		return nil
	}
	return CategoryIn{IDs: ids}
}

// ByText returns a TextMatch clause, or nil for blank text.
func ByText(text string) Clause {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return TextMatch{Text: text}
}

// ByPaid returns a PaidIs clause, or nil when paid is unset.
func ByPaid(paid *bool) Clause {
	if paid == nil {
		return nil
	}
	return PaidIs{Paid: *paid}
}

// ByDateWindow resolves optional bounds into one clause; nil when both are absent.
func ByDateWindow(start, end *time.Time) Clause {
	switch {
	case start == nil && end == nil:
		return nil
	case start == nil:
		return DateBefore{T: *end}
	case end == nil:
		return DateAfter{T: *start}
	default:
		return DateBetween{Start: *start, End: *end}
	}
}

// OnlyAvailable returns an Available clause when enabled.
func OnlyAvailable(enabled bool) Clause {
	if !enabled {
		return nil
	}
	return Available{}
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func validateRange(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return Validationf("rangeStart must not be after rangeEnd")
	}
	return nil
}

// AdminEventQuery holds the criteria of the administrative event search.
type AdminEventQuery struct {
	Users      []int64
	States     []EventState
	Categories []int64
	RangeStart *time.Time
	RangeEnd   *time.Time
	Page       PaginationParams
}

// Filter builds the event filter for q.
func (q AdminEventQuery) Filter() (*EventFilter, error) {
	if err := validateRange(q.RangeStart, q.RangeEnd); err != nil {
		return nil, err
	}
	f := NewEventFilter().
		Where(ByInitiators(q.Users)).
		Where(ByStates(q.States)).
		Where(ByCategories(q.Categories)).
		Where(ByDateWindow(q.RangeStart, q.RangeEnd))
	f.Page = q.Page
	return f, nil
}

// PublicEventQuery holds the criteria of the public event search.
type PublicEventQuery struct {
	Text          string
	Categories    []int64
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
	Sort          EventSort
	Page          PaginationParams
}

// Filter builds the event filter for q. Only published events are matched and,
// without explicit bounds, only events after now.
func (q PublicEventQuery) Filter(now time.Time) (*EventFilter, error) {
	if err := validateRange(q.RangeStart, q.RangeEnd); err != nil {
		return nil, err
	}
	window := ByDateWindow(q.RangeStart, q.RangeEnd)
	if window == nil {
		window = DateAfter{T: now}
	}
	f := NewEventFilter().
		Where(StateIn{States: []EventState{EventStatePublished}}).
		Where(ByText(q.Text)).
		Where(ByCategories(q.Categories)).
		Where(ByPaid(q.Paid)).
		Where(window).
		Where(OnlyAvailable(q.OnlyAvailable))
	if q.Sort != "" {
		f.Sort = q.Sort
	}
	f.Page = q.Page
	return f, nil
}
