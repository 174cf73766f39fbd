package domain

import "time"

// StateAction is a transition requested on an event.
type StateAction string

const (
	StateActionPublish      StateAction = "PUBLISH_EVENT"
	StateActionReject       StateAction = "REJECT_EVENT"
	StateActionSendToReview StateAction = "SEND_TO_REVIEW"
	StateActionCancelReview StateAction = "CANCEL_REVIEW"
)

// ParseStateAction converts s into a StateAction. Unknown values are a conflict.
func ParseStateAction(s string) (StateAction, error) {
	switch a := StateAction(s); a {
	case StateActionPublish, StateActionReject, StateActionSendToReview, StateActionCancelReview:
		return a, nil
	default:
		return "", ErrInvalidStateAction
	}
}

// Minimum interval between now and an event's date.
const (
	OwnerLeadTime = 2 * time.Hour
	AdminLeadTime = time.Hour
)

// ValidateLeadTime fails when eventDate is earlier than now+lead.
func ValidateLeadTime(eventDate, now time.Time, lead time.Duration) error {
	if eventDate.Before(now.Add(lead)) {
		return Validationf("event date must be at least %v after now, got %s",
			lead, eventDate.Format(DateTimeLayout))
	}
	return nil
}

// SubmitForReview prepares a freshly created event: it checks the owner lead
// time and places the event in the moderation queue.
func SubmitForReview(e *Event, now time.Time) error {
	if err := ValidateLeadTime(e.EventDate, now, OwnerLeadTime); err != nil {
		return err
	}
	e.State = EventStatePending
	e.ConfirmedRequests = 0
	e.CreatedOn = now
	e.PublishedOn = nil
	return nil
}

// ApplyAdminTransition moves e according to an administrator's action.
func ApplyAdminTransition(e *Event, action StateAction, now time.Time) error {
	switch action {
	case StateActionPublish:
		if e.State != EventStatePending {
			return ErrPublishNotPending
		}
		e.State = EventStatePublished
		published := now
		e.PublishedOn = &published
		return nil
	case StateActionReject:
		if e.State == EventStatePublished {
			return ErrRejectPublished
		}
		e.State = EventStateCanceled
		return nil
	default:
		return ErrInvalidStateAction
	}
}

// ApplyOwnerTransition moves e according to its initiator's action. There is
// no guard on the current state.
func ApplyOwnerTransition(e *Event, action StateAction) error {
	switch action {
	case StateActionSendToReview:
		e.State = EventStatePending
		return nil
	case StateActionCancelReview:
		e.State = EventStateCanceled
		return nil
	default:
		return ErrInvalidStateAction
	}
}
