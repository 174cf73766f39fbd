package domain

import "time"

// NewRequestFor builds the request userID makes to join e. When e does not
// moderate requests the request is confirmed at once and e's confirmed
// counter is incremented; the caller must persist both in one transaction.
func NewRequestFor(e *Event, requesterID int64, now time.Time) (*ParticipationRequest, error) {
	if e.Initiator.ID == requesterID {
		return nil, ErrInitiatorRequest
	}
	if e.State != EventStatePublished {
		return nil, ErrEventNotPublished
	}
	if e.IsFull() {
		return nil, ErrParticipantLimit
	}
	req := &ParticipationRequest{
		EventID:     e.ID,
		RequesterID: requesterID,
		Status:      RequestStatusPending,
		Created:     now,
	}
	if !e.RequestModeration {
		req.Status = RequestStatusConfirmed
		e.ConfirmedRequests++
	}
	return req, nil
}

// Admit resolves a batch of moderation decisions for e against its remaining
// capacity. reqs must be in the order the caller supplied them.
//
// Events without moderation or without a participant limit admit
// unconditionally: every request is reported as confirmed and nothing changes.
// Otherwise the batch must be all PENDING. A REJECTED decision rejects every
// request. A CONFIRMED decision confirms requests in order while seats remain
// and rejects the rest.
//
// Statuses are changed in place and e.ConfirmedRequests is advanced; the
// caller persists the result.
func Admit(e *Event, reqs []*ParticipationRequest, decision RequestStatus) (*StatusUpdateResult, error) {
	res := &StatusUpdateResult{
		Confirmed: []*ParticipationRequest{},
		Rejected:  []*ParticipationRequest{},
	}
	if !e.RequestModeration || !e.HasParticipantLimit() {
		res.Confirmed = append(res.Confirmed, reqs...)
		return res, nil
	}
	if e.IsFull() {
		return nil, ErrParticipantLimit
	}
	for _, r := range reqs {
		if r.Status != RequestStatusPending {
			return nil, ErrRequestNotPending
		}
	}

	switch decision {
	case RequestStatusRejected:
		for _, r := range reqs {
			r.Status = RequestStatusRejected
			res.Rejected = append(res.Rejected, r)
		}
		return res, nil
	case RequestStatusConfirmed:
		reserve := e.ParticipantLimit - e.ConfirmedRequests
		for _, r := range reqs {
			if reserve > 0 {
				r.Status = RequestStatusConfirmed
				res.Confirmed = append(res.Confirmed, r)
				e.ConfirmedRequests++
				reserve--
				continue
			}
			r.Status = RequestStatusRejected
			res.Rejected = append(res.Rejected, r)
		}
		return res, nil
	default:
		return nil, Validationf("status must be CONFIRMED or REJECTED, got %q", decision)
	}
}

// IDs returns the ids of reqs in order.
func IDs(reqs []*ParticipationRequest) []int64 {
	ids := make([]int64, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.ID)
	}
	return ids
}
