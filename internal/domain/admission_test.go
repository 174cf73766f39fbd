package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pending(ids ...int64) []*ParticipationRequest {
	out := make([]*ParticipationRequest, 0, len(ids))
	for _, id := range ids {
		out = append(out, &ParticipationRequest{ID: id, EventID: 1, Status: RequestStatusPending})
	}
	return out
}

func TestNewRequestFor(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	published := func() *Event {
		return &Event{ID: 1, Initiator: User{ID: 10}, State: EventStatePublished, RequestModeration: true, ParticipantLimit: 2}
	}

	tests := []struct {
		name          string
		event         func() *Event
		requester     int64
		wantErr       error
		wantStatus    RequestStatus
		wantConfirmed int
	}{
		{name: "initiator", event: published, requester: 10, wantErr: ErrInitiatorRequest},
		{
			name: "not published",
			event: func() *Event {
				e := published()
				e.State = EventStatePending
				return e
			},
			requester: 20, wantErr: ErrEventNotPublished,
		},
		{
			name: "limit reached",
			event: func() *Event {
				e := published()
				e.ConfirmedRequests = 2
				return e
			},
			requester: 20, wantErr: ErrParticipantLimit,
		},
		{name: "moderated goes pending", event: published, requester: 20, wantStatus: RequestStatusPending, wantConfirmed: 0},
		{
			name: "unmoderated confirms",
			event: func() *Event {
				e := published()
				e.RequestModeration = false
				return e
			},
			requester: 20, wantStatus: RequestStatusConfirmed, wantConfirmed: 1,
		},
		{
			name: "unlimited with counter",
			event: func() *Event {
				e := published()
				e.ParticipantLimit = 0
				e.ConfirmedRequests = 50
				e.RequestModeration = false
				return e
			},
			requester: 20, wantStatus: RequestStatusConfirmed, wantConfirmed: 51,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.event()
			req, err := NewRequestFor(e, tt.requester, now)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.True(t, errors.Is(err, ErrConflict))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, req.Status)
			assert.Equal(t, tt.requester, req.RequesterID)
			assert.Equal(t, e.ID, req.EventID)
			assert.Equal(t, now, req.Created)
			assert.Equal(t, tt.wantConfirmed, e.ConfirmedRequests)
		})
	}
}

func TestNewRequestFor_UnmoderatedLimitAdmitsExactlyN(t *testing.T) {
	e := &Event{ID: 1, Initiator: User{ID: 1}, State: EventStatePublished, ParticipantLimit: 3}
	for i := int64(0); i < 3; i++ {
		req, err := NewRequestFor(e, 100+i, time.Now())
		require.NoError(t, err)
		require.Equal(t, RequestStatusConfirmed, req.Status)
	}
	_, err := NewRequestFor(e, 200, time.Now())
	require.ErrorIs(t, err, ErrParticipantLimit)
	require.Equal(t, 3, e.ConfirmedRequests)
}

func TestAdmit_SpilloverToRejected(t *testing.T) {
	e := &Event{ParticipantLimit: 2, RequestModeration: true}
	reqs := pending(1, 2, 3)

	res, err := Admit(e, reqs, RequestStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, IDs(res.Confirmed))
	assert.Equal(t, []int64{3}, IDs(res.Rejected))
	assert.Equal(t, 2, e.ConfirmedRequests)
	assert.Equal(t, RequestStatusRejected, reqs[2].Status)
}

func TestAdmit_KeepsCallerOrder(t *testing.T) {
	e := &Event{ParticipantLimit: 5, ConfirmedRequests: 3, RequestModeration: true}
	res, err := Admit(e, pending(9, 4, 7, 1), RequestStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, []int64{9, 4}, IDs(res.Confirmed))
	assert.Equal(t, []int64{7, 1}, IDs(res.Rejected))
	assert.Equal(t, 5, e.ConfirmedRequests)
}

func TestAdmit_RejectDecision(t *testing.T) {
	e := &Event{ParticipantLimit: 5, ConfirmedRequests: 1, RequestModeration: true}
	res, err := Admit(e, pending(1, 2), RequestStatusRejected)
	require.NoError(t, err)
	assert.Empty(t, res.Confirmed)
	assert.Equal(t, []int64{1, 2}, IDs(res.Rejected))
	assert.Equal(t, 1, e.ConfirmedRequests)
}

func TestAdmit_FastPath(t *testing.T) {
	tests := []struct {
		name  string
		event *Event
	}{
		{name: "no moderation", event: &Event{ParticipantLimit: 1, ConfirmedRequests: 1, RequestModeration: false}},
		{name: "no limit", event: &Event{ParticipantLimit: 0, RequestModeration: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqs := pending(1, 2)
			reqs[1].Status = RequestStatusRejected
			before := tt.event.ConfirmedRequests

			res, err := Admit(tt.event, reqs, RequestStatusRejected)
			require.NoError(t, err)
			assert.Equal(t, []int64{1, 2}, IDs(res.Confirmed))
			assert.Empty(t, res.Rejected)
			assert.Equal(t, RequestStatusRejected, reqs[1].Status)
			assert.Equal(t, before, tt.event.ConfirmedRequests)
		})
	}
}

func TestAdmit_Conflicts(t *testing.T) {
	full := &Event{ParticipantLimit: 2, ConfirmedRequests: 2, RequestModeration: true}
	_, err := Admit(full, pending(1), RequestStatusConfirmed)
	require.ErrorIs(t, err, ErrParticipantLimit)

	e := &Event{ParticipantLimit: 2, RequestModeration: true}
	reqs := pending(1, 2)
	reqs[1].Status = RequestStatusConfirmed
	_, err = Admit(e, reqs, RequestStatusConfirmed)
	require.ErrorIs(t, err, ErrRequestNotPending)
	assert.Equal(t, RequestStatusPending, reqs[0].Status)
	assert.Equal(t, 0, e.ConfirmedRequests)
}

func TestAdmit_InvalidDecision(t *testing.T) {
	e := &Event{ParticipantLimit: 2, RequestModeration: true}
	_, err := Admit(e, pending(1), RequestStatusCanceled)
	require.ErrorIs(t, err, ErrValidation)
}

func TestAdmit_NeverOverbooks(t *testing.T) {
	for limit := 1; limit <= 5; limit++ {
		for confirmed := 0; confirmed < limit; confirmed++ {
			for batch := 0; batch <= 7; batch++ {
				e := &Event{ParticipantLimit: limit, ConfirmedRequests: confirmed, RequestModeration: true}
				ids := make([]int64, batch)
				for i := range ids {
					ids[i] = int64(i + 1)
				}
				res, err := Admit(e, pending(ids...), RequestStatusConfirmed)
				require.NoError(t, err)
				require.LessOrEqual(t, e.ConfirmedRequests, limit)
				require.Len(t, append(res.Confirmed, res.Rejected...), batch)
				want := min(batch, limit-confirmed)
				require.Len(t, res.Confirmed, want)
			}
		}
	}
}

func TestParseDecision(t *testing.T) {
	st, err := ParseDecision("CONFIRMED")
	require.NoError(t, err)
	assert.Equal(t, RequestStatusConfirmed, st)

	_, err = ParseDecision("PENDING")
	require.ErrorIs(t, err, ErrValidation)
}
