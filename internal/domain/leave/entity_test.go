package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaveRequestStatus_CanTransitionTo(t *testing.T) {
	all := []LeaveRequestStatus{StatusPending, StatusApproved, StatusDenied, StatusCancelled}

	for _, from := range all {
		for _, to := range all {
			want := from == StatusPending && to != StatusPending
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestLeaveRequest_Transition(t *testing.T) {
	now := time.Date(2024, time.January, 2, 9, 0, 0, 0, time.UTC)
	managerID := "m1"

	req := LeaveRequest{ID: "r1", Status: StatusPending}
	require.NoError(t, req.Transition(StatusApproved, &managerID, now))
	assert.Equal(t, StatusApproved, req.Status)
	assert.Equal(t, &managerID, req.ManagerID)
	assert.Equal(t, now, req.UpdatedAt)

	err := req.Transition(StatusDenied, &managerID, now)
	var transition *InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, StatusApproved, transition.From)
	assert.Equal(t, StatusDenied, transition.To)
	assert.Equal(t, StatusApproved, req.Status)
}

func TestParseDecision(t *testing.T) {
	for _, s := range []string{"approved", "denied"} {
		got, err := ParseDecision(s)
		require.NoError(t, err)
		assert.Equal(t, LeaveRequestStatus(s), got)
	}
	for _, s := range []string{"pending", "cancelled", "APPROVED", ""} {
		_, err := ParseDecision(s)
		assert.ErrorIs(t, err, ErrInvalidDecision)
	}
}

func TestInsufficientBalanceError_Message(t *testing.T) {
	err := &InsufficientBalanceError{Available: 2, Requested: 3}
	assert.Equal(t, "insufficient vacation days: available 2, requested 3", err.Error())

	err.ExcludeWeekends = true
	assert.Equal(t, "insufficient vacation days: available 2, requested 3 (weekends excluded)", err.Error())
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}
