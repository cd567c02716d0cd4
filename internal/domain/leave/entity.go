package leave

import (
	"fmt"
	"time"
)

type LeaveRequestStatus string

const (
	StatusPending   LeaveRequestStatus = "pending"
	StatusApproved  LeaveRequestStatus = "approved"
	StatusDenied    LeaveRequestStatus = "denied"
	StatusCancelled LeaveRequestStatus = "cancelled"
)

func ParseStatus(s string) (LeaveRequestStatus, error) {
	switch LeaveRequestStatus(s) {
	case StatusPending, StatusApproved, StatusDenied, StatusCancelled:
		return LeaveRequestStatus(s), nil
	default:
		return "", fmt.Errorf("invalid status %q", s)
	}
}

// ParseDecision accepts only the statuses a manager may choose.
func ParseDecision(s string) (LeaveRequestStatus, error) {
	switch LeaveRequestStatus(s) {
	case StatusApproved, StatusDenied:
		return LeaveRequestStatus(s), nil
	default:
		return "", ErrInvalidDecision
	}
}

func (s LeaveRequestStatus) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusDenied, StatusCancelled:
		return true
	case StatusPending:
		return false
	}
	return false
}

// CanTransitionTo reports whether next is reachable from s.
func (s LeaveRequestStatus) CanTransitionTo(next LeaveRequestStatus) bool {
	return s == StatusPending && next.IsTerminal()
}

// LeaveRequest entity
type LeaveRequest struct {
	ID        string
	CompanyID string
	UserID    string

	StartDate Date
	EndDate   Date
	DaysCount int

	Status    LeaveRequestStatus
	ManagerID *string
	Note      *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	UserName    string
	UserEmail   string
	ManagerName *string
}

// Transition moves the request to next, recording who resolved it.
func (r *LeaveRequest) Transition(next LeaveRequestStatus, resolverID *string, at time.Time) error {
	if !r.Status.CanTransitionTo(next) {
		return &InvalidTransitionError{RequestID: r.ID, From: r.Status, To: next}
	}
	r.Status = next
	r.ManagerID = resolverID
	r.UpdatedAt = at
	return nil
}
