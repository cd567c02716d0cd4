package leave

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/user"
)

var (
	ErrInvalidRange           = errors.New("invalid date range")
	ErrInsufficientBalance    = errors.New("insufficient vacation days")
	ErrRoleNotEligible        = errors.New("role not eligible for vacation days")
	ErrInsufficientPermission = errors.New("insufficient permissions")
	ErrNotFound               = errors.New("not found")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrInvalidDecision        = errors.New("decision must be approved or denied")
)

type InvalidRangeError struct {
	Start Date
	End   Date
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: end date %s is before start date %s", e.End, e.Start)
}

func (e *InvalidRangeError) Unwrap() error { return ErrInvalidRange }

// InsufficientBalanceError carries the counts needed to tell the user what is missing.
type InsufficientBalanceError struct {
	Available       int
	Requested       int
	ExcludeWeekends bool
}

func (e *InsufficientBalanceError) Error() string {
	msg := fmt.Sprintf("insufficient vacation days: available %d, requested %d", e.Available, e.Requested)
	if e.ExcludeWeekends {
		msg += " (weekends excluded)"
	}
	return msg
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

type RoleNotEligibleError struct {
	Role user.Role
}

func (e *RoleNotEligibleError) Error() string {
	return fmt.Sprintf("role %s does not hold vacation days", e.Role)
}

func (e *RoleNotEligibleError) Unwrap() error { return ErrRoleNotEligible }

type InsufficientPermissionError struct {
	Role   user.Role
	Action string
}

func (e *InsufficientPermissionError) Error() string {
	return fmt.Sprintf("insufficient permissions: role %s may not %s", e.Role, e.Action)
}

func (e *InsufficientPermissionError) Unwrap() error { return ErrInsufficientPermission }

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

type InvalidTransitionError struct {
	RequestID string
	From      LeaveRequestStatus
	To        LeaveRequestStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("vacation request %s is %s and cannot become %s", e.RequestID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }
