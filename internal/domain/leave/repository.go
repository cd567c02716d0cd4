package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for vacation_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveRequest, error)
	// GetByIDForUpdate locks the request row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, companyID, id string) (LeaveRequest, error)
	// UpdateStatus applies the transition only while the stored status still equals from.
	// It reports false when another writer resolved the request first.
	UpdateStatus(ctx context.Context, companyID, id string, from, to LeaveRequestStatus, managerID *string, at time.Time) (bool, error)
	List(ctx context.Context, companyID string, filter ListFilter) ([]LeaveRequest, int64, error)
	ListOverlapping(ctx context.Context, companyID string, from, to Date, statuses []LeaveRequestStatus) ([]LeaveRequest, error)
}

// ListFilter narrows a tenant's request list.
type ListFilter struct {
	UserID *string
	Status *LeaveRequestStatus
	Page   int
	Limit  int
}
