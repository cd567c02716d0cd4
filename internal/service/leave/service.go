package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.LeaveRequestRepository
	user.UserRepository
	policies company.PolicySource
	ledger   leave.BalanceLedger
	sink     notification.Sink
	now      func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	leaveRequestRepo leave.LeaveRequestRepository,
	userRepo user.UserRepository,
	policies company.PolicySource,
	ledger leave.BalanceLedger,
	sink notification.Sink,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveRequestRepository: leaveRequestRepo,
		UserRepository:         userRepo,
		policies:               policies,
		ledger:                 ledger,
		sink:                   sink,
		now:                    time.Now,
	}
}

// Submit implements leave.LeaveService. The balance is checked without locking;
// it is checked again under lock when the request is approved.
func (l *LeaveServiceImpl) Submit(ctx context.Context, actor user.Actor, req leave.SubmitRequest) (leave.LeaveRequestResponse, error) {
	if !user.HasPermission(actor.Role, user.PermissionLeaveCreate) {
		return leave.LeaveRequestResponse{}, &leave.RoleNotEligibleError{Role: actor.Role}
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, err := leave.ParseDate(req.StartDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("invalid start_date: %w", err)
	}
	endDate, err := leave.ParseDate(req.EndDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("invalid end_date: %w", err)
	}

	policy, err := l.policies.GetPolicy(ctx, actor.CompanyID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get company policy: %w", err)
	}

	days, err := leave.CountWorkingDays(startDate, endDate, policy.ExcludeWeekends)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	requester, err := l.UserRepository.GetByID(ctx, actor.CompanyID, actor.UserID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get requester: %w", err)
	}

	available, err := l.ledger.Available(ctx, actor.CompanyID, actor.UserID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if days > available {
		return leave.LeaveRequestResponse{}, &leave.InsufficientBalanceError{
			Available:       available,
			Requested:       days,
			ExcludeWeekends: policy.ExcludeWeekends,
		}
	}

	created, err := l.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		CompanyID: actor.CompanyID,
		UserID:    actor.UserID,
		StartDate: startDate,
		EndDate:   endDate,
		DaysCount: days,
		Status:    leave.StatusPending,
		Note:      req.Note,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create vacation request: %w", err)
	}
	created.UserName = requester.Name
	created.UserEmail = requester.Email

	approvers, err := l.UserRepository.ListIDsByRoles(ctx, actor.CompanyID, user.RoleManager, user.RoleAdmin)
	if err != nil {
		slog.Error("failed to resolve approvers", "company_id", actor.CompanyID, "request_id", created.ID, "error", err)
	} else {
		l.sink.Deliver(ctx, actor.CompanyID, approvers,
			fmt.Sprintf("New vacation request from %s (%d days)", requester.Name, days),
			notification.TypeNewRequest,
		)
	}

	return leave.ToResponse(created), nil
}

// Decide implements leave.LeaveService. The status change and the ledger update
// commit together; when either fails the request stays pending.
func (l *LeaveServiceImpl) Decide(ctx context.Context, actor user.Actor, req leave.DecideRequest) error {
	if !user.HasPermission(actor.Role, user.PermissionLeaveApprove) {
		return &leave.InsufficientPermissionError{Role: actor.Role, Action: "decide vacation requests"}
	}
	if err := req.Validate(); err != nil {
		return err
	}
	decision, err := leave.ParseDecision(req.Status)
	if err != nil {
		return err
	}
	if !validator.IsValidUUID(req.RequestID) {
		return &leave.NotFoundError{Resource: "vacation request", ID: req.RequestID}
	}

	var decided leave.LeaveRequest
	err = l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		request, err := l.LeaveRequestRepository.GetByIDForUpdate(txCtx, actor.CompanyID, req.RequestID)
		if err != nil {
			return err
		}

		at := l.now()
		if err := request.Transition(decision, &actor.UserID, at); err != nil {
			return err
		}

		if decision == leave.StatusApproved {
			if err := l.ledger.ReserveOnApproval(txCtx, actor.CompanyID, request.UserID, request.DaysCount); err != nil {
				var balanceErr *leave.InsufficientBalanceError
				if errors.As(err, &balanceErr) {
					if policy, policyErr := l.policies.GetPolicy(txCtx, actor.CompanyID); policyErr == nil {
						balanceErr.ExcludeWeekends = policy.ExcludeWeekends
					}
				}
				return err
			}
		}

		applied, err := l.LeaveRequestRepository.UpdateStatus(txCtx, actor.CompanyID, request.ID,
			leave.StatusPending, decision, &actor.UserID, at)
		if err != nil {
			return err
		}
		if !applied {
			return l.lostTransition(txCtx, actor.CompanyID, request.ID, decision)
		}

		decided = request
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("vacation request decided",
		"company_id", actor.CompanyID,
		"request_id", decided.ID,
		"status", decided.Status,
		"manager_id", actor.UserID,
	)

	verb := "approved"
	if decision == leave.StatusDenied {
		verb = "denied"
	}
	l.sink.Deliver(ctx, actor.CompanyID, []string{decided.UserID},
		fmt.Sprintf("Your vacation request from %s to %s was %s", decided.StartDate, decided.EndDate, verb),
		notification.TypeRequestUpdate,
	)
	return nil
}

// Cancel implements leave.LeaveService. Only the owner may cancel, and only while pending.
func (l *LeaveServiceImpl) Cancel(ctx context.Context, actor user.Actor, requestID string) error {
	if !validator.IsValidUUID(requestID) {
		return &leave.NotFoundError{Resource: "vacation request", ID: requestID}
	}

	return l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		request, err := l.LeaveRequestRepository.GetByIDForUpdate(txCtx, actor.CompanyID, requestID)
		if err != nil {
			return err
		}
		if request.UserID != actor.UserID {
			return &leave.InsufficientPermissionError{Role: actor.Role, Action: "cancel another user's request"}
		}

		at := l.now()
		if err := request.Transition(leave.StatusCancelled, nil, at); err != nil {
			return err
		}

		applied, err := l.LeaveRequestRepository.UpdateStatus(txCtx, actor.CompanyID, request.ID,
			leave.StatusPending, leave.StatusCancelled, nil, at)
		if err != nil {
			return err
		}
		if !applied {
			return l.lostTransition(txCtx, actor.CompanyID, request.ID, leave.StatusCancelled)
		}
		return nil
	})
}

// lostTransition reports the status a concurrent writer left the request in.
func (l *LeaveServiceImpl) lostTransition(ctx context.Context, companyID, requestID string, to leave.LeaveRequestStatus) error {
	current, err := l.LeaveRequestRepository.GetByID(ctx, companyID, requestID)
	if err != nil {
		return fmt.Errorf("failed to reload vacation request: %w", err)
	}
	return &leave.InvalidTransitionError{RequestID: requestID, From: current.Status, To: to}
}

// Get implements leave.LeaveService.
func (l *LeaveServiceImpl) Get(ctx context.Context, actor user.Actor, requestID string) (leave.LeaveRequestResponse, error) {
	if !validator.IsValidUUID(requestID) {
		return leave.LeaveRequestResponse{}, &leave.NotFoundError{Resource: "vacation request", ID: requestID}
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, actor.CompanyID, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if !user.HasPermission(actor.Role, user.PermissionLeaveViewAll) && request.UserID != actor.UserID {
		return leave.LeaveRequestResponse{}, &leave.InsufficientPermissionError{Role: actor.Role, Action: "view another user's request"}
	}

	return leave.ToResponse(request), nil
}

// List implements leave.LeaveService. Employees only see their own requests.
func (l *LeaveServiceImpl) List(ctx context.Context, actor user.Actor, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	repoFilter := leave.ListFilter{Page: filter.Page, Limit: filter.Limit}
	if !user.HasPermission(actor.Role, user.PermissionLeaveViewAll) {
		repoFilter.UserID = &actor.UserID
	}
	if filter.Status != nil {
		status := leave.LeaveRequestStatus(*filter.Status)
		repoFilter.Status = &status
	}

	requests, totalCount, err := l.LeaveRequestRepository.List(ctx, actor.CompanyID, repoFilter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list vacation requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToResponse(r))
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(filter.Limit)))

	start := (filter.Page-1)*filter.Limit + 1
	end := start + len(responses) - 1
	if end > int(totalCount) {
		end = int(totalCount)
	}

	showing := fmt.Sprintf("%d-%d of %d results", start, end, totalCount)
	if totalCount == 0 {
		showing = "0 results"
	}

	return leave.ListLeaveRequestResponse{
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Requests:   responses,
	}, nil
}

// Calendar implements leave.LeaveService. It shows the pending and approved
// absences of the whole company that overlap the window.
func (l *LeaveServiceImpl) Calendar(ctx context.Context, actor user.Actor, filter leave.CalendarFilter) ([]leave.LeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	from, err := leave.ParseDate(filter.From)
	if err != nil {
		return nil, fmt.Errorf("invalid from: %w", err)
	}
	to, err := leave.ParseDate(filter.To)
	if err != nil {
		return nil, fmt.Errorf("invalid to: %w", err)
	}

	requests, err := l.LeaveRequestRepository.ListOverlapping(ctx, actor.CompanyID, from, to,
		[]leave.LeaveRequestStatus{leave.StatusPending, leave.StatusApproved})
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar entries: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToResponse(r))
	}
	return responses, nil
}

// GetBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) GetBalance(ctx context.Context, actor user.Actor) (leave.BalanceResponse, error) {
	u, err := l.UserRepository.GetByID(ctx, actor.CompanyID, actor.UserID)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	if !u.HoldsVacationDays() {
		return leave.BalanceResponse{}, &leave.RoleNotEligibleError{Role: u.Role}
	}

	policy, err := l.policies.GetPolicy(ctx, actor.CompanyID)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to get company policy: %w", err)
	}

	return leave.BalanceResponse{
		Total:           u.VacationDaysTotal,
		Used:            u.VacationDaysUsed,
		Available:       u.AvailableDays(),
		ExcludeWeekends: policy.ExcludeWeekends,
	}, nil
}
