package leave

import (
	"context"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/user"
)

type LeaveService interface {
	Submit(ctx context.Context, actor user.Actor, req SubmitRequest) (LeaveRequestResponse, error)
	Decide(ctx context.Context, actor user.Actor, req DecideRequest) error
	Cancel(ctx context.Context, actor user.Actor, requestID string) error
	Get(ctx context.Context, actor user.Actor, requestID string) (LeaveRequestResponse, error)
	List(ctx context.Context, actor user.Actor, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	Calendar(ctx context.Context, actor user.Actor, filter CalendarFilter) ([]LeaveRequestResponse, error)
	GetBalance(ctx context.Context, actor user.Actor) (BalanceResponse, error)
}

// BalanceLedger tracks total and used vacation days per person.
type BalanceLedger interface {
	Available(ctx context.Context, companyID, userID string) (int, error)
	// ReserveOnApproval must run inside the transaction that resolves the request.
	ReserveOnApproval(ctx context.Context, companyID, userID string, days int) error
	// AdjustTotal does not validate against used days; available may go negative.
	AdjustTotal(ctx context.Context, companyID, userID string, newTotal int) error
}
