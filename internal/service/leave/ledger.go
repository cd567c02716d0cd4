package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/user"
)

// Ledger keeps the total and used vacation days stored on each user row.
type Ledger struct {
	users user.UserRepository
	sink  notification.Sink
}

func NewLedger(users user.UserRepository, sink notification.Sink) *Ledger {
	return &Ledger{users: users, sink: sink}
}

func eligible(u user.User) error {
	if !u.HoldsVacationDays() {
		return &leave.RoleNotEligibleError{Role: u.Role}
	}
	return nil
}

// Available implements leave.BalanceLedger.
func (l *Ledger) Available(ctx context.Context, companyID, userID string) (int, error) {
	u, err := l.users.GetByID(ctx, companyID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get user: %w", err)
	}
	if err := eligible(u); err != nil {
		return 0, err
	}
	return u.AvailableDays(), nil
}

// ReserveOnApproval implements leave.BalanceLedger. The user row stays locked until
// the caller's transaction ends, so the check and the increment see the same balance.
func (l *Ledger) ReserveOnApproval(ctx context.Context, companyID, userID string, days int) error {
	u, err := l.users.GetByIDForUpdate(ctx, companyID, userID)
	if err != nil {
		return fmt.Errorf("failed to lock user: %w", err)
	}
	if err := eligible(u); err != nil {
		return err
	}

	available := u.AvailableDays()
	if days > available {
		return &leave.InsufficientBalanceError{Available: available, Requested: days}
	}

	if err := l.users.AddVacationDaysUsed(ctx, companyID, userID, days); err != nil {
		if errors.Is(err, user.ErrInsufficientVacationDays) {
			return &leave.InsufficientBalanceError{Available: available, Requested: days}
		}
		return fmt.Errorf("failed to reserve vacation days: %w", err)
	}
	return nil
}

// AdjustTotal implements leave.BalanceLedger.
func (l *Ledger) AdjustTotal(ctx context.Context, companyID, userID string, newTotal int) error {
	u, err := l.users.GetByID(ctx, companyID, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if err := eligible(u); err != nil {
		return err
	}

	if err := l.users.UpdateVacationDaysTotal(ctx, companyID, userID, newTotal); err != nil {
		return fmt.Errorf("failed to update vacation days total: %w", err)
	}

	if newTotal < u.VacationDaysUsed {
		slog.Warn("vacation total set below used days",
			"company_id", companyID,
			"user_id", userID,
			"total", newTotal,
			"used", u.VacationDaysUsed,
		)
	}

	l.sink.Deliver(ctx, companyID, []string{userID},
		fmt.Sprintf("Your vacation allowance was set to %d days", newTotal),
		notification.TypeVacationUpdate,
	)
	return nil
}
