package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

func (r *dashboardRepositoryImpl) CountActiveUsers(ctx context.Context, companyID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE company_id = $1 AND active = true`,
		companyID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active users: %w", err)
	}
	return count, nil
}

func (r *dashboardRepositoryImpl) CountPendingRequests(ctx context.Context, companyID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM vacation_requests WHERE company_id = $1 AND status = 'pending'`,
		companyID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending requests: %w", err)
	}
	return count, nil
}

func (r *dashboardRepositoryImpl) CountApprovedCreatedBetween(ctx context.Context, companyID string, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*) FROM vacation_requests
		WHERE company_id = $1 AND status = 'approved'
		  AND created_at >= $2 AND created_at < $3
	`

	var count int64
	if err := q.QueryRow(ctx, query, companyID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count approved requests: %w", err)
	}
	return count, nil
}
