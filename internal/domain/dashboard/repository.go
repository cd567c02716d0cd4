package dashboard

import (
	"context"
	"time"
)

type DashboardRepository interface {
	CountActiveUsers(ctx context.Context, companyID string) (int64, error)
	CountPendingRequests(ctx context.Context, companyID string) (int64, error)
	// CountApprovedCreatedBetween counts approved requests created in [from, to).
	CountApprovedCreatedBetween(ctx context.Context, companyID string, from, to time.Time) (int64, error)
}
