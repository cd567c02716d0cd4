package dashboard

import (
	"context"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/user"
)

type DashboardService interface {
	GetStats(ctx context.Context, actor user.Actor) (StatsResponse, error)
}
