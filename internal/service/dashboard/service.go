package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	now func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		now:                 time.Now,
	}
}

// monthBounds returns the first instant of t's month and of the following month
func monthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// GetStats runs the three counters in parallel, one query each
func (s *DashboardServiceImpl) GetStats(ctx context.Context, actor user.Actor) (dashboard.StatsResponse, error) {
	if !user.HasPermission(actor.Role, user.PermissionStatsView) {
		return dashboard.StatsResponse{}, user.ErrManagerAccessRequired
	}

	from, to := monthBounds(s.now())

	var stats dashboard.StatsResponse
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.DashboardRepository.CountActiveUsers(gctx, actor.CompanyID)
		if err != nil {
			return err
		}
		stats.TotalEmployees = count
		return nil
	})

	g.Go(func() error {
		count, err := s.DashboardRepository.CountPendingRequests(gctx, actor.CompanyID)
		if err != nil {
			return err
		}
		stats.PendingRequests = count
		return nil
	})

	g.Go(func() error {
		count, err := s.DashboardRepository.CountApprovedCreatedBetween(gctx, actor.CompanyID, from, to)
		if err != nil {
			return err
		}
		stats.ApprovedThisMonth = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.StatsResponse{}, fmt.Errorf("failed to load stats: %w", err)
	}

	return stats, nil
}
