package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler(t *testing.T) {
	t.Run("start runs jobs immediately and stop waits", func(t *testing.T) {
		s := NewScheduler()
		var runs atomic.Int32
		done := make(chan struct{}, 1)
		s.AddJob("tick", time.Hour, 0, func(ctx context.Context) error {
			runs.Add(1)
			select {
			case done <- struct{}{}:
			default:
			}
			return nil
		})

		s.Start()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("job did not run on start")
		}
		s.Stop()

		assert.Equal(t, int32(1), runs.Load())
	})

	t.Run("jobs added after start are ignored", func(t *testing.T) {
		s := NewScheduler()
		s.Start()
		s.AddJob("late", time.Hour, 0, func(ctx context.Context) error { return nil })
		s.Stop()

		assert.Empty(t, s.Jobs())
	})

	t.Run("zero interval is rejected", func(t *testing.T) {
		s := NewScheduler()
		s.AddJob("broken", 0, 0, func(ctx context.Context) error { return nil })
		assert.Empty(t, s.Jobs())
	})

	t.Run("run once keeps going after a failure", func(t *testing.T) {
		s := NewScheduler()
		var second bool
		s.AddJob("fails", time.Hour, 0, func(ctx context.Context) error { return errors.New("boom") })
		s.AddJob("works", time.Hour, 0, func(ctx context.Context) error {
			second = true
			return nil
		})

		s.RunOnce(context.Background())
		assert.True(t, second)
		assert.Equal(t, []string{"fails", "works"}, s.Jobs())
	})

	t.Run("timeout bounds the job context", func(t *testing.T) {
		s := NewScheduler()
		var deadlineSet bool
		s.AddJob("bounded", time.Hour, time.Second, func(ctx context.Context) error {
			_, deadlineSet = ctx.Deadline()
			return nil
		})

		s.RunOnce(context.Background())
		assert.True(t, deadlineSet)
	})
}

type purgeService struct {
	notification.Service
	olderThan time.Duration
	err       error
}

func (p *purgeService) PurgeRead(ctx context.Context, olderThan time.Duration) (int64, error) {
	p.olderThan = olderThan
	return 3, p.err
}

func TestNotificationJobs(t *testing.T) {
	t.Run("purges with the configured retention", func(t *testing.T) {
		svc := &purgeService{}
		jobs := NewNotificationJobs(svc, 48*time.Hour, time.Hour)

		s := NewScheduler()
		jobs.RegisterJobs(s)
		require.Equal(t, []string{"purge_read_notifications"}, s.Jobs())

		s.RunOnce(context.Background())
		assert.Equal(t, 48*time.Hour, svc.olderThan)
	})

	t.Run("defaults apply", func(t *testing.T) {
		svc := &purgeService{}
		jobs := NewNotificationJobs(svc, 0, 0)

		require.NoError(t, jobs.PurgeRead(context.Background()))
		assert.Equal(t, 30*24*time.Hour, svc.olderThan)
	})

	t.Run("errors are returned to the scheduler", func(t *testing.T) {
		svc := &purgeService{err: errors.New("db down")}
		jobs := NewNotificationJobs(svc, time.Hour, time.Hour)

		assert.EqualError(t, jobs.PurgeRead(context.Background()), "db down")
	})
}
