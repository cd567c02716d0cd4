package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/notification"
)

// NotificationJobs removes read notifications once they pass the retention window
type NotificationJobs struct {
	svc       notification.Service
	retention time.Duration
	interval  time.Duration
}

func NewNotificationJobs(svc notification.Service, retention, interval time.Duration) *NotificationJobs {
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &NotificationJobs{
		svc:       svc,
		retention: retention,
		interval:  interval,
	}
}

// RegisterJobs registers the cleanup job with the scheduler
func (j *NotificationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_read_notifications", j.interval, time.Minute, j.PurgeRead)
}

// PurgeRead deletes read notifications older than the retention window
func (j *NotificationJobs) PurgeRead(ctx context.Context) error {
	deleted, err := j.svc.PurgeRead(ctx, j.retention)
	if err != nil {
		return err
	}
	slog.Debug("notification cleanup finished", "deleted", deleted, "retention", j.retention)
	return nil
}
