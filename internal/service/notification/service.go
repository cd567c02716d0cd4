package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/vacay-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
)

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo   notification.Repository
	hub    *sse.Hub
	config Config

	queue    chan *notification.Notification
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(repo notification.Repository, hub *sse.Hub, cfg Config) notification.Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:   repo,
		hub:    hub,
		config: cfg,
		queue:  make(chan *notification.Notification, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started",
		"workers", cfg.WorkerCount,
		"batch_size", cfg.BatchSize,
		"flush_interval", cfg.FlushInterval,
	)

	return s
}

// worker persists queued notifications in batches and pushes them to open streams
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]*notification.Notification, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		s.persist(ctx, batch, "worker", id)
		batch = batch[:0]
	}

	for {
		select {
		case n := <-s.queue:
			batch = append(batch, n)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			for {
				select {
				case n := <-s.queue:
					batch = append(batch, n)
					if len(batch) >= s.config.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

func (s *service) persist(ctx context.Context, batch []*notification.Notification, source string, workerID int) {
	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		slog.Error("failed to persist notifications",
			"source", source,
			"worker", workerID,
			"count", len(batch),
			"error", err,
		)
		return
	}

	for _, n := range batch {
		s.hub.Publish(n.RecipientID, sse.Event{
			Name: "notification",
			Data: notification.ToResponse(n),
		})
	}
}

// Deliver implements notification.Sink. Notifications are queued for the workers;
// when the queue is full or the service is stopping they are written directly.
func (s *service) Deliver(ctx context.Context, companyID string, recipientIDs []string, message string, kind notification.NotificationType) {
	if len(recipientIDs) == 0 {
		return
	}

	now := time.Now()
	var overflow []*notification.Notification

	for _, recipientID := range recipientIDs {
		n := &notification.Notification{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			RecipientID: recipientID,
			Type:        kind,
			Message:     message,
			IsRead:      false,
			CreatedAt:   now,
		}

		select {
		case <-s.stopCh:
			overflow = append(overflow, n)
			continue
		default:
		}

		select {
		case s.queue <- n:
		default:
			overflow = append(overflow, n)
		}
	}

	if len(overflow) > 0 {
		slog.Warn("notification queue unavailable, writing directly",
			"company_id", companyID,
			"count", len(overflow),
			"type", kind,
		)
		// The caller's request may finish before the write does.
		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		s.persist(writeCtx, overflow, "direct", -1)
	}
}

// GetUnread returns unread notifications for a user
func (s *service) GetUnread(ctx context.Context, userID string) ([]notification.NotificationResponse, error) {
	notifications, err := s.repo.GetUnreadByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = notification.ToResponse(n)
	}
	return responses, nil
}

// GetUnreadCount returns the count of unread notifications
func (s *service) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAllAsRead marks all notifications as read for a user
func (s *service) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// PurgeRead deletes read notifications older than olderThan
func (s *service) PurgeRead(ctx context.Context, olderThan time.Duration) (int64, error) {
	deleted, err := s.repo.DeleteReadBefore(ctx, time.Now().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		slog.Info("purged read notifications", "deleted", deleted, "older_than", olderThan)
	}
	return deleted, nil
}

// Subscribe creates an SSE subscription for a user
func (s *service) Subscribe(ctx context.Context, userID string) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(userID)

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				resp, ok := event.Data.(notification.NotificationResponse)
				if !ok {
					continue
				}
				select {
				case out <- notification.SSEEvent{Event: event.Name, Data: resp}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop flushes queued notifications and stops the workers
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()

		// Deliveries that raced with shutdown.
		var rest []*notification.Notification
		for {
			select {
			case n := <-s.queue:
				rest = append(rest, n)
				continue
			default:
			}
			break
		}
		if len(rest) > 0 {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			s.persist(ctx, rest, "stop", -1)
			cancel()
		}

		slog.Info("notification service stopped", "sse_dropped_events", s.hub.Dropped())
	})
}
