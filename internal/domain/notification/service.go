package notification

import (
	"context"
	"time"
)

// Sink receives lifecycle events for users. Delivery is fire-and-forget:
// failures are logged by the implementation and never reported to the caller.
type Sink interface {
	Deliver(ctx context.Context, companyID string, recipientIDs []string, message string, kind NotificationType)
}

// Service defines the notification service interface
type Service interface {
	Sink

	GetUnread(ctx context.Context, userID string) ([]NotificationResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAllAsRead(ctx context.Context, userID string) error
	PurgeRead(ctx context.Context, olderThan time.Duration) (int64, error)

	// SSE subscription
	Subscribe(ctx context.Context, userID string) (<-chan SSEEvent, func())

	// Lifecycle
	Stop()
}
