package notification

import (
	"context"
	"time"
)

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	CreateBatch(ctx context.Context, notifications []*Notification) error
	GetUnreadByUserID(ctx context.Context, userID string) ([]*Notification, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAllAsRead(ctx context.Context, userID string) error
	DeleteReadBefore(ctx context.Context, before time.Time) (int64, error)
}
