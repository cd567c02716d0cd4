package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeNewRequest     NotificationType = "new_request"
	TypeRequestUpdate  NotificationType = "request_update"
	TypeVacationUpdate NotificationType = "vacation_update"
)

// Notification represents a notification entity
type Notification struct {
	ID          string
	CompanyID   string
	RecipientID string
	Type        NotificationType
	Message     string
	IsRead      bool
	CreatedAt   time.Time
}
