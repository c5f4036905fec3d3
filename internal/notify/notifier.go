// Package notify abstracts push notification delivery to user devices.
package notify

import (
	"context"
	"errors"
)

// ErrPermissionDenied is returned when the platform refuses notification access.
var ErrPermissionDenied = errors.New("notification permission denied")

// Notification is an immediate push message with an opaque data payload.
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// Notifier delivers notifications to a user's device.
type Notifier interface {
	RequestPermission(ctx context.Context) error
	Send(ctx context.Context, userID string, notification Notification) error
}
