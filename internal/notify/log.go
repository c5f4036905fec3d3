package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes notifications to the log instead of delivering them.
// Used in simulation mode and anywhere no push gateway is configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a logger-backed notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notify")}
}

// RequestPermission always succeeds for the log notifier.
func (n *LogNotifier) RequestPermission(_ context.Context) error {
	return nil
}

// Send logs the notification.
func (n *LogNotifier) Send(_ context.Context, userID string, notification Notification) error {
	n.logger.Info("Push notification",
		zap.String("userID", userID),
		zap.String("title", notification.Title),
		zap.String("body", notification.Body),
		zap.Any("data", notification.Data))

	return nil
}
