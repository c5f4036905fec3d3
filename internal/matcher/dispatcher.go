package matcher

import (
	"context"
	"fmt"
	"time"

	"github.com/nearwave/nearwave/internal/database/types"
	"github.com/nearwave/nearwave/internal/notify"
	"go.uber.org/zap"
)

// Dispatcher commits the side effects of a successful match: the
// notification record, the pending friend request, and the push.
type Dispatcher struct {
	friends       FriendStore
	notifications NotificationStore
	notifier      notify.Notifier
	logger        *zap.Logger
	now           func() time.Time
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(
	friends FriendStore, notifications NotificationStore,
	notifier notify.Notifier, logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		friends:       friends,
		notifications: notifications,
		notifier:      notifier,
		logger:        logger.Named("dispatcher"),
		now:           time.Now,
	}
}

// Dispatch records the notification, creates the friend request, and pushes
// to the querying user's device. Failure to record the notification aborts
// the remaining steps. The request and the push are independent best-effort
// steps after that; their failures leave the record in place, and the pair
// self-heals only after the cool-down elapses.
func (d *Dispatcher) Dispatch(ctx context.Context, userID string, candidate *types.UserLocation) error {
	now := d.now()

	record := &types.MatchNotification{
		FromUserID: userID,
		ToUserID:   candidate.UserID,
		CreatedAt:  now,
	}
	if err := d.notifications.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}

	request := &types.FriendRequest{
		FromUserID: userID,
		ToUserID:   candidate.UserID,
		Status:     types.FriendStatusPending,
		CreatedAt:  now,
	}
	if err := d.friends.CreateRequest(ctx, request); err != nil {
		// Notification record already committed; no compensating delete,
		// and the push still goes out
		d.logger.Error("Failed to create friend request after recording notification",
			zap.String("userID", userID),
			zap.String("candidateID", candidate.UserID),
			zap.Error(err))
	}

	name := candidate.UserID
	if candidate.User != nil && candidate.User.Name != "" {
		name = candidate.User.Name
	}

	notification := notify.Notification{
		Title: "New Player Nearby! 👋",
		Body:  fmt.Sprintf("%s is near you! Add them as a friend to play together.", name),
		Data:  map[string]string{"userId": candidate.UserID},
	}
	if err := d.notifier.Send(ctx, userID, notification); err != nil {
		// Committed rows stay; push delivery is best effort
		d.logger.Error("Failed to deliver match push",
			zap.String("userID", userID),
			zap.String("candidateID", candidate.UserID),
			zap.Error(err))

		return nil
	}

	d.logger.Info("Dispatched proximity match",
		zap.String("userID", userID),
		zap.String("candidateID", candidate.UserID))

	return nil
}
