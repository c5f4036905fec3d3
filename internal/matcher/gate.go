package matcher

import (
	"context"
	"time"

	"github.com/nearwave/nearwave/internal/database/types"
	"go.uber.org/zap"
)

// Gate decides whether a match notification may be sent for a pair.
// Every check must pass; a check that cannot be verified counts as failed
// so storage trouble never produces a duplicate or unwanted notification.
type Gate struct {
	friends       FriendStore
	notifications NotificationStore
	cooldown      time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

// NewGate creates a notification gate.
func NewGate(
	friends FriendStore, notifications NotificationStore,
	cooldown time.Duration, logger *zap.Logger,
) *Gate {
	return &Gate{
		friends:       friends,
		notifications: notifications,
		cooldown:      cooldown,
		logger:        logger.Named("gate"),
		now:           time.Now,
	}
}

// CheckEligibility reports whether the pair may be notified. Check errors
// fail closed: the pair is ineligible and the error is logged here.
func (g *Gate) CheckEligibility(ctx context.Context, userID, otherUserID string) bool {
	// Already friends, in either direction
	active, err := g.friends.HasRelationship(ctx, userID, otherUserID, types.FriendStatusActive)
	if err != nil {
		g.logCheckError("friendship", userID, otherUserID, err)
		return false
	}

	if active {
		return false
	}

	// Pending relationship, in either direction
	pending, err := g.friends.HasRelationship(ctx, userID, otherUserID, types.FriendStatusPending)
	if err != nil {
		g.logCheckError("pending relationship", userID, otherUserID, err)
		return false
	}

	if pending {
		return false
	}

	// Pending friend request, in either direction
	requested, err := g.friends.HasPendingRequest(ctx, userID, otherUserID)
	if err != nil {
		g.logCheckError("pending request", userID, otherUserID, err)
		return false
	}

	if requested {
		return false
	}

	// Cool-down: one notification per pair per rolling window
	notified, err := g.notifications.ExistsSince(ctx, userID, otherUserID, g.now().Add(-g.cooldown))
	if err != nil {
		g.logCheckError("cool-down", userID, otherUserID, err)
		return false
	}

	return !notified
}

func (g *Gate) logCheckError(check, userID, otherUserID string, err error) {
	g.logger.Error("Eligibility check failed, treating pair as ineligible",
		zap.String("check", check),
		zap.String("userID", userID),
		zap.String("otherUserID", otherUserID),
		zap.Error(err))
}
