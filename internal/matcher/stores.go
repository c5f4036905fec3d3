// Package matcher implements the proximity matching pipeline: location
// sampling, publishing, neighbor scanning, notification gating, and
// dispatching of match side effects.
package matcher

import (
	"context"
	"time"

	"github.com/nearwave/nearwave/internal/database/types"
)

// LocationStore persists and queries user positions.
type LocationStore interface {
	Upsert(ctx context.Context, location *types.UserLocation) error
	GetFreshLocations(ctx context.Context, excludeUserID string, since time.Time) ([]*types.UserLocation, error)
}

// FriendStore queries friendships and creates friend requests.
type FriendStore interface {
	HasRelationship(ctx context.Context, userID, otherUserID string, status types.FriendStatus) (bool, error)
	HasPendingRequest(ctx context.Context, userID, otherUserID string) (bool, error)
	CreateRequest(ctx context.Context, request *types.FriendRequest) error
}

// NotificationStore records and queries the match notification log.
type NotificationStore interface {
	ExistsSince(ctx context.Context, userID, otherUserID string, since time.Time) (bool, error)
	Create(ctx context.Context, record *types.MatchNotification) error
}

// PairLocker serializes gate re-check and dispatch per unordered user pair.
// Acquire returns a release function on success, or false when another
// holder owns the lock.
type PairLocker interface {
	Acquire(ctx context.Context, pairKey string) (func(), bool, error)
}
