package models

import (
	"context"
	"fmt"

	"github.com/nearwave/nearwave/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// FriendModel handles database operations for friendships and friend requests.
type FriendModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewFriend creates a new FriendModel instance.
func NewFriend(db *bun.DB, logger *zap.Logger) *FriendModel {
	return &FriendModel{
		db:     db,
		logger: logger.Named("db_friend"),
	}
}

// HasRelationship reports whether a user_friends row with the given status
// exists for the pair in either direction.
func (m *FriendModel) HasRelationship(
	ctx context.Context, userID, otherUserID string, status types.FriendStatus,
) (bool, error) {
	exists, err := m.db.NewSelect().
		Model((*types.UserFriend)(nil)).
		Where("status = ?", status).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				WhereGroup(" OR ", func(q *bun.SelectQuery) *bun.SelectQuery {
					return q.Where("user_id = ?", userID).Where("friend_id = ?", otherUserID)
				}).
				WhereGroup(" OR ", func(q *bun.SelectQuery) *bun.SelectQuery {
					return q.Where("user_id = ?", otherUserID).Where("friend_id = ?", userID)
				})
		}).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check %s relationship: %w", status, err)
	}

	return exists, nil
}

// HasPendingRequest reports whether a pending friend_requests row exists
// for the pair in either direction.
func (m *FriendModel) HasPendingRequest(
	ctx context.Context, userID, otherUserID string,
) (bool, error) {
	exists, err := m.db.NewSelect().
		Model((*types.FriendRequest)(nil)).
		Where("status = ?", types.FriendStatusPending).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				WhereGroup(" OR ", func(q *bun.SelectQuery) *bun.SelectQuery {
					return q.Where("from_user_id = ?", userID).Where("to_user_id = ?", otherUserID)
				}).
				WhereGroup(" OR ", func(q *bun.SelectQuery) *bun.SelectQuery {
					return q.Where("from_user_id = ?", otherUserID).Where("to_user_id = ?", userID)
				})
		}).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check pending friend request: %w", err)
	}

	return exists, nil
}

// CreateRequest inserts a new pending friend request for the pair.
func (m *FriendModel) CreateRequest(ctx context.Context, request *types.FriendRequest) error {
	if err := request.Validate(); err != nil {
		return fmt.Errorf("invalid friend request row: %w", err)
	}

	_, err := m.db.NewInsert().
		Model(request).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create friend request: %w", err)
	}

	return nil
}
