package models

import (
	"context"
	"fmt"
	"time"

	"github.com/nearwave/nearwave/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// NotificationModel handles database operations for the match
// notification log.
type NotificationModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewNotification creates a new NotificationModel instance.
func NewNotification(db *bun.DB, logger *zap.Logger) *NotificationModel {
	return &NotificationModel{
		db:     db,
		logger: logger.Named("db_notification"),
	}
}

// ExistsSince reports whether a notification was recorded for the pair
// (in either direction) at or after the since timestamp.
func (m *NotificationModel) ExistsSince(
	ctx context.Context, userID, otherUserID string, since time.Time,
) (bool, error) {
	exists, err := m.db.NewSelect().
		Model((*types.MatchNotification)(nil)).
		Where("pair_key = ?", types.PairKey(userID, otherUserID)).
		Where("created_at >= ?", since).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check recent notifications: %w", err)
	}

	return exists, nil
}

// Create appends a notification record for the pair. The canonical pair
// key is derived here so callers cannot write inconsistent rows.
func (m *NotificationModel) Create(ctx context.Context, record *types.MatchNotification) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid notification row: %w", err)
	}

	record.PairKey = types.PairKey(record.FromUserID, record.ToUserID)

	_, err := m.db.NewInsert().
		Model(record).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to record match notification: %w", err)
	}

	return nil
}
