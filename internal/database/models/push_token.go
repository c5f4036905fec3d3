package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nearwave/nearwave/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ErrNoPushToken is returned when a user has no registered device token.
var ErrNoPushToken = errors.New("no push token registered for user")

// PushTokenModel handles database operations for device push tokens.
type PushTokenModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewPushToken creates a new PushTokenModel instance.
func NewPushToken(db *bun.DB, logger *zap.Logger) *PushTokenModel {
	return &PushTokenModel{
		db:     db,
		logger: logger.Named("db_push_token"),
	}
}

// Register stores the device token for a user, replacing any prior token.
// One token per user; the most recently registered device wins.
func (m *PushTokenModel) Register(ctx context.Context, row *types.PushToken) error {
	_, err := m.db.NewInsert().
		Model(row).
		On("CONFLICT (user_id) DO UPDATE").
		Set("token = EXCLUDED.token").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to register push token: %w", err)
	}

	return nil
}

// GetToken returns the device token registered for a user.
func (m *PushTokenModel) GetToken(ctx context.Context, userID string) (string, error) {
	var row types.PushToken

	err := m.db.NewSelect().
		Model(&row).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", ErrNoPushToken, userID)
		}

		return "", fmt.Errorf("failed to fetch push token: %w", err)
	}

	return row.Token, nil
}
