// Package models contains the per-entity database repositories.
package models

import (
	"context"
	"fmt"
	"time"

	"github.com/nearwave/nearwave/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// LocationModel handles database operations for user locations.
type LocationModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewLocation creates a new LocationModel instance.
func NewLocation(db *bun.DB, logger *zap.Logger) *LocationModel {
	return &LocationModel{
		db:     db,
		logger: logger.Named("db_location"),
	}
}

// Upsert stores the latest fix for a user, overwriting any prior row.
// Rows are validated before they reach the database.
func (m *LocationModel) Upsert(ctx context.Context, location *types.UserLocation) error {
	if err := location.Validate(); err != nil {
		return fmt.Errorf("invalid location row: %w", err)
	}

	_, err := m.db.NewInsert().
		Model(location).
		On("CONFLICT (user_id) DO UPDATE").
		Set("latitude = EXCLUDED.latitude").
		Set("longitude = EXCLUDED.longitude").
		Set("last_updated = EXCLUDED.last_updated").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert location: %w", err)
	}

	return nil
}

// GetFreshLocations returns the locations of all users other than
// excludeUserID whose fix was recorded at or after the since timestamp,
// with the owning user's profile attached. Malformed rows are dropped at
// the boundary rather than handed to callers.
func (m *LocationModel) GetFreshLocations(
	ctx context.Context, excludeUserID string, since time.Time,
) ([]*types.UserLocation, error) {
	var rows []*types.UserLocation

	err := m.db.NewSelect().
		Model(&rows).
		Relation("User").
		Where("user_location.user_id != ?", excludeUserID).
		Where("user_location.last_updated >= ?", since).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fresh locations: %w", err)
	}

	valid := rows[:0]

	for _, row := range rows {
		if err := row.Validate(); err != nil {
			m.logger.Warn("Dropping malformed location row",
				zap.String("userID", row.UserID),
				zap.Error(err))

			continue
		}

		valid = append(valid, row)
	}

	return valid, nil
}
