package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			-- Freshness scans filter on last_updated and exclude the querying user
			CREATE INDEX IF NOT EXISTS idx_user_locations_last_updated
			ON user_locations (last_updated DESC);

			-- Pair eligibility checks look up relationships in either direction
			CREATE INDEX IF NOT EXISTS idx_user_friends_pair
			ON user_friends (user_id, friend_id, status);

			CREATE INDEX IF NOT EXISTS idx_user_friends_pair_reverse
			ON user_friends (friend_id, user_id, status);

			-- Cool-down checks scan the notification log by canonical pair key
			CREATE INDEX IF NOT EXISTS idx_match_notifications_pair_time
			ON location_match_notifications (pair_key, created_at DESC);

			CREATE INDEX IF NOT EXISTS idx_friend_requests_pair
			ON friend_requests (from_user_id, to_user_id, status);
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create initial indexes: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			DROP INDEX IF EXISTS idx_friend_requests_pair;
			DROP INDEX IF EXISTS idx_match_notifications_pair_time;
			DROP INDEX IF EXISTS idx_user_friends_pair_reverse;
			DROP INDEX IF EXISTS idx_user_friends_pair;
			DROP INDEX IF EXISTS idx_user_locations_last_updated;
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop initial indexes: %w", err)
		}

		return nil
	})
}
