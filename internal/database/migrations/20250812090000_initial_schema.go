package migrations

import (
	"context"
	"fmt"

	"github.com/nearwave/nearwave/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []struct {
			model any
			name  string
		}{
			{(*types.User)(nil), "users"},
			{(*types.UserLocation)(nil), "user_locations"},
			{(*types.UserFriend)(nil), "user_friends"},
			{(*types.FriendRequest)(nil), "friend_requests"},
			{(*types.MatchNotification)(nil), "location_match_notifications"},
			{(*types.PushToken)(nil), "push_tokens"},
		}

		for _, m := range models {
			_, err := db.NewCreateTable().
				Model(m.model).
				ModelTableExpr(m.name).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table %s: %w", m.name, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		tables := []string{
			"push_tokens",
			"location_match_notifications",
			"friend_requests",
			"user_friends",
			"user_locations",
			"users",
		}

		for _, table := range tables {
			_, err := db.NewDropTable().
				TableExpr(table).
				IfExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop table %s: %w", table, err)
			}
		}

		return nil
	})
}
