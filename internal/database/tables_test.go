package database_test

import (
	"database/sql"
	"testing"

	"github.com/nearwave/nearwave/internal/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// newRenderDB builds a bun instance for rendering queries. No connection
// is ever opened; only the dialect and model metadata are exercised.
func newRenderDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithAddr("127.0.0.1:5432"),
		pgdriver.WithUser("postgres"),
		pgdriver.WithDatabase("nearwave"),
		pgdriver.WithInsecure(true),
	))
	t.Cleanup(func() { _ = sqldb.Close() })

	return bun.NewDB(sqldb, pgdialect.New())
}

// Queries must address the tables the migrations create; a model whose
// derived name drifts from the schema fails at runtime, not at compile time.
func TestModelTableNames(t *testing.T) {
	t.Parallel()

	db := newRenderDB(t)

	tests := []struct {
		model any
		table string
	}{
		{(*types.User)(nil), "users"},
		{(*types.UserLocation)(nil), "user_locations"},
		{(*types.UserFriend)(nil), "user_friends"},
		{(*types.FriendRequest)(nil), "friend_requests"},
		{(*types.MatchNotification)(nil), "location_match_notifications"},
		{(*types.PushToken)(nil), "push_tokens"},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			t.Parallel()

			query := db.NewSelect().Model(tt.model).String()
			assert.Contains(t, query, `"`+tt.table+`"`)
		})
	}
}
