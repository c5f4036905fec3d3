package database_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/nearwave/nearwave/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHookAfterQuery(t *testing.T) {
	t.Parallel()

	errQuery := errors.New("connection reset")

	tests := []struct {
		name      string
		event     *bun.QueryEvent
		wantLevel zapcore.Level
		wantMsg   string
	}{
		{
			name: "fast successful query logs at debug",
			event: &bun.QueryEvent{
				Query:     "SELECT 1",
				StartTime: time.Now(),
			},
			wantLevel: zapcore.DebugLevel,
			wantMsg:   "Query executed",
		},
		{
			name: "slow query logs at warn",
			event: &bun.QueryEvent{
				Query:     "SELECT 1",
				StartTime: time.Now().Add(-time.Second),
			},
			wantLevel: zapcore.WarnLevel,
			wantMsg:   "Slow query",
		},
		{
			name: "failed query logs at error",
			event: &bun.QueryEvent{
				Query:     "SELECT 1",
				StartTime: time.Now(),
				Err:       errQuery,
			},
			wantLevel: zapcore.ErrorLevel,
			wantMsg:   "Query failed",
		},
		{
			name: "row miss is not a failure",
			event: &bun.QueryEvent{
				Query:     "SELECT 1",
				StartTime: time.Now(),
				Err:       sql.ErrNoRows,
			},
			wantLevel: zapcore.DebugLevel,
			wantMsg:   "Query executed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zapcore.DebugLevel)
			hook := database.NewHook(zap.New(core))

			hook.AfterQuery(t.Context(), tt.event)

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0].Level)
			assert.Equal(t, tt.wantMsg, entries[0].Message)
		})
	}
}
