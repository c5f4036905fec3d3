package types_test

import (
	"testing"
	"time"

	"github.com/nearwave/nearwave/internal/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "alice:bob", types.PairKey("alice", "bob"))
	assert.Equal(t, "alice:bob", types.PairKey("bob", "alice"))
	assert.NotEqual(t, types.PairKey("alice", "bob"), types.PairKey("alice", "carol"))
}

func TestUserLocationValidate(t *testing.T) {
	t.Parallel()

	valid := types.UserLocation{
		UserID:      "alice",
		Latitude:    51.5,
		Longitude:   -0.12,
		LastUpdated: time.Now(),
	}

	tests := []struct {
		name    string
		mutate  func(*types.UserLocation)
		wantErr error
	}{
		{
			name:   "valid row",
			mutate: func(_ *types.UserLocation) {},
		},
		{
			name:    "missing user id",
			mutate:  func(l *types.UserLocation) { l.UserID = "" },
			wantErr: types.ErrMissingUserID,
		},
		{
			name:    "latitude too high",
			mutate:  func(l *types.UserLocation) { l.Latitude = 90.5 },
			wantErr: types.ErrLatitudeOutOfRange,
		},
		{
			name:    "latitude too low",
			mutate:  func(l *types.UserLocation) { l.Latitude = -91 },
			wantErr: types.ErrLatitudeOutOfRange,
		},
		{
			name:    "longitude out of range",
			mutate:  func(l *types.UserLocation) { l.Longitude = 181 },
			wantErr: types.ErrLongitudeOutOfRange,
		},
		{
			name:    "zero timestamp",
			mutate:  func(l *types.UserLocation) { l.LastUpdated = time.Time{} },
			wantErr: types.ErrMissingTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			row := valid
			tt.mutate(&row)

			err := row.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFriendRequestValidate(t *testing.T) {
	t.Parallel()

	valid := types.FriendRequest{
		FromUserID: "alice",
		ToUserID:   "bob",
		Status:     types.FriendStatusPending,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, valid.Validate())

	missing := valid
	missing.ToUserID = ""
	require.ErrorIs(t, missing.Validate(), types.ErrMissingUserID)
}

func TestMatchNotificationValidate(t *testing.T) {
	t.Parallel()

	valid := types.MatchNotification{
		FromUserID: "alice",
		ToUserID:   "bob",
		CreatedAt:  time.Now(),
	}
	require.NoError(t, valid.Validate())

	stale := valid
	stale.CreatedAt = time.Time{}
	require.ErrorIs(t, stale.Validate(), types.ErrMissingTimestamp)
}
