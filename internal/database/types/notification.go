package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MatchNotification is an append-only log entry marking that a proximity
// notification was sent for a pair. It exists only to enforce the
// per-pair cool-down.
type MatchNotification struct {
	bun.BaseModel `bun:"table:location_match_notifications,alias:match_notification"`

	ID         uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`
	FromUserID string    `bun:",notnull"`
	ToUserID   string    `bun:",notnull"`
	PairKey    string    `bun:",notnull"`
	CreatedAt  time.Time `bun:",notnull"`
}

// Validate rejects malformed notification rows at the storage boundary.
func (n *MatchNotification) Validate() error {
	if n.FromUserID == "" || n.ToUserID == "" {
		return ErrMissingUserID
	}

	if n.CreatedAt.IsZero() {
		return ErrMissingTimestamp
	}

	return nil
}

// PairKey derives the canonical identity for an unordered user pair.
// Both (A,B) and (B,A) map to the same key.
func PairKey(userID, otherUserID string) string {
	if strings.Compare(userID, otherUserID) > 0 {
		userID, otherUserID = otherUserID, userID
	}

	return userID + ":" + otherUserID
}
