package types

import (
	"time"

	"github.com/google/uuid"
)

// FriendStatus is the lifecycle state of a friend relationship or request.
type FriendStatus string

const (
	FriendStatusPending FriendStatus = "pending"
	FriendStatusActive  FriendStatus = "active"
	FriendStatusBlocked FriendStatus = "blocked"
)

// UserFriend is a directional friendship record. A logical pair may be
// represented by a row in either direction; eligibility checks treat
// (A,B) and (B,A) as the same relationship.
type UserFriend struct {
	ID        uuid.UUID    `bun:",pk,type:uuid,default:gen_random_uuid()"`
	UserID    string       `bun:",notnull"`
	FriendID  string       `bun:",notnull"`
	Status    FriendStatus `bun:",notnull"`
	CreatedAt time.Time    `bun:",notnull,default:current_timestamp"`
}

// FriendRequest is created as a side effect of a successful match
// notification. Status transitions happen outside the matcher.
type FriendRequest struct {
	ID         uuid.UUID    `bun:",pk,type:uuid,default:gen_random_uuid()"`
	FromUserID string       `bun:",notnull"`
	ToUserID   string       `bun:",notnull"`
	Status     FriendStatus `bun:",notnull"`
	CreatedAt  time.Time    `bun:",notnull"`
}

// Validate rejects malformed request rows at the storage boundary.
func (r *FriendRequest) Validate() error {
	if r.FromUserID == "" || r.ToUserID == "" {
		return ErrMissingUserID
	}

	if r.CreatedAt.IsZero() {
		return ErrMissingTimestamp
	}

	return nil
}
