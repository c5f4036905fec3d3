package types

import "time"

// PushToken maps a user to the device token their push notifications are
// delivered to. One row per user; re-registration overwrites the token.
type PushToken struct {
	UserID    string    `bun:",pk"`
	Token     string    `bun:",notnull"`
	UpdatedAt time.Time `bun:",notnull,default:current_timestamp"`
}
