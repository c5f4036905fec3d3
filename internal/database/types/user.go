// Package types defines the database row structures shared across the
// storage layer and the matching pipeline.
package types

import "time"

// User holds the profile subset the matcher needs when composing
// notifications. Account management owns the rest of the row.
type User struct {
	ID        string    `bun:",pk"`
	Name      string    `bun:",notnull"`
	Email     string    `bun:",notnull"`
	AvatarURL string    `bun:",nullzero"`
	CreatedAt time.Time `bun:",notnull,default:current_timestamp"`
}
