package types

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrMissingUserID       = errors.New("row is missing a user id")
	ErrLatitudeOutOfRange  = errors.New("latitude out of range [-90, 90]")
	ErrLongitudeOutOfRange = errors.New("longitude out of range [-180, 180]")
	ErrMissingTimestamp    = errors.New("row is missing a timestamp")
)

// UserLocation is the latest known position for a user. One row per user;
// every publish overwrites the previous fix (upsert by user_id).
type UserLocation struct {
	UserID      string    `bun:",pk"`
	Latitude    float64   `bun:",notnull"`
	Longitude   float64   `bun:",notnull"`
	LastUpdated time.Time `bun:",notnull"`

	User *User `bun:"rel:belongs-to,join:user_id=id"`
}

// Validate rejects malformed rows at the storage boundary.
func (l *UserLocation) Validate() error {
	if l.UserID == "" {
		return ErrMissingUserID
	}

	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("%w: %f", ErrLatitudeOutOfRange, l.Latitude)
	}

	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("%w: %f", ErrLongitudeOutOfRange, l.Longitude)
	}

	if l.LastUpdated.IsZero() {
		return ErrMissingTimestamp
	}

	return nil
}
