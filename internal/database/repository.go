package database

import (
	"github.com/nearwave/nearwave/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	location     *models.LocationModel
	friend       *models.FriendModel
	notification *models.NotificationModel
	pushToken    *models.PushTokenModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		location:     models.NewLocation(db, logger),
		friend:       models.NewFriend(db, logger),
		notification: models.NewNotification(db, logger),
		pushToken:    models.NewPushToken(db, logger),
	}
}

// Location returns the location model repository.
func (r *Repository) Location() *models.LocationModel {
	return r.location
}

// Friend returns the friend model repository.
func (r *Repository) Friend() *models.FriendModel {
	return r.friend
}

// Notification returns the match notification model repository.
func (r *Repository) Notification() *models.NotificationModel {
	return r.notification
}

// PushToken returns the push token model repository.
func (r *Repository) PushToken() *models.PushTokenModel {
	return r.pushToken
}
