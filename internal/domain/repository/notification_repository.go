package repository

import (
	"time"

	"dental-clinic-api/internal/domain/entity"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *entity.Notification) error
	FindByID(db *gorm.DB, id int64) (*entity.Notification, error)
	List(db *gorm.DB, filter *entity.NotificationFilter) ([]entity.Notification, int64, error)
	MarkRead(db *gorm.DB, id int64) (int64, error)
	MarkAllRead(db *gorm.DB, scope entity.NotificationScope) (int64, error)
	CountUnread(db *gorm.DB, scope entity.NotificationScope) (int64, error)
	Delete(db *gorm.DB, id int64) (int64, error)
	DeleteReadOlderThan(db *gorm.DB, cutoff time.Time) (int64, error)
}
