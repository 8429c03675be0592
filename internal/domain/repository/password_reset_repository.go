package repository

import (
	"time"

	"dental-clinic-api/internal/domain/entity"

	"gorm.io/gorm"
)

type PasswordResetRepository interface {
	Create(db *gorm.DB, reset *entity.PasswordReset) error
	FindByToken(db *gorm.DB, token string) (*entity.PasswordReset, error)
	DeleteByEmail(db *gorm.DB, email string) (int64, error)
	MarkUsed(db *gorm.DB, id int64, usedAt time.Time) (int64, error)
	DeleteExpiredOrUsed(db *gorm.DB, now time.Time) (int64, error)
}
