package repository

import (
	"errors"
	"time"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"gorm.io/gorm"
)

type passwordResetRepository struct{}

func NewPasswordResetRepository() domainRepo.PasswordResetRepository {
	return &passwordResetRepository{}
}

func (r *passwordResetRepository) Create(db *gorm.DB, reset *entity.PasswordReset) error {
	return db.Create(reset).Error
}

func (r *passwordResetRepository) FindByToken(db *gorm.DB, token string) (*entity.PasswordReset, error) {
	var reset entity.PasswordReset
	err := db.Where("token = ?", token).First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reset, nil
}

func (r *passwordResetRepository) DeleteByEmail(db *gorm.DB, email string) (int64, error) {
	result := db.Where("email = ?", email).Delete(&entity.PasswordReset{})
	return result.RowsAffected, result.Error
}

// MarkUsed consumes a token. The used_at IS NULL guard makes the token
// single-use even under concurrent confirm requests.
func (r *passwordResetRepository) MarkUsed(db *gorm.DB, id int64, usedAt time.Time) (int64, error) {
	result := db.Model(&entity.PasswordReset{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", usedAt)
	return result.RowsAffected, result.Error
}

func (r *passwordResetRepository) DeleteExpiredOrUsed(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Where("expires_at < ? OR used_at IS NOT NULL", now).
		Delete(&entity.PasswordReset{})
	return result.RowsAffected, result.Error
}
