package repository

import (
	"errors"
	"time"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"gorm.io/gorm"
)

type notificationRepository struct{}

func NewNotificationRepository() domainRepo.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(db *gorm.DB, notification *entity.Notification) error {
	return db.Create(notification).Error
}

func (r *notificationRepository) FindByID(db *gorm.DB, id int64) (*entity.Notification, error) {
	var notification entity.Notification
	err := db.Where("id = ?", id).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

// scopeQuery narrows a query to one audience. Admin notifications are the
// rows where neither a patient nor a dentist is addressed.
func scopeQuery(db *gorm.DB, scope entity.NotificationScope) *gorm.DB {
	switch {
	case scope.PatientID != nil:
		return db.Where("patient_id = ?", *scope.PatientID)
	case scope.DentistID != nil:
		return db.Where("dentist_id = ?", *scope.DentistID)
	default:
		return db.Where("patient_id IS NULL AND dentist_id IS NULL")
	}
}

func (r *notificationRepository) List(db *gorm.DB, filter *entity.NotificationFilter) ([]entity.Notification, int64, error) {
	query := scopeQuery(db.Model(&entity.Notification{}), filter.Scope)
	if filter.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []entity.Notification
	err := query.
		Preload("Patient.User").
		Preload("Dentist.User").
		Preload("Appointment.Patient.User").
		Preload("Appointment.Dentist.User").
		Preload("Appointment.Treatment").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) MarkRead(db *gorm.DB, id int64) (int64, error) {
	result := db.Model(&entity.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_read": true, "is_new": false})
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) MarkAllRead(db *gorm.DB, scope entity.NotificationScope) (int64, error) {
	result := scopeQuery(db.Model(&entity.Notification{}), scope).
		Where("is_read = ?", false).
		Updates(map[string]interface{}{"is_read": true, "is_new": false})
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) CountUnread(db *gorm.DB, scope entity.NotificationScope) (int64, error) {
	var count int64
	err := scopeQuery(db.Model(&entity.Notification{}), scope).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	result := db.Delete(&entity.Notification{}, id)
	return result.RowsAffected, result.Error
}

// DeleteReadOlderThan purges read notifications past the retention window.
// Unread rows are never purged, whatever their age.
func (r *notificationRepository) DeleteReadOlderThan(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&entity.Notification{})
	return result.RowsAffected, result.Error
}
