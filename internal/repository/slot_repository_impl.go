package repository

import (
	"errors"
	"time"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type slotRepository struct{}

func NewSlotRepository() domainRepo.SlotRepository {
	return &slotRepository{}
}

func (r *slotRepository) Create(db *gorm.DB, slot *entity.Slot) error {
	return db.Create(slot).Error
}

func (r *slotRepository) CreateSkipExisting(db *gorm.DB, slots []entity.Slot) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "dentist_id"}, {Name: "slot_date"}, {Name: "start_time"}},
		DoNothing: true,
	}).Create(&slots)
	return result.RowsAffected, result.Error
}

func (r *slotRepository) FindByID(db *gorm.DB, id int) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindByKey(db *gorm.DB, dentistID uuid.UUID, date time.Time, startTime string) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.Where("dentist_id = ? AND slot_date = ? AND start_time = ?",
		dentistID, date.Format("2006-01-02"), startTime).
		First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindByDentistAndDate(db *gorm.DB, dentistID uuid.UUID, date time.Time) ([]entity.Slot, error) {
	var slots []entity.Slot
	err := db.Preload("Treatment").
		Where("dentist_id = ? AND slot_date = ?", dentistID, date.Format("2006-01-02")).
		Order("start_time").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) SetAvailability(db *gorm.DB, id int, available bool) (int64, error) {
	result := db.Model(&entity.Slot{}).
		Where("id = ?", id).
		Update("is_available", available)
	return result.RowsAffected, result.Error
}

func (r *slotRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Delete(&entity.Slot{}, id)
	return result.RowsAffected, result.Error
}

func (r *slotRepository) DeleteBefore(db *gorm.DB, date time.Time) (int64, error) {
	result := db.Where("slot_date < ?", date.Format("2006-01-02")).Delete(&entity.Slot{})
	return result.RowsAffected, result.Error
}
