package repository

import (
	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type dentistScheduleRepository struct{}

func NewDentistScheduleRepository() domainRepo.DentistScheduleRepository {
	return &dentistScheduleRepository{}
}

func (r *dentistScheduleRepository) Upsert(db *gorm.DB, schedule *entity.DentistSchedule) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "dentist_id"}, {Name: "weekday"}},
		DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "is_working", "updated_at"}),
	}).Create(schedule).Error
}

func (r *dentistScheduleRepository) FindByDentistID(db *gorm.DB, dentistID uuid.UUID) ([]entity.DentistSchedule, error) {
	var schedules []entity.DentistSchedule
	err := db.Where("dentist_id = ?", dentistID).Order("weekday").Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *dentistScheduleRepository) FindWorkingByWeekday(db *gorm.DB, weekday int) ([]entity.DentistSchedule, error) {
	var schedules []entity.DentistSchedule
	err := db.Where("weekday = ? AND is_working = ?", weekday, true).Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *dentistScheduleRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Delete(&entity.DentistSchedule{}, id)
	return result.RowsAffected, result.Error
}
