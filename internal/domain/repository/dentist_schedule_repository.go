package repository

import (
	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DentistScheduleRepository interface {
	Upsert(db *gorm.DB, schedule *entity.DentistSchedule) error
	FindByDentistID(db *gorm.DB, dentistID uuid.UUID) ([]entity.DentistSchedule, error)
	FindWorkingByWeekday(db *gorm.DB, weekday int) ([]entity.DentistSchedule, error)
	Delete(db *gorm.DB, id int) (int64, error)
}
