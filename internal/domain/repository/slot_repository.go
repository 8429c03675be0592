package repository

import (
	"time"

	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlotRepository interface {
	Create(db *gorm.DB, slot *entity.Slot) error

	// CreateSkipExisting bulk-inserts slots, silently skipping rows whose
	// (dentist, date, start_time) already exists. Returns the number of
	// rows actually created, which makes re-generation idempotent.
	CreateSkipExisting(db *gorm.DB, slots []entity.Slot) (int64, error)

	FindByID(db *gorm.DB, id int) (*entity.Slot, error)
	FindByKey(db *gorm.DB, dentistID uuid.UUID, date time.Time, startTime string) (*entity.Slot, error)
	FindByDentistAndDate(db *gorm.DB, dentistID uuid.UUID, date time.Time) ([]entity.Slot, error)
	SetAvailability(db *gorm.DB, id int, available bool) (int64, error)
	Delete(db *gorm.DB, id int) (int64, error)
	DeleteBefore(db *gorm.DB, date time.Time) (int64, error)
}
