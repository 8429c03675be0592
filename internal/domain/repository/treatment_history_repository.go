package repository

import (
	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TreatmentHistoryRepository interface {
	Create(db *gorm.DB, history *entity.TreatmentHistory) error
	FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.TreatmentHistory, error)
	ExistsForAppointment(db *gorm.DB, appointmentID uuid.UUID) (bool, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.TreatmentHistory, error)
}
