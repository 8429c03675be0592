package repository

import (
	"errors"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type treatmentHistoryRepository struct{}

func NewTreatmentHistoryRepository() domainRepo.TreatmentHistoryRepository {
	return &treatmentHistoryRepository{}
}

func (r *treatmentHistoryRepository) Create(db *gorm.DB, history *entity.TreatmentHistory) error {
	return db.Create(history).Error
}

func (r *treatmentHistoryRepository) FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.TreatmentHistory, error) {
	var history entity.TreatmentHistory
	err := db.Where("appointment_id = ?", appointmentID).First(&history).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &history, nil
}

func (r *treatmentHistoryRepository) ExistsForAppointment(db *gorm.DB, appointmentID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&entity.TreatmentHistory{}).
		Where("appointment_id = ?", appointmentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *treatmentHistoryRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.TreatmentHistory, error) {
	var histories []entity.TreatmentHistory
	err := db.Preload("Appointment.Treatment").
		Preload("Dentist.User").
		Joins("JOIN appointments ON appointments.id = treatment_histories.appointment_id").
		Where("appointments.patient_id = ?", patientID).
		Order("treatment_histories.created_at DESC").
		Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}
