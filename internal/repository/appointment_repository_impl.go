package repository

import (
	"errors"
	"time"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient.User").
		Preload("Dentist.User").
		Preload("Treatment").
		Preload("History").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Dentist.User").
		Preload("Treatment").
		Where("patient_id = ?", patientID).
		Order("date DESC, start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDentistAndDate(db *gorm.DB, dentistID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient.User").
		Preload("Treatment").
		Where("dentist_id = ? AND date = ?", dentistID, date.Format("2006-01-02")).
		Order("start_time").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB, limit, offset int) ([]entity.Appointment, int64, error) {
	var total int64
	if err := db.Model(&entity.Appointment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	err := db.Preload("Patient.User").
		Preload("Dentist.User").
		Preload("Treatment").
		Order("date DESC, start_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *appointmentRepository) FindActiveBySlot(db *gorm.DB, dentistID uuid.UUID, date time.Time, startTime string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("dentist_id = ? AND date = ? AND start_time = ? AND status IN ?",
		dentistID, date.Format("2006-01-02"), startTime,
		[]entity.AppointmentStatus{entity.StatusPending, entity.StatusConfirm, entity.StatusWaitingForTreatment}).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// UpdateStatus is a compare-and-set: the WHERE clause pins the expected
// current status, so a lost race simply reports 0 affected rows.
func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) UpdateStatusWithReason(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus, reason string) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "cancel_reason": reason})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) FindForDate(db *gorm.DB, date time.Time, statuses []entity.AppointmentStatus) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient.User").
		Preload("Dentist.User").
		Preload("Treatment").
		Where("date = ? AND status IN ?", date.Format("2006-01-02"), statuses).
		Order("start_time").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindStartingBetween(db *gorm.DB, from, to time.Time, statuses []entity.AppointmentStatus) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient.User").
		Preload("Dentist.User").
		Preload("Treatment").
		Where("(date + start_time) > ? AND (date + start_time) <= ? AND status IN ?", from, to, statuses).
		Order("date, start_time").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindOverdueWaiting returns waiting_for_treatment appointments whose
// scheduled time is before the cutoff and which have no treatment-history
// row. The anti-join guard keeps visits that actually happened (but were
// not yet marked completed) out of the auto-cancel sweep.
func (r *appointmentRepository) FindOverdueWaiting(db *gorm.DB, cutoff time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Joins("LEFT JOIN treatment_histories ON treatment_histories.appointment_id = appointments.id").
		Where("appointments.status = ?", entity.StatusWaitingForTreatment).
		Where("(appointments.date + appointments.start_time) < ?", cutoff).
		Where("treatment_histories.id IS NULL").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
