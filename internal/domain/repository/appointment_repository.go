package repository

import (
	"time"

	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDentistAndDate(db *gorm.DB, dentistID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	FindAll(db *gorm.DB, limit, offset int) ([]entity.Appointment, int64, error)

	// FindActiveBySlot returns the appointment holding the exact
	// (dentist, date, start_time), if any, with status in
	// {pending, confirm, waiting_for_treatment}.
	FindActiveBySlot(db *gorm.DB, dentistID uuid.UUID, date time.Time, startTime string) (*entity.Appointment, error)

	// UpdateStatus moves an appointment from one status to another in a
	// single guarded UPDATE. Returns affected rows: 0 means the appointment
	// was not in the expected status (lost race or illegal transition).
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	UpdateStatusWithReason(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus, reason string) (int64, error)

	// Scheduled-job queries
	FindForDate(db *gorm.DB, date time.Time, statuses []entity.AppointmentStatus) ([]entity.Appointment, error)
	FindStartingBetween(db *gorm.DB, from, to time.Time, statuses []entity.AppointmentStatus) ([]entity.Appointment, error)
	FindOverdueWaiting(db *gorm.DB, cutoff time.Time) ([]entity.Appointment, error)
}
