package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DentistID   uuid.UUID `json:"dentist_id" validate:"required"`
	TreatmentID int       `json:"treatment_id" validate:"required,min=1"`
	Date        string    `json:"date" validate:"required"`
	StartTime   string    `json:"start_time" validate:"required,clocktime"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type RecordTreatmentRequest struct {
	Diagnosis     string `json:"diagnosis" validate:"required,max=2000"`
	Notes         string `json:"notes" validate:"max=5000"`
	NextVisitDate string `json:"next_visit_date,omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID           uuid.UUID          `json:"id"`
	PatientID    uuid.UUID          `json:"patient_id"`
	DentistID    uuid.UUID          `json:"dentist_id"`
	TreatmentID  int                `json:"treatment_id"`
	Date         string             `json:"date"`
	StartTime    string             `json:"start_time"`
	Status       string             `json:"status"`
	CancelReason *string            `json:"cancel_reason,omitempty"`
	Patient      *PatientResponse   `json:"patient,omitempty"`
	Dentist      *DentistResponse   `json:"dentist,omitempty"`
	Treatment    *TreatmentResponse `json:"treatment,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
}

type TreatmentHistoryResponse struct {
	ID            int64      `json:"id"`
	AppointmentID uuid.UUID  `json:"appointment_id"`
	DentistID     uuid.UUID  `json:"dentist_id"`
	Diagnosis     string     `json:"diagnosis"`
	Notes         string     `json:"notes,omitempty"`
	NextVisitDate *time.Time `json:"next_visit_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
