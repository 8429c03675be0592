package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment in the queue
type AppointmentStatus string

const (
	StatusPending             AppointmentStatus = "pending"
	StatusConfirm             AppointmentStatus = "confirm"
	StatusWaitingForTreatment AppointmentStatus = "waiting_for_treatment"
	StatusCompleted           AppointmentStatus = "completed"
	StatusCancel              AppointmentStatus = "cancel"
	StatusAutoCancelled       AppointmentStatus = "auto_cancelled"
)

// allowedTransitions is the single source of truth for the appointment
// state machine. Terminal states have no outgoing edges.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:             {StatusConfirm, StatusCancel},
	StatusConfirm:             {StatusWaitingForTreatment, StatusCancel},
	StatusWaitingForTreatment: {StatusCompleted, StatusAutoCancelled},
	StatusCompleted:           {},
	StatusCancel:              {},
	StatusAutoCancelled:       {},
}

// CanTransitionTo reports whether moving from s to next is a legal transition
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s permits no further transitions
func (s AppointmentStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// IsActive reports whether an appointment in this status still occupies
// its slot. Exactly one active appointment may hold a given
// (dentist, date, start_time).
func (s AppointmentStatus) IsActive() bool {
	switch s {
	case StatusPending, StatusConfirm, StatusWaitingForTreatment:
		return true
	}
	return false
}

// Appointment represents one booking in the clinic queue
type Appointment struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DentistID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_appointment_slot" json:"dentist_id"`
	TreatmentID  int               `gorm:"not null;index" json:"treatment_id"`
	Date         time.Time         `gorm:"type:date;not null;index:idx_appointment_slot" json:"date"`
	StartTime    string            `gorm:"type:time;not null;index:idx_appointment_slot" json:"start_time"`
	Status       AppointmentStatus `gorm:"type:varchar(32);not null;default:'pending';index" json:"status"`
	CancelReason *string           `gorm:"type:text" json:"cancel_reason,omitempty"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient   PatientProfile    `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Dentist   DentistProfile    `gorm:"foreignKey:DentistID" json:"dentist,omitempty"`
	Treatment Treatment         `gorm:"foreignKey:TreatmentID" json:"treatment,omitempty"`
	History   *TreatmentHistory `gorm:"foreignKey:AppointmentID" json:"history,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// ScheduledAt combines Date and StartTime in the given location
func (a *Appointment) ScheduledAt(loc *time.Location) time.Time {
	t, err := time.ParseInLocation("15:04:05", a.StartTime, loc)
	if err != nil {
		t, err = time.ParseInLocation("15:04", a.StartTime, loc)
		if err != nil {
			return a.Date
		}
	}
	return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(),
		t.Hour(), t.Minute(), 0, 0, loc)
}

// IsPending checks if the appointment is still awaiting confirmation
func (a *Appointment) IsPending() bool {
	return a.Status == StatusPending
}

// IsActive checks if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}
