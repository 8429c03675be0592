package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType identifies the lifecycle event a notification reports
type NotificationType string

const (
	NotificationNewBooking       NotificationType = "new_booking"
	NotificationBookingConfirmed NotificationType = "booking_confirmed"
	NotificationBookingCancelled NotificationType = "booking_cancelled"
	NotificationReminder         NotificationType = "reminder"
	NotificationUpcoming         NotificationType = "upcoming"
	NotificationPossibleNoShow   NotificationType = "possible_no_show"
	NotificationTreatmentRecord  NotificationType = "treatment_recorded"
)

// Notification is an event record addressed to exactly one audience:
// a patient, a dentist, or (when both ids are nil) the admin desk.
type Notification struct {
	ID            int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Type          NotificationType `gorm:"type:varchar(50);not null;index" json:"type"`
	Title         string           `gorm:"type:varchar(255);not null" json:"title"`
	Message       string           `gorm:"type:text;not null" json:"message"`
	AppointmentID *uuid.UUID       `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	PatientID     *uuid.UUID       `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	DentistID     *uuid.UUID       `gorm:"type:uuid;index" json:"dentist_id,omitempty"`
	IsRead        bool             `gorm:"not null;default:false;index" json:"is_read"`
	IsNew         bool             `gorm:"not null;default:true" json:"is_new"`
	CreatedAt     time.Time        `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Appointment *Appointment    `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	Patient     *PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Dentist     *DentistProfile `gorm:"foreignKey:DentistID" json:"dentist,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

// IsAdmin reports whether the notification is addressed to the admin desk
func (n *Notification) IsAdmin() bool {
	return n.PatientID == nil && n.DentistID == nil
}
