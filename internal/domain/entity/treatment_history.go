package entity

import (
	"time"

	"github.com/google/uuid"
)

// TreatmentHistory is the clinical record a dentist writes after a visit.
// Its existence is the evidence that the visit actually took place: the
// auto-cancel sweep and the completed transition both key off it.
type TreatmentHistory struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"appointment_id"`
	DentistID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"dentist_id"`
	Diagnosis     string     `gorm:"type:text;not null" json:"diagnosis"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
	NextVisitDate *time.Time `gorm:"type:date" json:"next_visit_date,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Appointment Appointment    `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	Dentist     DentistProfile `gorm:"foreignKey:DentistID" json:"dentist,omitempty"`
}

func (TreatmentHistory) TableName() string {
	return "treatment_histories"
}
