package entity

import (
	"time"

	"github.com/google/uuid"
)

// SlotStatus is the derived availability of a slot for display. It is never
// stored: booked status comes from joining active appointments on the exact
// (dentist, date, start_time).
type SlotStatus string

const (
	SlotStatusBooked      SlotStatus = "booked"
	SlotStatusAvailable   SlotStatus = "available"
	SlotStatusUnavailable SlotStatus = "unavailable"
)

// Slot represents a bookable time window for a dentist on a given date
type Slot struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DentistID   uuid.UUID `gorm:"type:uuid;not null;index:idx_slot_key,unique" json:"dentist_id"`
	SlotDate    time.Time `gorm:"type:date;not null;index:idx_slot_key,unique" json:"slot_date"`
	StartTime   string    `gorm:"type:time;not null;index:idx_slot_key,unique" json:"start_time"`
	EndTime     string    `gorm:"type:time;not null" json:"end_time"`
	IsAvailable *bool     `gorm:"not null;default:true" json:"is_available"`
	TreatmentID *int      `gorm:"index" json:"treatment_id,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Dentist   DentistProfile `gorm:"foreignKey:DentistID" json:"dentist,omitempty"`
	Treatment *Treatment     `gorm:"foreignKey:TreatmentID" json:"treatment,omitempty"`
}

func (Slot) TableName() string {
	return "available_slots"
}
