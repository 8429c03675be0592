package entity

import (
	"time"

	"github.com/google/uuid"
)

// DentistSchedule represents a dentist's recurring weekly working hours.
// Slot generation reads these rows to decide which days a dentist works.
type DentistSchedule struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DentistID uuid.UUID `gorm:"type:uuid;not null;index:idx_dentist_weekday,unique" json:"dentist_id"`
	Weekday   int       `gorm:"not null;index:idx_dentist_weekday,unique" json:"weekday"`
	StartTime string    `gorm:"type:time;not null" json:"start_time"`
	EndTime   string    `gorm:"type:time;not null" json:"end_time"`
	IsWorking *bool     `gorm:"not null;default:true" json:"is_working"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Dentist DentistProfile `gorm:"foreignKey:DentistID" json:"dentist,omitempty"`
}

func (DentistSchedule) TableName() string {
	return "dentist_schedules"
}
