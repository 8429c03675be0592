package entity

import "github.com/google/uuid"

// DentistProfile represents dentist-specific profile data
type DentistProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	LicenseNo string    `gorm:"column:license_no;type:varchar(50);uniqueIndex;not null" json:"license_no"`
	Specialty string    `gorm:"type:varchar(100);not null;index" json:"specialty"`
	Biography string    `gorm:"type:text" json:"biography,omitempty"`

	// Relationships
	User         User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Schedules    []DentistSchedule `gorm:"foreignKey:DentistID" json:"schedules,omitempty"`
	Appointments []Appointment     `gorm:"foreignKey:DentistID" json:"appointments,omitempty"`
}

func (DentistProfile) TableName() string {
	return "dentist_profiles"
}
