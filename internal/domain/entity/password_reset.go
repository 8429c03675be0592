package entity

import (
	"time"

	"github.com/google/uuid"
)

// PasswordReset is a single-use credential-recovery token. At most one
// usable token exists per email: issuing a new one deletes the rest.
type PasswordReset struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Email     string     `gorm:"type:varchar(255);not null;index" json:"email"`
	Token     string     `gorm:"type:varchar(128);uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}

// IsUsable reports whether the token is still valid at the given time
func (p *PasswordReset) IsUsable(now time.Time) bool {
	return p.UsedAt == nil && p.ExpiresAt.After(now)
}
