package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID            int64      `json:"id"`
	Type          string     `json:"type"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	IsRead        bool       `json:"is_read"`
	IsNew         bool       `json:"is_new"`
	TimeAgo       string     `json:"time_ago"`
	PatientName   string     `json:"patient_name,omitempty"`
	DentistName   string     `json:"dentist_name,omitempty"`
	TreatmentName string     `json:"treatment_name,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int64                  `json:"total"`
	UnreadCount   int64                  `json:"unread_count"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}
