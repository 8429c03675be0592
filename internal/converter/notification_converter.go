package converter

import (
	"fmt"
	"time"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
)

// NotificationToResponse converts a Notification entity to its response DTO.
// Names of related parties are filled in when the relations are preloaded.
func NotificationToResponse(notification *entity.Notification) *dto.NotificationResponse {
	if notification == nil {
		return nil
	}

	response := &dto.NotificationResponse{
		ID:            notification.ID,
		Type:          string(notification.Type),
		Title:         notification.Title,
		Message:       notification.Message,
		AppointmentID: notification.AppointmentID,
		IsRead:        notification.IsRead,
		IsNew:         notification.IsNew,
		TimeAgo:       TimeAgo(notification.CreatedAt, time.Now()),
		CreatedAt:     notification.CreatedAt,
	}

	// The addressee's own profile carries the name when the row targets a
	// patient or dentist; admin rows fall back to the appointment's parties.
	if notification.Patient != nil {
		response.PatientName = notification.Patient.User.FullName
	} else if notification.Appointment != nil {
		response.PatientName = notification.Appointment.Patient.User.FullName
	}
	if notification.Dentist != nil {
		response.DentistName = notification.Dentist.User.FullName
	} else if notification.Appointment != nil {
		response.DentistName = notification.Appointment.Dentist.User.FullName
	}
	if notification.Appointment != nil {
		response.TreatmentName = notification.Appointment.Treatment.Name
	}

	return response
}

// NotificationsToResponses converts a slice of Notification entities to response DTOs
func NotificationsToResponses(notifications []entity.Notification) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, len(notifications))
	for i, notification := range notifications {
		resp := NotificationToResponse(&notification)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// TimeAgo renders a human readable age for a timestamp: "just now" under a
// minute, then minutes, hours and days, falling back to an absolute date
// once the notification is older than a week.
func TimeAgo(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		minutes := int(diff.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("02 Jan 2006")
	}
}
