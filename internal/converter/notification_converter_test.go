package converter

import (
	"testing"
	"time"

	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		at   time.Time
		want string
	}{
		{"seconds ago", now.Add(-30 * time.Second), "just now"},
		{"one minute", now.Add(-90 * time.Second), "1 minute ago"},
		{"minutes", now.Add(-45 * time.Minute), "45 minutes ago"},
		{"one hour", now.Add(-90 * time.Minute), "1 hour ago"},
		{"hours", now.Add(-5 * time.Hour), "5 hours ago"},
		{"one day", now.Add(-30 * time.Hour), "1 day ago"},
		{"days", now.Add(-3 * 24 * time.Hour), "3 days ago"},
		{"older than a week", now.Add(-10 * 24 * time.Hour), "27 Feb 2026"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TimeAgo(tc.at, now))
		})
	}
}

func TestNotificationToResponseFillsPartyNames(t *testing.T) {
	patientID := uuid.New()
	dentistID := uuid.New()
	appointmentID := uuid.New()

	// Shaped the way the repository preloads list rows: the addressee's
	// profile on the notification, the parties under the appointment.
	appointment := &entity.Appointment{
		ID:        appointmentID,
		Patient:   entity.PatientProfile{ID: patientID, User: entity.User{FullName: "Pat Example"}},
		Dentist:   entity.DentistProfile{ID: dentistID, User: entity.User{FullName: "Dr. Dent"}},
		Treatment: entity.Treatment{ID: 1, Name: "Scaling"},
	}

	dentistRow := &entity.Notification{
		ID:            1,
		Type:          entity.NotificationNewBooking,
		AppointmentID: &appointmentID,
		DentistID:     &dentistID,
		Dentist:       &entity.DentistProfile{ID: dentistID, User: entity.User{FullName: "Dr. Dent"}},
		Appointment:   appointment,
	}

	resp := NotificationToResponse(dentistRow)
	assert.Equal(t, "Dr. Dent", resp.DentistName)
	assert.Equal(t, "Pat Example", resp.PatientName)
	assert.Equal(t, "Scaling", resp.TreatmentName)
}

func TestNotificationToResponseAdminRowUsesAppointmentParties(t *testing.T) {
	appointmentID := uuid.New()

	adminRow := &entity.Notification{
		ID:            2,
		Type:          entity.NotificationNewBooking,
		AppointmentID: &appointmentID,
		Appointment: &entity.Appointment{
			ID:        appointmentID,
			Patient:   entity.PatientProfile{ID: uuid.New(), User: entity.User{FullName: "Pat Example"}},
			Dentist:   entity.DentistProfile{ID: uuid.New(), User: entity.User{FullName: "Dr. Dent"}},
			Treatment: entity.Treatment{ID: 1, Name: "Scaling"},
		},
	}

	resp := NotificationToResponse(adminRow)
	assert.Equal(t, "Pat Example", resp.PatientName)
	assert.Equal(t, "Dr. Dent", resp.DentistName)
}

func TestNotificationToResponsePatientRowNamesAddressee(t *testing.T) {
	patientID := uuid.New()

	// No appointment preloaded at all: the addressee profile still names
	// the patient, the other fields stay empty.
	patientRow := &entity.Notification{
		ID:        3,
		Type:      entity.NotificationReminder,
		PatientID: &patientID,
		Patient:   &entity.PatientProfile{ID: patientID, User: entity.User{FullName: "Pat Example"}},
	}

	resp := NotificationToResponse(patientRow)
	assert.Equal(t, "Pat Example", resp.PatientName)
	assert.Empty(t, resp.DentistName)
	assert.Empty(t, resp.TreatmentName)
}
