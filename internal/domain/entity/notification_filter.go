package entity

import "github.com/google/uuid"

// NotificationScope identifies whose notifications a query targets.
// Exactly one of PatientID/DentistID is set for patient/dentist scopes;
// both nil means the admin desk.
type NotificationScope struct {
	PatientID *uuid.UUID
	DentistID *uuid.UUID
}

// AdminScope targets notifications addressed to the admin desk
func AdminScope() NotificationScope {
	return NotificationScope{}
}

// PatientScope targets notifications addressed to one patient
func PatientScope(patientID uuid.UUID) NotificationScope {
	return NotificationScope{PatientID: &patientID}
}

// DentistScope targets notifications addressed to one dentist
func DentistScope(dentistID uuid.UUID) NotificationScope {
	return NotificationScope{DentistID: &dentistID}
}

// IsAdmin reports whether the scope is the admin desk
func (s NotificationScope) IsAdmin() bool {
	return s.PatientID == nil && s.DentistID == nil
}

// NotificationFilter is a domain-level filter for listing notifications.
// Used by the repository layer to avoid coupling with delivery DTOs.
type NotificationFilter struct {
	Scope      NotificationScope
	UnreadOnly bool
	Type       NotificationType
	Limit      int
	Offset     int
}
