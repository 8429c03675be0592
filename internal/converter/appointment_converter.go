package converter

import (
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to its response DTO.
// Preloaded patient, dentist and treatment relations are included when set.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:           appointment.ID,
		PatientID:    appointment.PatientID,
		DentistID:    appointment.DentistID,
		TreatmentID:  appointment.TreatmentID,
		Date:         appointment.Date.Format("2006-01-02"),
		StartTime:    appointment.StartTime,
		Status:       string(appointment.Status),
		CancelReason: appointment.CancelReason,
		CreatedAt:    appointment.CreatedAt,
		UpdatedAt:    appointment.UpdatedAt,
	}

	if appointment.Patient.ID != uuid.Nil {
		response.Patient = &dto.PatientResponse{
			ID:          appointment.Patient.ID,
			FullName:    appointment.Patient.User.FullName,
			PhoneNumber: appointment.Patient.PhoneNumber,
		}
	}

	if appointment.Dentist.ID != uuid.Nil {
		response.Dentist = DentistToResponse(&appointment.Dentist)
	}

	if appointment.Treatment.ID != 0 {
		response.Treatment = TreatmentToResponse(&appointment.Treatment)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to response DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// TreatmentHistoryToResponse converts a TreatmentHistory entity to its response DTO
func TreatmentHistoryToResponse(history *entity.TreatmentHistory) *dto.TreatmentHistoryResponse {
	if history == nil {
		return nil
	}

	return &dto.TreatmentHistoryResponse{
		ID:            history.ID,
		AppointmentID: history.AppointmentID,
		DentistID:     history.DentistID,
		Diagnosis:     history.Diagnosis,
		Notes:         history.Notes,
		NextVisitDate: history.NextVisitDate,
		CreatedAt:     history.CreatedAt,
	}
}
