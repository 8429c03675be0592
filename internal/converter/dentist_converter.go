package converter

import (
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
)

// DentistToResponse converts a DentistProfile entity to its response DTO.
// The user relation contributes name and email when preloaded.
func DentistToResponse(profile *entity.DentistProfile) *dto.DentistResponse {
	if profile == nil {
		return nil
	}

	return &dto.DentistResponse{
		ID:        profile.ID,
		Email:     profile.User.Email,
		FullName:  profile.User.FullName,
		LicenseNo: profile.LicenseNo,
		Specialty: profile.Specialty,
		Biography: profile.Biography,
	}
}

// DentistsToResponses converts a slice of DentistProfile entities to response DTOs
func DentistsToResponses(profiles []entity.DentistProfile) []dto.DentistResponse {
	responses := make([]dto.DentistResponse, len(profiles))
	for i, profile := range profiles {
		resp := DentistToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// DentistScheduleToResponse converts a DentistSchedule entity to its response DTO
func DentistScheduleToResponse(schedule *entity.DentistSchedule) *dto.DentistScheduleResponse {
	if schedule == nil {
		return nil
	}

	working := true
	if schedule.IsWorking != nil {
		working = *schedule.IsWorking
	}

	return &dto.DentistScheduleResponse{
		ID:        schedule.ID,
		DentistID: schedule.DentistID,
		Weekday:   schedule.Weekday,
		StartTime: schedule.StartTime,
		EndTime:   schedule.EndTime,
		IsWorking: working,
	}
}
