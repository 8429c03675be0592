package converter

import (
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
)

// TreatmentToResponse converts a Treatment entity to its response DTO
func TreatmentToResponse(treatment *entity.Treatment) *dto.TreatmentResponse {
	if treatment == nil {
		return nil
	}

	return &dto.TreatmentResponse{
		ID:              treatment.ID,
		Name:            treatment.Name,
		Description:     treatment.Description,
		Price:           treatment.Price,
		DurationMinutes: treatment.DurationMinutes,
		CreatedAt:       treatment.CreatedAt,
		UpdatedAt:       treatment.UpdatedAt,
	}
}

// TreatmentsToResponses converts a slice of Treatment entities to response DTOs
func TreatmentsToResponses(treatments []entity.Treatment) []dto.TreatmentResponse {
	responses := make([]dto.TreatmentResponse, len(treatments))
	for i, treatment := range treatments {
		resp := TreatmentToResponse(&treatment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
