package converter

import (
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
)

// SlotToResponse converts a Slot entity plus its derived status to a response DTO
func SlotToResponse(slot *entity.Slot, status entity.SlotStatus) *dto.SlotResponse {
	if slot == nil {
		return nil
	}

	return &dto.SlotResponse{
		ID:          slot.ID,
		DentistID:   slot.DentistID,
		Date:        slot.SlotDate.Format("2006-01-02"),
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		Status:      string(status),
		TreatmentID: slot.TreatmentID,
		CreatedAt:   slot.CreatedAt,
	}
}
