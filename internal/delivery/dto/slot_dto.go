package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type GenerateSlotsRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type CreateSlotRequest struct {
	DentistID   uuid.UUID `json:"dentist_id" validate:"required"`
	Date        string    `json:"date" validate:"required"`
	StartTime   string    `json:"start_time" validate:"required,clocktime"`
	EndTime     string    `json:"end_time" validate:"required,clocktime"`
	TreatmentID *int      `json:"treatment_id,omitempty"`
}

type SetSlotAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}

// Response DTOs

type SlotResponse struct {
	ID          int       `json:"id"`
	DentistID   uuid.UUID `json:"dentist_id"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Status      string    `json:"status"`
	TreatmentID *int      `json:"treatment_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

type GenerateSlotsResponse struct {
	Created int64 `json:"created"`
}
