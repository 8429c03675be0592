package dto

import "github.com/google/uuid"

// Request DTOs

type UpsertDentistScheduleRequest struct {
	DentistID uuid.UUID `json:"dentist_id" validate:"required"`
	Weekday   int       `json:"weekday" validate:"min=0,max=6"`
	StartTime string    `json:"start_time" validate:"required,clocktime"`
	EndTime   string    `json:"end_time" validate:"required,clocktime"`
	IsWorking *bool     `json:"is_working" validate:"required"`
}

// Response DTOs

type DentistScheduleResponse struct {
	ID        int       `json:"id"`
	DentistID uuid.UUID `json:"dentist_id"`
	Weekday   int       `json:"weekday"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	IsWorking bool      `json:"is_working"`
}

type DentistScheduleListResponse struct {
	Schedules []DentistScheduleResponse `json:"schedules"`
	Total     int                       `json:"total"`
}
