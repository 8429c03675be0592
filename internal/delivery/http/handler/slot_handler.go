package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/response"
	"dental-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type SlotHandler struct {
	slotUsecase usecase.SlotUsecase
	validator   *validator.CustomValidator
}

func NewSlotHandler(slotUsecase usecase.SlotUsecase, validator *validator.CustomValidator) *SlotHandler {
	return &SlotHandler{
		slotUsecase: slotUsecase,
		validator:   validator,
	}
}

func (h *SlotHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerateSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.slotUsecase.Generate(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidSlotDate:
			response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD", nil)
		case usecase.ErrInvalidDateRange:
			response.Error(w, http.StatusBadRequest, "End date must not be before start date", nil)
		default:
			response.InternalServerError(w, "Failed to generate slots")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Slots generated successfully", result)
}

func (h *SlotHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.slotUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidSlotDate, usecase.ErrInvalidSlotTime:
			response.Error(w, http.StatusBadRequest, "Invalid date or time format", nil)
		case usecase.ErrSlotExists:
			response.Conflict(w, "Slot already exists for this dentist, date and time")
		default:
			response.InternalServerError(w, "Failed to create slot")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Slot created successfully", slot)
}

func (h *SlotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.slotID(w, r)
	if !ok {
		return
	}

	if err := h.slotUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		case usecase.ErrSlotBooked:
			response.Conflict(w, "Slot has an active booking and cannot be deleted")
		default:
			response.InternalServerError(w, "Failed to delete slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slot deleted successfully", nil)
}

func (h *SlotHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := h.slotID(w, r)
	if !ok {
		return
	}

	var req dto.SetSlotAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.slotUsecase.SetAvailability(r.Context(), id, *req.IsAvailable); err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		default:
			response.InternalServerError(w, "Failed to update slot availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slot availability updated successfully", nil)
}

// DentistSlots lists a dentist's slots for one day with their derived status.
// This endpoint is public so patients can browse availability before booking.
func (h *SlotHandler) DentistSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dentistID, err := uuid.Parse(vars["dentistId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid dentist ID", nil)
		return
	}

	dateStr := r.URL.Query().Get("date")
	date := time.Now()
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD", nil)
			return
		}
		date = parsed
	}

	slots, err := h.slotUsecase.DentistSlots(r.Context(), dentistID, date)
	if err != nil {
		response.InternalServerError(w, "Failed to get slots")
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

func (h *SlotHandler) slotID(w http.ResponseWriter, r *http.Request) (int, bool) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid slot ID", nil)
		return 0, false
	}
	return id, true
}
