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

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidAppointmentDate, usecase.ErrInvalidAppointmentTime:
			response.Error(w, http.StatusBadRequest, "Invalid date or time format", nil)
		case usecase.ErrClinicClosedSunday:
			response.Error(w, http.StatusBadRequest, "The clinic is closed on Sundays", nil)
		case usecase.ErrBookingTooSoon:
			response.Error(w, http.StatusBadRequest, "Appointments must be booked at least 24 hours in advance", nil)
		case usecase.ErrBookingRateLimited:
			response.TooManyRequests(w, "Too many booking attempts, please try again later")
		case usecase.ErrTreatmentNotFound:
			response.NotFound(w, "Treatment not found")
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		case usecase.ErrSlotUnavailable:
			response.Conflict(w, "Slot is not available")
		case usecase.ErrSlotTreatmentMismatch:
			response.Conflict(w, "Slot is reserved for a different treatment")
		case usecase.ErrSlotTaken:
			response.Conflict(w, "Slot is already booked")
		case usecase.ErrPatientProfileNotFound:
			response.Forbidden(w, "Patient profile not found")
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	if err := h.appointmentUsecase.Confirm(r.Context(), id); err != nil {
		h.writeTransitionError(w, err, "Failed to confirm appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment confirmed successfully", nil)
}

func (h *AppointmentHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	if err := h.appointmentUsecase.CheckIn(r.Context(), id); err != nil {
		h.writeTransitionError(w, err, "Failed to check in appointment")
		return
	}

	response.Success(w, http.StatusOK, "Patient checked in successfully", nil)
}

func (h *AppointmentHandler) RecordTreatment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	var req dto.RecordTreatmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	history, err := h.appointmentUsecase.RecordTreatment(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, "Appointment does not belong to you")
		case usecase.ErrInvalidTransition:
			response.Conflict(w, "Appointment is not awaiting treatment")
		case usecase.ErrTreatmentHistoryExists:
			response.Conflict(w, "Treatment has already been recorded for this appointment")
		case usecase.ErrInvalidNextVisitDate:
			response.Error(w, http.StatusBadRequest, "Invalid next visit date, use YYYY-MM-DD", nil)
		case usecase.ErrDentistProfileNotFound:
			response.Forbidden(w, "Dentist profile not found")
		default:
			response.InternalServerError(w, "Failed to record treatment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Treatment recorded successfully", history)
}

func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	if err := h.appointmentUsecase.Complete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrTreatmentHistoryMissing:
			response.Conflict(w, "Treatment must be recorded before completing the appointment")
		default:
			h.writeTransitionError(w, err, "Failed to complete appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment completed successfully", nil)
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	var req dto.CancelAppointmentRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.appointmentUsecase.Cancel(r.Context(), id, &req); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, "Appointment does not belong to you")
		case usecase.ErrCancelNotAllowedFromStatus:
			response.Conflict(w, "Appointment can no longer be cancelled")
		case usecase.ErrInvalidTransition:
			response.Conflict(w, "Appointment is already finished")
		case usecase.ErrPatientProfileNotFound:
			response.Forbidden(w, "Patient profile not found")
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetMyAppointments(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrPatientProfileNotFound:
			response.Forbidden(w, "Patient profile not found")
		default:
			response.InternalServerError(w, "Failed to get appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetDentistDay(w http.ResponseWriter, r *http.Request) {
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

	appointments, err := h.appointmentUsecase.GetDentistDay(r.Context(), date)
	if err != nil {
		switch err {
		case usecase.ErrDentistProfileNotFound:
			response.Forbidden(w, "Dentist profile not found")
		default:
			response.InternalServerError(w, "Failed to get appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	appointments, err := h.appointmentUsecase.ListAll(r.Context(), limit, offset)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) appointmentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *AppointmentHandler) writeTransitionError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrInvalidTransition:
		response.Conflict(w, "Appointment status does not allow this action")
	case usecase.ErrAppointmentNotOwned:
		response.Forbidden(w, "Appointment does not belong to you")
	case usecase.ErrDentistProfileNotFound:
		response.Forbidden(w, "Dentist profile not found")
	default:
		response.InternalServerError(w, fallback)
	}
}
