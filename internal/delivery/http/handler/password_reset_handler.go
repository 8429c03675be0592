package handler

import (
	"encoding/json"
	"net/http"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/response"
	"dental-clinic-api/pkg/validator"
)

type PasswordResetHandler struct {
	resetUsecase usecase.PasswordResetUsecase
	validator    *validator.CustomValidator
}

func NewPasswordResetHandler(resetUsecase usecase.PasswordResetUsecase, validator *validator.CustomValidator) *PasswordResetHandler {
	return &PasswordResetHandler{
		resetUsecase: resetUsecase,
		validator:    validator,
	}
}

// Request always answers 200 with the same message. A different answer for
// unknown emails would let callers probe which addresses have accounts.
func (h *PasswordResetHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req dto.RequestPasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.resetUsecase.Request(r.Context(), req.Email); err != nil {
		response.InternalServerError(w, "Failed to process reset request")
		return
	}

	response.Success(w, http.StatusOK, "If the email is registered, a reset link has been sent", nil)
}

func (h *PasswordResetHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateResetTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.resetUsecase.Validate(r.Context(), req.Token); err != nil {
		switch err {
		case usecase.ErrResetTokenNotFound:
			response.Error(w, http.StatusBadRequest, "Reset token is invalid or expired", nil)
		default:
			response.InternalServerError(w, "Failed to validate reset token")
		}
		return
	}

	response.Success(w, http.StatusOK, "Reset token is valid", nil)
}

func (h *PasswordResetHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req dto.ConfirmPasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.resetUsecase.Consume(r.Context(), req.Token, req.NewPassword); err != nil {
		switch err {
		case usecase.ErrResetTokenNotFound:
			response.Error(w, http.StatusBadRequest, "Reset token is invalid or expired", nil)
		case usecase.ErrUserNotFound:
			response.Error(w, http.StatusBadRequest, "Reset token is invalid or expired", nil)
		default:
			response.InternalServerError(w, "Failed to reset password")
		}
		return
	}

	response.Success(w, http.StatusOK, "Password has been reset successfully", nil)
}
