package dto

// Request DTOs

type RequestPasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ValidateResetTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type ConfirmPasswordResetRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
