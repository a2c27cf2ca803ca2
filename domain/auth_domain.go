package domain

import (
	"errors"
)

var (
	MessageSuccessLogin          = "login successful"
	MessageSuccessForgotPassword = "password reset email sent"
	MessageSuccessResetPassword  = "password reset successfully"

	MessageFailedLogin          = "failed to login"
	MessageFailedForgotPassword = "failed to send password reset email"
	MessageFailedResetPassword  = "failed to reset password"

	// Deliberately the same error for unknown email and wrong password
	// so the response does not reveal whether an account exists.
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
)

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=5"`
	}
)
