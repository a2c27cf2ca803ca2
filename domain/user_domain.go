package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister   = "user registered successfully"
	MessageSuccessGetMe      = "success get profile"
	MessageSuccessUpdateMe   = "profile updated successfully"
	MessageSuccessGetUsers   = "success get users"
	MessageSuccessUpdateUser = "user updated successfully"

	MessageFailedRegister   = "failed to register user"
	MessageFailedGetMe      = "failed to get profile"
	MessageFailedUpdateMe   = "failed to update profile"
	MessageFailedGetUsers   = "failed to get users"
	MessageFailedUpdateUser = "failed to update user"

	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrUserNotFound           = errors.New("user not found")
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=5"`
		Name     string `json:"name" validate:"required"`
	}

	RegisterResponse struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}

	MeResponse struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	// Email and the staff/superuser flags cannot be changed through the
	// profile endpoint; any such fields in the payload are dropped by the
	// parser because they are not declared here.
	UpdateMeRequest struct {
		Name     *string `json:"name" validate:"omitempty,min=1"`
		Password *string `json:"password" validate:"omitempty,min=5"`
	}

	AdminUpdateUserRequest struct {
		Name     *string `json:"name" validate:"omitempty,min=1"`
		IsActive *bool   `json:"is_active"`
		IsStaff  *bool   `json:"is_staff"`
	}

	UserResponse struct {
		ID          string    `json:"id"`
		Email       string    `json:"email"`
		Name        string    `json:"name"`
		IsActive    bool      `json:"is_active"`
		IsStaff     bool      `json:"is_staff"`
		IsSuperuser bool      `json:"is_superuser"`
		CreatedAt   time.Time `json:"created_at"`
	}
)
