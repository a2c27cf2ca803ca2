package domain

import (
	"errors"
)

var (
	MessageFailedBodyRequest    = "failed to process request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "token invalid"
	MessageUserNotAllowed       = "user not allowed"

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("token not found")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrTokenExpired   = errors.New("token expired")
)

var clientErrors = []error{
	ErrParseUUID,
	ErrUserNotAllowed,
	ErrTokenNotFound,
	ErrTokenInvalid,
	ErrTokenExpired,
	ErrEmailAlreadyRegistered,
	ErrUserNotFound,
	ErrInvalidCredentials,
	ErrUserInactive,
	ErrResetTokenInvalid,
	ErrRecipeNotFound,
	ErrTagNotFound,
	ErrTagAlreadyExists,
	ErrIngredientNotFound,
	ErrIngredientAlreadyExists,
}

// IsClientError reports whether err is one of the sentinels above, whose
// text is written for API consumers. Anything else (database, storage,
// mail failures) must not be echoed to clients.
func IsClientError(err error) bool {
	for _, sentinel := range clientErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
