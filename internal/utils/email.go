package utils

import (
	"errors"
	"strings"
)

var ErrEmailRequired = errors.New("email address is required")

// NormalizeEmail lower-cases the domain part of an email address and
// leaves the local part as entered.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrEmailRequired
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", ErrEmailRequired
	}

	local := email[:at]
	domain := strings.ToLower(email[at+1:])
	return local + "@" + domain, nil
}
