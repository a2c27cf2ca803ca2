package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/recipebox/recipe-api/domain"
	"github.com/recipebox/recipe-api/internal/utils"
)

const resetTokenIssuer = "recipe-api"

// Reset tokens are short-lived signed claims, unlike the persisted opaque
// bearer tokens used for request authentication.
func generateResetToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
		"iss":   resetTokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.GetConfig("JWT_SECRET")))
}

func validateResetToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(utils.GetConfig("JWT_SECRET")), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrResetTokenInvalid
	}
	if !token.Valid {
		return "", domain.ErrResetTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrResetTokenInvalid
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", domain.ErrResetTokenInvalid
	}
	return email, nil
}
