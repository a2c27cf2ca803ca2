package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/recipebox/recipe-api/domain"
	"github.com/recipebox/recipe-api/entities"
	"github.com/recipebox/recipe-api/internal/utils"
	"github.com/recipebox/recipe-api/pkg/user"
)

type (
	AuthService interface {
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		ResolveToken(ctx context.Context, key string) (*entities.User, error)
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	}

	Mailer interface {
		Send(toEmail string, subject string, body string) error
	}

	authService struct {
		tokenRepository TokenRepository
		userRepository  user.UserRepository
		mailer          Mailer
	}
)

func NewAuthService(tokenRepository TokenRepository, userRepository user.UserRepository, mailer Mailer) AuthService {
	return &authService{
		tokenRepository: tokenRepository,
		userRepository:  userRepository,
		mailer:          mailer,
	}
}

// Login verifies the credentials and returns the user's bearer token,
// issuing one on first login and reusing it afterwards.
func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	email, err := utils.NormalizeEmail(req.Email)
	if err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	account, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	if !account.IsActive {
		return domain.LoginResponse{}, domain.ErrUserInactive
	}

	token, err := s.tokenRepository.GetTokenByUserID(ctx, account.ID.String())
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, err
		}
		key, err := generateTokenKey()
		if err != nil {
			return domain.LoginResponse{}, err
		}
		token = &entities.AuthToken{Key: key, UserID: account.ID}
		if err := s.tokenRepository.CreateToken(ctx, token); err != nil {
			return domain.LoginResponse{}, err
		}
	}

	return domain.LoginResponse{Token: token.Key}, nil
}

// ResolveToken maps a bearer token key back to its user. Unknown keys and
// inactive accounts are both reported as an invalid token.
func (s *authService) ResolveToken(ctx context.Context, key string) (*entities.User, error) {
	token, err := s.tokenRepository.GetTokenByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	if token.User == nil || !token.User.IsActive {
		return nil, domain.ErrTokenInvalid
	}
	return token.User, nil
}

func (s *authService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	email, err := utils.NormalizeEmail(req.Email)
	if err != nil {
		return err
	}

	account, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Do not reveal whether the address is registered.
			return nil
		}
		return err
	}

	resetToken, err := generateResetToken(account.Email)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", utils.GetConfig("APP_URL"), resetToken)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Click <a href=\"%s\">here</a> to reset your password. The link expires in 24 hours.</p>",
		account.Name, link,
	)
	return s.mailer.Send(account.Email, "Reset your password", body)
}

func (s *authService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	email, err := validateResetToken(req.Token)
	if err != nil {
		return err
	}

	account, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrResetTokenInvalid
		}
		return err
	}

	hashed, err := user.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	account.Password = hashed
	return s.userRepository.UpdateUser(ctx, account)
}

// generateTokenKey returns a 40-character hex key from a CSPRNG.
func generateTokenKey() (string, error) {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
