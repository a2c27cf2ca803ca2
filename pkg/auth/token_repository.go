package auth

import (
	"context"

	"gorm.io/gorm"

	"github.com/recipebox/recipe-api/entities"
)

type (
	TokenRepository interface {
		CreateToken(ctx context.Context, token *entities.AuthToken) error
		GetTokenByKey(ctx context.Context, key string) (*entities.AuthToken, error)
		GetTokenByUserID(ctx context.Context, userID string) (*entities.AuthToken, error)
		DeleteTokenByUserID(ctx context.Context, userID string) error
	}

	tokenRepository struct {
		db *gorm.DB
	}
)

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) CreateToken(ctx context.Context, token *entities.AuthToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) GetTokenByKey(ctx context.Context, key string) (*entities.AuthToken, error) {
	var token entities.AuthToken
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("key = ?", key).
		First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) GetTokenByUserID(ctx context.Context, userID string) (*entities.AuthToken, error) {
	var token entities.AuthToken
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) DeleteTokenByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entities.AuthToken{}).Error
}
