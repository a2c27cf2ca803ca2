package ingredient

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebox/recipe-api/domain"
	"github.com/recipebox/recipe-api/entities"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, userID string) ([]domain.IngredientResponse, error)
		CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest, userID string) (domain.IngredientResponse, error)
		UpdateIngredient(ctx context.Context, ingredientID string, req domain.UpdateIngredientRequest, userID string) (domain.IngredientResponse, error)
		DeleteIngredient(ctx context.Context, ingredientID string, userID string) error
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepository: ingredientRepository}
}

func (s *ingredientService) GetIngredients(ctx context.Context, userID string) ([]domain.IngredientResponse, error) {
	ingredients, err := s.ingredientRepository.GetIngredients(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		res = append(res, domain.IngredientResponse{ID: ingredient.ID.String(), Name: ingredient.Name})
	}
	return res, nil
}

func (s *ingredientService) CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest, userID string) (domain.IngredientResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.IngredientResponse{}, domain.ErrParseUUID
	}

	_, err = s.ingredientRepository.GetIngredientByName(ctx, userID, req.Name)
	if err == nil {
		return domain.IngredientResponse{}, domain.ErrIngredientAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.IngredientResponse{}, err
	}

	ingredient := &entities.Ingredient{UserID: ownerID, Name: req.Name}
	if err := s.ingredientRepository.CreateIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}
	return domain.IngredientResponse{ID: ingredient.ID.String(), Name: ingredient.Name}, nil
}

func (s *ingredientService) UpdateIngredient(ctx context.Context, ingredientID string, req domain.UpdateIngredientRequest, userID string) (domain.IngredientResponse, error) {
	// A malformed id cannot match a record; the uuid column would reject
	// it with a cast error instead of an empty result.
	if _, err := uuid.Parse(ingredientID); err != nil {
		return domain.IngredientResponse{}, domain.ErrIngredientNotFound
	}

	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, ingredientID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}

	if req.Name != ingredient.Name {
		existing, err := s.ingredientRepository.GetIngredientByName(ctx, userID, req.Name)
		if err == nil && existing.ID != ingredient.ID {
			return domain.IngredientResponse{}, domain.ErrIngredientAlreadyExists
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, err
		}
	}

	ingredient.Name = req.Name
	if err := s.ingredientRepository.UpdateIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}
	return domain.IngredientResponse{ID: ingredient.ID.String(), Name: ingredient.Name}, nil
}

func (s *ingredientService) DeleteIngredient(ctx context.Context, ingredientID string, userID string) error {
	if _, err := uuid.Parse(ingredientID); err != nil {
		return domain.ErrIngredientNotFound
	}

	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, ingredientID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}
	return s.ingredientRepository.DeleteIngredient(ctx, ingredient)
}
