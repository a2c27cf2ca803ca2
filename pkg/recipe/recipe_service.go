package recipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebox/recipe-api/domain"
	"github.com/recipebox/recipe-api/entities"
	"github.com/recipebox/recipe-api/internal/utils/storage"
)

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, userID string) ([]domain.RecipeResponse, error)
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error)
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
		UploadRecipeImage(ctx context.Context, req domain.UploadRecipeImageRequest, recipeID string, userID string) (domain.RecipeResponse, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		storage          storage.Uploader
	}
)

func NewRecipeService(recipeRepository RecipeRepository, storage storage.Uploader) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		storage:          storage,
	}
}

func (s *recipeService) GetRecipes(ctx context.Context, userID string) ([]domain.RecipeResponse, error) {
	recipes, err := s.recipeRepository.GetRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		res = append(res, toRecipeResponse(recipe))
	}
	return res, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error) {
	// A malformed id cannot match a record; the uuid column would reject
	// it with a cast error instead of an empty result.
	if _, err := uuid.Parse(recipeID); err != nil {
		return domain.RecipeResponse{}, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}
	return toRecipeResponse(recipe), nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	recipe := &entities.Recipe{
		UserID:      ownerID,
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Description: req.Description,
		Link:        req.Link,
	}

	err = s.recipeRepository.WithTransaction(ctx, func(repo RecipeRepository) error {
		if err := repo.CreateRecipe(ctx, recipe); err != nil {
			return err
		}
		if req.Tags != nil {
			tags, err := s.getOrCreateTags(ctx, repo, ownerID, *req.Tags)
			if err != nil {
				return err
			}
			if err := repo.ReplaceTags(ctx, recipe, tags); err != nil {
				return err
			}
		}
		if req.Ingredients != nil {
			ingredients, err := s.getOrCreateIngredients(ctx, repo, ownerID, *req.Ingredients)
			if err != nil {
				return err
			}
			if err := repo.ReplaceIngredients(ctx, recipe, ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}
	if _, err := uuid.Parse(recipeID); err != nil {
		return domain.RecipeResponse{}, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		recipe.Price = *req.Price
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}

	err = s.recipeRepository.WithTransaction(ctx, func(repo RecipeRepository) error {
		if err := repo.UpdateRecipe(ctx, recipe); err != nil {
			return err
		}
		if req.Tags != nil {
			tags, err := s.getOrCreateTags(ctx, repo, ownerID, *req.Tags)
			if err != nil {
				return err
			}
			if err := repo.ReplaceTags(ctx, recipe, tags); err != nil {
				return err
			}
		}
		if req.Ingredients != nil {
			ingredients, err := s.getOrCreateIngredients(ctx, repo, ownerID, *req.Ingredients)
			if err != nil {
				return err
			}
			if err := repo.ReplaceIngredients(ctx, recipe, ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipeID, userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	if _, err := uuid.Parse(recipeID); err != nil {
		return domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	return s.recipeRepository.DeleteRecipe(ctx, recipe)
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, req domain.UploadRecipeImageRequest, recipeID string, userID string) (domain.RecipeResponse, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return domain.RecipeResponse{}, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	key := fmt.Sprintf("recipes/%s/%s", recipe.ID, req.Image.Filename)
	url, err := s.storage.UploadFile(ctx, key, req.Image)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe.ImageURL = url
	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}
	return toRecipeResponse(recipe), nil
}

// getOrCreateTags resolves each payload name to the caller's tag with that
// exact name, creating missing ones. Duplicate names in one payload resolve
// to a single record.
func (s *recipeService) getOrCreateTags(ctx context.Context, repo RecipeRepository, ownerID uuid.UUID, payload []domain.RecipeTagPayload) ([]*entities.Tag, error) {
	tags := make([]*entities.Tag, 0, len(payload))
	seen := make(map[string]bool, len(payload))

	for _, entry := range payload {
		if seen[entry.Name] {
			continue
		}
		seen[entry.Name] = true

		tag, err := repo.GetTagByName(ctx, ownerID.String(), entry.Name)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			tag = &entities.Tag{UserID: ownerID, Name: entry.Name}
			if err := repo.CreateTag(ctx, tag); err != nil {
				return nil, err
			}
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (s *recipeService) getOrCreateIngredients(ctx context.Context, repo RecipeRepository, ownerID uuid.UUID, payload []domain.RecipeIngredientPayload) ([]*entities.Ingredient, error) {
	ingredients := make([]*entities.Ingredient, 0, len(payload))
	seen := make(map[string]bool, len(payload))

	for _, entry := range payload {
		if seen[entry.Name] {
			continue
		}
		seen[entry.Name] = true

		ingredient, err := repo.GetIngredientByName(ctx, ownerID.String(), entry.Name)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			ingredient = &entities.Ingredient{UserID: ownerID, Name: entry.Name}
			if err := repo.CreateIngredient(ctx, ingredient); err != nil {
				return nil, err
			}
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, nil
}

func toRecipeResponse(recipe *entities.Recipe) domain.RecipeResponse {
	tags := make([]domain.TagResponse, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, domain.TagResponse{ID: tag.ID.String(), Name: tag.Name})
	}

	ingredients := make([]domain.IngredientResponse, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		ingredients = append(ingredients, domain.IngredientResponse{ID: ingredient.ID.String(), Name: ingredient.Name})
	}

	return domain.RecipeResponse{
		ID:          recipe.ID.String(),
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Description: recipe.Description,
		Link:        recipe.Link,
		ImageURL:    recipe.ImageURL,
		Tags:        tags,
		Ingredients: ingredients,
	}
}
