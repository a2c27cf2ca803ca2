package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessUploadImage     = "recipe image uploaded successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedUploadImage     = "failed to upload recipe image"

	ErrRecipeNotFound = errors.New("recipe not found")
)

type (
	// Nested tag/ingredient entries carry only a name; they resolve to an
	// existing record of the caller or create a new one.
	RecipeTagPayload struct {
		Name string `json:"name" validate:"required"`
	}

	RecipeIngredientPayload struct {
		Name string `json:"name" validate:"required"`
	}

	CreateRecipeRequest struct {
		Title       string                     `json:"title" validate:"required"`
		TimeMinutes int                        `json:"time_minutes" validate:"required,min=1"`
		Price       float64                    `json:"price" validate:"omitempty,min=0"`
		Description string                     `json:"description"`
		Link        string                     `json:"link" validate:"omitempty,url"`
		Tags        *[]RecipeTagPayload        `json:"tags" validate:"omitempty,dive"`
		Ingredients *[]RecipeIngredientPayload `json:"ingredients" validate:"omitempty,dive"`
	}

	// A nil slice pointer means "leave the associations as they are";
	// a pointer to an empty slice clears them.
	UpdateRecipeRequest struct {
		Title       *string                    `json:"title" validate:"omitempty,min=1"`
		TimeMinutes *int                       `json:"time_minutes" validate:"omitempty,min=1"`
		Price       *float64                   `json:"price" validate:"omitempty,min=0"`
		Description *string                    `json:"description"`
		Link        *string                    `json:"link" validate:"omitempty,url"`
		Tags        *[]RecipeTagPayload        `json:"tags" validate:"omitempty,dive"`
		Ingredients *[]RecipeIngredientPayload `json:"ingredients" validate:"omitempty,dive"`
	}

	UploadRecipeImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	RecipeResponse struct {
		ID          string               `json:"id"`
		Title       string               `json:"title"`
		TimeMinutes int                  `json:"time_minutes"`
		Price       float64              `json:"price"`
		Description string               `json:"description"`
		Link        string               `json:"link"`
		ImageURL    string               `json:"image_url,omitempty"`
		Tags        []TagResponse        `json:"tags"`
		Ingredients []IngredientResponse `json:"ingredients"`
	}
)
