package presenters

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebox/recipe-api/domain"
)

func TestErrorResponseExpandsValidationErrors(t *testing.T) {
	type payload struct {
		Email       string `validate:"required,email"`
		TimeMinutes int    `validate:"required,min=1"`
	}

	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		err := validator.New().Struct(payload{Email: "not-an-email"})
		return ErrorResponse(c, fiber.StatusBadRequest, "failed validation", err)
	})

	res, err := app.Test(httptest.NewRequest(http.MethodPost, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var body struct {
		Status  string            `json:"status"`
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, "error", body.Status)
	// Field names come back snake_cased.
	assert.Contains(t, body.Errors, "email")
	assert.Contains(t, body.Errors, "time_minutes")
	assert.Equal(t, "this field is required", body.Errors["time_minutes"])
}

func TestErrorResponseHidesInternalErrors(t *testing.T) {
	app := fiber.New()
	app.Get("/internal", func(c *fiber.Ctx) error {
		err := errors.New(`pq: connection refused on host "db-prod-1"`)
		return ErrorResponse(c, fiber.StatusBadRequest, "failed to get recipes", err)
	})
	app.Get("/domain", func(c *fiber.Ctx) error {
		return ErrorResponse(c, fiber.StatusNotFound, "failed to get recipe detail", domain.ErrRecipeNotFound)
	})

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/internal", nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	// Infrastructure detail stays out of the envelope.
	assert.NotContains(t, body, "errors")
	assert.NotContains(t, string(raw), "db-prod-1")
	assert.Equal(t, "failed to get recipes", body["message"])

	res, err = app.Test(httptest.NewRequest(http.MethodGet, "/domain", nil))
	require.NoError(t, err)
	raw, err = io.ReadAll(res.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, domain.ErrRecipeNotFound.Error(), body["errors"])
}

func TestSuccessResponseShape(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return SuccessResponse(c, fiber.Map{"name": "testuser"}, fiber.StatusOK, "ok")
	})

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "ok", body["message"])
	assert.Equal(t, "testuser", body["data"].(map[string]any)["name"])
}
