package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebox/recipe-api/domain"
	"github.com/recipebox/recipe-api/entities"
	"github.com/recipebox/recipe-api/internal/api/handlers"
	"github.com/recipebox/recipe-api/internal/api/routes"
	"github.com/recipebox/recipe-api/internal/middleware"
)

type mockUserService struct {
	RegisterFn          func(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
	MeFn                func(ctx context.Context, userID string) (domain.MeResponse, error)
	UpdateMeFn          func(ctx context.Context, req domain.UpdateMeRequest, userID string) (domain.MeResponse, error)
	GetUsersFn          func(ctx context.Context) ([]domain.UserResponse, error)
	GetUserByIDFn       func(ctx context.Context, id string) (domain.UserResponse, error)
	UpdateUserByAdminFn func(ctx context.Context, id string, req domain.AdminUpdateUserRequest) (domain.UserResponse, error)
}

func (m *mockUserService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	return m.RegisterFn(ctx, req)
}

func (m *mockUserService) Me(ctx context.Context, userID string) (domain.MeResponse, error) {
	return m.MeFn(ctx, userID)
}

func (m *mockUserService) UpdateMe(ctx context.Context, req domain.UpdateMeRequest, userID string) (domain.MeResponse, error) {
	return m.UpdateMeFn(ctx, req, userID)
}

func (m *mockUserService) GetUsers(ctx context.Context) ([]domain.UserResponse, error) {
	return m.GetUsersFn(ctx)
}

func (m *mockUserService) GetUserByID(ctx context.Context, id string) (domain.UserResponse, error) {
	return m.GetUserByIDFn(ctx, id)
}

func (m *mockUserService) UpdateUserByAdmin(ctx context.Context, id string, req domain.AdminUpdateUserRequest) (domain.UserResponse, error) {
	return m.UpdateUserByAdminFn(ctx, id, req)
}

type mockAuthService struct {
	LoginFn          func(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
	ResolveTokenFn   func(ctx context.Context, key string) (*entities.User, error)
	ForgotPasswordFn func(ctx context.Context, req domain.ForgotPasswordRequest) error
	ResetPasswordFn  func(ctx context.Context, req domain.ResetPasswordRequest) error
}

func (m *mockAuthService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	return m.LoginFn(ctx, req)
}

func (m *mockAuthService) ResolveToken(ctx context.Context, key string) (*entities.User, error) {
	return m.ResolveTokenFn(ctx, key)
}

func (m *mockAuthService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	return m.ForgotPasswordFn(ctx, req)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	return m.ResetPasswordFn(ctx, req)
}

type mockRecipeService struct {
	GetRecipesFn        func(ctx context.Context, userID string) ([]domain.RecipeResponse, error)
	GetRecipeDetailFn   func(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error)
	CreateRecipeFn      func(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error)
	UpdateRecipeFn      func(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error)
	DeleteRecipeFn      func(ctx context.Context, recipeID string, userID string) error
	UploadRecipeImageFn func(ctx context.Context, req domain.UploadRecipeImageRequest, recipeID string, userID string) (domain.RecipeResponse, error)
}

func (m *mockRecipeService) GetRecipes(ctx context.Context, userID string) ([]domain.RecipeResponse, error) {
	return m.GetRecipesFn(ctx, userID)
}

func (m *mockRecipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error) {
	return m.GetRecipeDetailFn(ctx, recipeID, userID)
}

func (m *mockRecipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	return m.CreateRecipeFn(ctx, req, userID)
}

func (m *mockRecipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	return m.UpdateRecipeFn(ctx, recipeID, req, userID)
}

func (m *mockRecipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	return m.DeleteRecipeFn(ctx, recipeID, userID)
}

func (m *mockRecipeService) UploadRecipeImage(ctx context.Context, req domain.UploadRecipeImageRequest, recipeID string, userID string) (domain.RecipeResponse, error) {
	return m.UploadRecipeImageFn(ctx, req, recipeID, userID)
}

type mockTagService struct {
	GetTagsFn   func(ctx context.Context, userID string) ([]domain.TagResponse, error)
	CreateTagFn func(ctx context.Context, req domain.CreateTagRequest, userID string) (domain.TagResponse, error)
	UpdateTagFn func(ctx context.Context, tagID string, req domain.UpdateTagRequest, userID string) (domain.TagResponse, error)
	DeleteTagFn func(ctx context.Context, tagID string, userID string) error
}

func (m *mockTagService) GetTags(ctx context.Context, userID string) ([]domain.TagResponse, error) {
	return m.GetTagsFn(ctx, userID)
}

func (m *mockTagService) CreateTag(ctx context.Context, req domain.CreateTagRequest, userID string) (domain.TagResponse, error) {
	return m.CreateTagFn(ctx, req, userID)
}

func (m *mockTagService) UpdateTag(ctx context.Context, tagID string, req domain.UpdateTagRequest, userID string) (domain.TagResponse, error) {
	return m.UpdateTagFn(ctx, tagID, req, userID)
}

func (m *mockTagService) DeleteTag(ctx context.Context, tagID string, userID string) error {
	return m.DeleteTagFn(ctx, tagID, userID)
}

type mockIngredientService struct {
	GetIngredientsFn   func(ctx context.Context, userID string) ([]domain.IngredientResponse, error)
	CreateIngredientFn func(ctx context.Context, req domain.CreateIngredientRequest, userID string) (domain.IngredientResponse, error)
	UpdateIngredientFn func(ctx context.Context, ingredientID string, req domain.UpdateIngredientRequest, userID string) (domain.IngredientResponse, error)
	DeleteIngredientFn func(ctx context.Context, ingredientID string, userID string) error
}

func (m *mockIngredientService) GetIngredients(ctx context.Context, userID string) ([]domain.IngredientResponse, error) {
	return m.GetIngredientsFn(ctx, userID)
}

func (m *mockIngredientService) CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest, userID string) (domain.IngredientResponse, error) {
	return m.CreateIngredientFn(ctx, req, userID)
}

func (m *mockIngredientService) UpdateIngredient(ctx context.Context, ingredientID string, req domain.UpdateIngredientRequest, userID string) (domain.IngredientResponse, error) {
	return m.UpdateIngredientFn(ctx, ingredientID, req, userID)
}

func (m *mockIngredientService) DeleteIngredient(ctx context.Context, ingredientID string, userID string) error {
	return m.DeleteIngredientFn(ctx, ingredientID, userID)
}

type testEnv struct {
	app        *fiber.App
	user       *mockUserService
	auth       *mockAuthService
	recipe     *mockRecipeService
	tag        *mockTagService
	ingredient *mockIngredientService
	authedUser *entities.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		app:        fiber.New(),
		user:       &mockUserService{},
		auth:       &mockAuthService{},
		recipe:     &mockRecipeService{},
		tag:        &mockTagService{},
		ingredient: &mockIngredientService{},
		authedUser: &entities.User{ID: uuid.New(), Email: "testuser@example.com", IsActive: true},
	}
	// Any token resolves to the test account unless a test overrides this.
	env.auth.ResolveTokenFn = func(_ context.Context, key string) (*entities.User, error) {
		if key == "" {
			return nil, domain.ErrTokenInvalid
		}
		return env.authedUser, nil
	}

	validate := validator.New()
	routesConfig := routes.Config{
		App:               env.app,
		UserHandler:       handlers.NewUserHandler(env.user, env.auth, validate),
		RecipeHandler:     handlers.NewRecipeHandler(env.recipe, validate),
		TagHandler:        handlers.NewTagHandler(env.tag, validate),
		IngredientHandler: handlers.NewIngredientHandler(env.ingredient, validate),
		Middleware:        middleware.NewMiddleware(),
		AuthService:       env.auth,
	}
	routesConfig.Setup()
	return env
}

func (e *testEnv) request(t *testing.T, method, target string, body any, authed bool) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer sometoken")
	}

	res, err := e.app.Test(req)
	require.NoError(t, err)
	return res
}

func decodeBody(t *testing.T, res *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{"/api/v1/recipes", "/api/v1/tags", "/api/v1/ingredients", "/api/v1/users/me"} {
		res := env.request(t, http.MethodGet, target, nil, false)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, target)
	}
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
	req.Header.Set("Authorization", "Token abc123")
	res, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestRegisterCreated(t *testing.T) {
	env := newTestEnv(t)
	env.user.RegisterFn = func(_ context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
		return domain.RegisterResponse{Email: req.Email, Name: req.Name}, nil
	}

	res := env.request(t, http.MethodPost, "/api/v1/users/register", fiber.Map{
		"email":    "testuser@example.com",
		"password": "testpass123",
		"name":     "testuser",
	}, false)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	body := decodeBody(t, res)
	data := body["data"].(map[string]any)
	assert.Equal(t, "testuser@example.com", data["email"])
	// The password never appears in the response.
	assert.NotContains(t, data, "password")
}

func TestRegisterShortPasswordRejected(t *testing.T) {
	env := newTestEnv(t)
	called := false
	env.user.RegisterFn = func(_ context.Context, _ domain.RegisterRequest) (domain.RegisterResponse, error) {
		called = true
		return domain.RegisterResponse{}, nil
	}

	res := env.request(t, http.MethodPost, "/api/v1/users/register", fiber.Map{
		"email":    "testuser@example.com",
		"password": "pwd",
		"name":     "testuser",
	}, false)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.False(t, called, "validation should reject the payload before the service runs")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.user.RegisterFn = func(_ context.Context, _ domain.RegisterRequest) (domain.RegisterResponse, error) {
		return domain.RegisterResponse{}, domain.ErrEmailAlreadyRegistered
	}

	res := env.request(t, http.MethodPost, "/api/v1/users/register", fiber.Map{
		"email":    "testuser@example.com",
		"password": "testpass123",
		"name":     "testuser",
	}, false)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.auth.LoginFn = func(_ context.Context, _ domain.LoginRequest) (domain.LoginResponse, error) {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	res := env.request(t, http.MethodPost, "/api/v1/users/login", fiber.Map{
		"email":    "testuser@example.com",
		"password": "wrongpass",
	}, false)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestMeReturnsProfile(t *testing.T) {
	env := newTestEnv(t)
	env.user.MeFn = func(_ context.Context, userID string) (domain.MeResponse, error) {
		assert.Equal(t, env.authedUser.ID.String(), userID)
		return domain.MeResponse{Name: "testuser", Email: "testuser@example.com"}, nil
	}

	res := env.request(t, http.MethodGet, "/api/v1/users/me", nil, true)
	require.Equal(t, http.StatusOK, res.StatusCode)

	data := decodeBody(t, res)["data"].(map[string]any)
	assert.Equal(t, "testuser", data["name"])
	assert.Equal(t, "testuser@example.com", data["email"])
}

func TestMeRejectsDelete(t *testing.T) {
	env := newTestEnv(t)

	res := env.request(t, http.MethodDelete, "/api/v1/users/me", nil, true)
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestCreateRecipe(t *testing.T) {
	env := newTestEnv(t)
	env.recipe.CreateRecipeFn = func(_ context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error) {
		assert.Equal(t, env.authedUser.ID.String(), userID)
		return domain.RecipeResponse{ID: uuid.NewString(), Title: req.Title, TimeMinutes: req.TimeMinutes, Price: req.Price}, nil
	}

	res := env.request(t, http.MethodPost, "/api/v1/recipes", fiber.Map{
		"title":        "Test Recipe",
		"time_minutes": 10,
		"price":        10.00,
	}, true)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	data := decodeBody(t, res)["data"].(map[string]any)
	assert.Equal(t, "Test Recipe", data["title"])
}

func TestCreateRecipeMissingTitle(t *testing.T) {
	env := newTestEnv(t)
	called := false
	env.recipe.CreateRecipeFn = func(_ context.Context, _ domain.CreateRecipeRequest, _ string) (domain.RecipeResponse, error) {
		called = true
		return domain.RecipeResponse{}, nil
	}

	res := env.request(t, http.MethodPost, "/api/v1/recipes", fiber.Map{
		"time_minutes": 10,
	}, true)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.False(t, called)
}

func TestUpdateRecipeIgnoresUserField(t *testing.T) {
	env := newTestEnv(t)
	var gotReq domain.UpdateRecipeRequest
	var gotUserID string
	env.recipe.UpdateRecipeFn = func(_ context.Context, _ string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error) {
		gotReq = req
		gotUserID = userID
		return domain.RecipeResponse{ID: uuid.NewString(), Title: *req.Title}, nil
	}

	// Attempts to reassign ownership in the payload are dropped: the
	// update request declares no user field, so only the title survives
	// parsing and the write still runs as the authenticated user.
	res := env.request(t, http.MethodPatch, "/api/v1/recipes/"+uuid.NewString(), fiber.Map{
		"title":   "New Test Recipe",
		"user":    uuid.NewString(),
		"user_id": uuid.NewString(),
	}, true)
	require.Equal(t, http.StatusOK, res.StatusCode)

	assert.Equal(t, env.authedUser.ID.String(), gotUserID)
	require.NotNil(t, gotReq.Title)
	assert.Equal(t, "New Test Recipe", *gotReq.Title)

	data := decodeBody(t, res)["data"].(map[string]any)
	assert.Equal(t, "New Test Recipe", data["title"])
	assert.NotContains(t, data, "user")
	assert.NotContains(t, data, "user_id")
}

func TestGetRecipeDetailNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.recipe.GetRecipeDetailFn = func(_ context.Context, _ string, _ string) (domain.RecipeResponse, error) {
		return domain.RecipeResponse{}, domain.ErrRecipeNotFound
	}

	res := env.request(t, http.MethodGet, "/api/v1/recipes/"+uuid.NewString(), nil, true)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestDeleteRecipeNoContent(t *testing.T) {
	env := newTestEnv(t)
	var deletedID string
	env.recipe.DeleteRecipeFn = func(_ context.Context, recipeID string, _ string) error {
		deletedID = recipeID
		return nil
	}

	recipeID := uuid.NewString()
	res := env.request(t, http.MethodDelete, "/api/v1/recipes/"+recipeID, nil, true)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, recipeID, deletedID)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestDeleteTagNoContent(t *testing.T) {
	env := newTestEnv(t)
	env.tag.DeleteTagFn = func(_ context.Context, _ string, _ string) error {
		return nil
	}

	res := env.request(t, http.MethodDelete, "/api/v1/tags/"+uuid.NewString(), nil, true)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
}

func TestAdminRoutesRequireStaff(t *testing.T) {
	env := newTestEnv(t)
	env.user.GetUsersFn = func(_ context.Context) ([]domain.UserResponse, error) {
		return []domain.UserResponse{}, nil
	}

	res := env.request(t, http.MethodGet, "/api/v1/admin/users", nil, true)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	env.authedUser.IsStaff = true
	res = env.request(t, http.MethodGet, "/api/v1/admin/users", nil, true)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestPing(t *testing.T) {
	env := newTestEnv(t)

	res := env.request(t, http.MethodGet, "/api/ping", nil, false)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "pong", decodeBody(t, res)["message"])
}
