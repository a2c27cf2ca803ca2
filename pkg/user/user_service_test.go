package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/recipebox/recipe-api/domain"
	"github.com/recipebox/recipe-api/entities"
)

type fakeUserRepository struct {
	users map[string]*entities.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*entities.User)}
}

func (r *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID.String()] = user
	return nil
}

func (r *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) UpdateUser(_ context.Context, user *entities.User) error {
	r.users[user.ID.String()] = user
	return nil
}

func (r *fakeUserRepository) GetUsers(_ context.Context) ([]*entities.User, error) {
	users := make([]*entities.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, nil
}

func (r *fakeUserRepository) CheckEmailExists(_ context.Context, email string) (bool, error) {
	_, err := r.GetUserByEmail(context.Background(), email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo)

	res, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "testuser@example.com",
		Password: "testpass123",
		Name:     "testuser",
	})
	require.NoError(t, err)
	assert.Equal(t, "testuser@example.com", res.Email)
	assert.Equal(t, "testuser", res.Name)

	stored, err := repo.GetUserByEmail(context.Background(), "testuser@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "testpass123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("testpass123")))
	assert.True(t, stored.IsActive)
	assert.False(t, stored.IsStaff)
}

func TestRegisterNormalizesEmailDomain(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo)

	res, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "Test@EXAMPLE.com",
		Password: "testpass123",
		Name:     "testuser",
	})
	require.NoError(t, err)
	assert.Equal(t, "Test@example.com", res.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo)

	req := domain.RegisterRequest{
		Email:    "testuser@example.com",
		Password: "testpass123",
		Name:     "testuser",
	}
	_, err := service.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyRegistered)
	assert.Len(t, repo.users, 1)
}

func TestMeUnknownUser(t *testing.T) {
	service := NewUserService(newFakeUserRepository())

	_, err := service.Me(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateMeChangesNameOnly(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo)

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "testuser@example.com",
		Password: "testpass123",
		Name:     "old name",
	})
	require.NoError(t, err)
	stored, err := repo.GetUserByEmail(context.Background(), "testuser@example.com")
	require.NoError(t, err)
	oldHash := stored.Password

	newName := "new name"
	res, err := service.UpdateMe(context.Background(), domain.UpdateMeRequest{Name: &newName}, stored.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "new name", res.Name)
	assert.Equal(t, "testuser@example.com", res.Email)
	assert.Equal(t, oldHash, stored.Password)
}

func TestUpdateMeRehashesPassword(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo)

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "testuser@example.com",
		Password: "testpass123",
		Name:     "testuser",
	})
	require.NoError(t, err)
	stored, err := repo.GetUserByEmail(context.Background(), "testuser@example.com")
	require.NoError(t, err)

	newPassword := "newpass456"
	_, err = service.UpdateMe(context.Background(), domain.UpdateMeRequest{Password: &newPassword}, stored.ID.String())
	require.NoError(t, err)

	assert.NotEqual(t, "newpass456", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newpass456")))
}

func TestUpdateUserByAdmin(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo)

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "testuser@example.com",
		Password: "testpass123",
		Name:     "testuser",
	})
	require.NoError(t, err)
	stored, err := repo.GetUserByEmail(context.Background(), "testuser@example.com")
	require.NoError(t, err)

	inactive := false
	staff := true
	res, err := service.UpdateUserByAdmin(context.Background(), stored.ID.String(), domain.AdminUpdateUserRequest{
		IsActive: &inactive,
		IsStaff:  &staff,
	})
	require.NoError(t, err)
	assert.False(t, res.IsActive)
	assert.True(t, res.IsStaff)
}
