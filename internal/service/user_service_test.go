package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shiftline/rota-api/internal/dto"
	"github.com/shiftline/rota-api/internal/models"
	appErrors "github.com/shiftline/rota-api/pkg/errors"
)

type userRepoStub struct {
	byEmail   *models.User
	byID      *models.User
	created   *models.User
	updated   *models.User
	deletedID string
}

func (s *userRepoStub) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	return nil, 0, nil
}

func (s *userRepoStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	if s.byID == nil {
		return nil, sql.ErrNoRows
	}
	return s.byID, nil
}

func (s *userRepoStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.byEmail == nil {
		return nil, sql.ErrNoRows
	}
	return s.byEmail, nil
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	s.created = user
	return nil
}

func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	s.updated = user
	return nil
}

func (s *userRepoStub) Delete(ctx context.Context, id string) error {
	s.deletedID = id
	return nil
}

func TestUserServiceCreateHashesPassword(t *testing.T) {
	repo := &userRepoStub{}
	svc := NewUserService(repo, nil, nil)

	user, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Email:    "Manager@Example.com",
		Password: "secret123",
		FullName: "Casey Store",
		Role:     "MANAGER",
	})
	require.NoError(t, err)
	assert.Equal(t, "manager@example.com", user.Email)
	assert.Equal(t, models.RoleManager, user.Role)
	assert.True(t, user.Active)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
}

func TestUserServiceCreateDuplicateEmail(t *testing.T) {
	repo := &userRepoStub{byEmail: &models.User{ID: "u1"}}
	svc := NewUserService(repo, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Email:    "dup@example.com",
		Password: "secret123",
		FullName: "Dup",
		Role:     "EMPLOYEE",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestUserServiceCreateRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(&userRepoStub{}, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Email:    "x@example.com",
		Password: "secret123",
		FullName: "X",
		Role:     "ADMIN",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUserServiceUpdate(t *testing.T) {
	repo := &userRepoStub{byID: &models.User{ID: "u1", Role: models.RoleEmployee, Active: true}}
	svc := NewUserService(repo, nil, nil)

	inactive := false
	user, err := svc.Update(context.Background(), "u1", dto.UpdateUserRequest{
		FullName: "New Name",
		Role:     "MANAGER",
		Active:   &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, user.Role)
	assert.False(t, user.Active)
}

func TestUserServiceDeleteUnknown(t *testing.T) {
	svc := NewUserService(&userRepoStub{}, nil, nil)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
