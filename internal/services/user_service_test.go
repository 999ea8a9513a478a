package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"userbase/internal/apperrors"
	"userbase/internal/models"
	"userbase/internal/services"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func notFoundErr(id string) error {
	return fmt.Errorf("user with ID %s: %w", id, apperrors.ErrNotFound)
}

func TestUserService_GetAllUsers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo, nil)

	expectedUsers := []models.User{
		{ID: "1", Name: "alice", Email: "alice@x.com", Password: "secret"},
		{ID: "2", Name: "bob", Email: "bob@x.com", Password: "hunter2"},
	}

	mockRepo.On("GetAll").Return(expectedUsers, nil).Once()

	users, err := service.GetAllUsers()

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, expectedUsers, users)
	mockRepo.AssertExpectations(t)
}

func TestUserService_CreateUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo, nil)

	newUser := &models.User{Name: " Alice ", Email: "ALICE@X.com", Password: "secret"}

	mockRepo.On("GetByEmail", "alice@x.com").Return(nil, notFoundErr("alice@x.com")).Once()
	mockRepo.On("Create", newUser).Return(nil).Once()

	err := service.CreateUser(newUser)

	assert.NoError(t, err)
	// Normalization happened before the write.
	assert.Equal(t, "alice", newUser.Name)
	assert.Equal(t, "alice@x.com", newUser.Email)
	mockRepo.AssertExpectations(t)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo, nil)

	existing := &models.User{ID: "1", Name: "alice", Email: "alice@x.com", Password: "secret"}
	newUser := &models.User{Name: "other", Email: "Alice@X.com", Password: "secret"}

	// Case-insensitive: the normalized email collides.
	mockRepo.On("GetByEmail", "alice@x.com").Return(existing, nil).Once()

	err := service.CreateUser(newUser)

	assert.ErrorIs(t, err, apperrors.ErrEmailExists)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestUserService_CreateUser_ValidationFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo, nil)

	newUser := &models.User{Name: "ab", Email: "alice@x.com", Password: "secret"}

	err := service.CreateUser(newUser)

	var ve *apperrors.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "Name")
	mockRepo.AssertNotCalled(t, "GetByEmail", mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUserService_UpdateUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo, nil)

	stored := &models.User{ID: "1", Name: "alice", Email: "alice@x.com", Password: "secret"}
	newName := "alicia"

	mockRepo.On("GetByID", "1").Return(stored, nil).Once()
	// Email unchanged: lookup finds the record being updated, no conflict.
	mockRepo.On("GetByEmail", "alice@x.com").Return(stored, nil).Once()
	mockRepo.On("Update", stored).Return(nil).Once()

	updated, err := service.UpdateUser("1", services.UpdateUserInput{Name: &newName})

	assert.NoError(t, err)
	assert.Equal(t, "alicia", updated.Name)
	assert.Equal(t, "alice@x.com", updated.Email)
	assert.Equal(t, "secret", updated.Password)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo, nil)

	newName := "alicia"
	mockRepo.On("GetByID", "99").Return(nil, notFoundErr("99")).Once()

	updated, err := service.UpdateUser("99", services.UpdateUserInput{Name: &newName})

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateUser_EmailCollision(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo, nil)

	stored := &models.User{ID: "1", Name: "alice", Email: "alice@x.com", Password: "secret"}
	other := &models.User{ID: "2", Name: "bob", Email: "bob@x.com", Password: "hunter2"}
	newEmail := "bob@x.com"

	mockRepo.On("GetByID", "1").Return(stored, nil).Once()
	mockRepo.On("GetByEmail", "bob@x.com").Return(other, nil).Once()

	updated, err := service.UpdateUser("1", services.UpdateUserInput{Email: &newEmail})

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, apperrors.ErrEmailExists)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateUser_ValidationFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo, nil)

	stored := &models.User{ID: "1", Name: "alice", Email: "alice@x.com", Password: "secret"}
	badName := "a"

	mockRepo.On("GetByID", "1").Return(stored, nil).Once()

	updated, err := service.UpdateUser("1", services.UpdateUserInput{Name: &badName})

	assert.Nil(t, updated)
	var ve *apperrors.ValidationError
	assert.ErrorAs(t, err, &ve)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestUserService_DeleteUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo, nil)

	mockRepo.On("Delete", "1").Return(nil).Once()
	assert.NoError(t, service.DeleteUser("1"))
	mockRepo.AssertExpectations(t)

	mockRepo.On("Delete", "99").Return(notFoundErr("99")).Once()
	err := service.DeleteUser("99")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
