package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"userbase/internal/apperrors"
	"userbase/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
// It mirrors the storage-layer behavior the service relies on: assigned
// IDs and timestamps, the email uniqueness constraint, and insertion
// order on GetAll.
type MockUserRepository struct {
	users map[string]models.User
	order []string
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// GetAll returns all users in insertion order.
func (r *MockUserRepository) GetAll() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userList := make([]models.User, 0, len(r.order))
	for _, id := range r.order {
		userList = append(userList, r.users[id])
	}
	return userList, nil
}

// GetByID returns a user by their ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, apperrors.ErrNotFound)
	}
	return &user, nil
}

// GetByEmail returns a user by their email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if r.users[id].Email == email {
			user := r.users[id]
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, apperrors.ErrNotFound)
}

// Create adds a new user, assigning ID and timestamps.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.ErrEmailExists
		}
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID] = *user
	r.order = append(r.order, user.ID)
	return nil
}

// Update modifies an existing user, refreshing UpdatedAt.
func (r *MockUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return fmt.Errorf("user with ID %s not found for update: %w", user.ID, apperrors.ErrNotFound)
	}
	for id, other := range r.users {
		if id != user.ID && other.Email == user.Email {
			return apperrors.ErrEmailExists
		}
	}

	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

// Delete removes a user by their ID.
func (r *MockUserRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user with ID %s not found for deletion: %w", id, apperrors.ErrNotFound)
	}
	delete(r.users, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
