package services

import (
	"log"

	"userbase/internal/apperrors"
	"userbase/internal/models"
	"userbase/internal/repositories"
	"userbase/pkg/rabbitmq"
)

// UserService handles business logic for the user collection.
type UserService struct {
	userRepo repositories.UserRepository
	mqClient *rabbitmq.Client // optional; nil disables event publishing
}

// NewUserService creates a new UserService. mqClient may be nil.
func NewUserService(userRepo repositories.UserRepository, mqClient *rabbitmq.Client) *UserService {
	return &UserService{
		userRepo: userRepo,
		mqClient: mqClient,
	}
}

// UpdateUserInput carries a partial field set for an update. Nil fields
// keep the current value.
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// GetAllUsers retrieves all users in insertion order.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// CreateUser validates and persists a new user. It returns
// apperrors.ErrEmailExists when the email is already taken and a
// *apperrors.ValidationError on shape violations.
func (s *UserService) CreateUser(user *models.User) error {
	user.Normalize()
	if err := user.Validate(); err != nil {
		return err
	}

	// Check-before-write; the storage unique index remains the backstop
	// against a racing insert.
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return apperrors.ErrEmailExists
	}

	if err := s.userRepo.Create(user); err != nil {
		return err
	}

	s.publishEvent("user.created", map[string]interface{}{"user": user})
	return nil
}

// UpdateUser applies the provided fields to the user with the given ID,
// re-validates, and persists. It returns apperrors.ErrNotFound for an
// unknown ID and apperrors.ErrEmailExists when the new email belongs to a
// different existing user.
func (s *UserService) UpdateUser(id string, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		user.Password = *input.Password
	}

	user.Normalize()
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil && existing.ID != user.ID {
		return nil, apperrors.ErrEmailExists
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	s.publishEvent("user.updated", map[string]interface{}{"user": user})
	return user, nil
}

// DeleteUser removes the user with the given ID. It returns
// apperrors.ErrNotFound for an unknown ID.
func (s *UserService) DeleteUser(id string) error {
	if err := s.userRepo.Delete(id); err != nil {
		return err
	}

	s.publishEvent("user.deleted", map[string]interface{}{"id": id})
	return nil
}

// publishEvent sends a user lifecycle event when a broker is configured.
// Publishing is best-effort: failures are logged, never returned, so an
// unavailable broker cannot fail an otherwise successful mutation.
func (s *UserService) publishEvent(event string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishUserEvent(event, payload); err != nil {
		log.Printf("Failed to publish %s event: %v", event, err)
	}
}
