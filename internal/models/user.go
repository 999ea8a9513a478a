package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"userbase/internal/apperrors"
)

// User represents a managed user record.
//
// Passwords are stored and serialized in plain text to keep parity with the
// existing API contract; see DESIGN.md for the flag on this.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=15"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required"`
	Password  string    `json:"password" gorm:"type:varchar(255)" validate:"required,min=5"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var validate = validator.New()

// emailPattern is deliberately loose: anything of the form
// non-whitespace @ non-whitespace . non-whitespace.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Normalize trims surrounding whitespace and lowercases name and email.
// Records are normalized before validation and before any write.
func (u *User) Normalize() {
	u.Name = strings.ToLower(strings.TrimSpace(u.Name))
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
}

// Validate checks the record against the field rules and returns a
// *apperrors.ValidationError carrying one message per violated field, or
// nil if the record is valid. Callers should Normalize first.
func (u *User) Validate() error {
	ve := apperrors.NewValidationError()

	if err := validate.Struct(u); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			ve.Add(fe.Field(), fieldMessage(fe))
		}
	}
	if u.Email != "" && !emailPattern.MatchString(u.Email) {
		ve.Add("Email", "Please provide a valid email address")
	}

	if ve.HasViolations() {
		return ve
	}
	return nil
}

// fieldMessage maps a validator failure to a user-facing message.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		switch fe.Tag() {
		case "required":
			return "Name is required"
		case "min":
			return "Name must be at least 3 characters long"
		case "max":
			return "Name cannot exceed 15 characters"
		}
	case "Email":
		return "Email is required"
	case "Password":
		switch fe.Tag() {
		case "required":
			return "Password is required"
		case "min":
			return "Password must be at least 5 characters long"
		}
	}
	return "Field '" + fe.Field() + "' failed on the '" + fe.Tag() + "' tag"
}
