package validation

import (
	"regexp"
	"strings"

	"quiz-admin/internal/domain"
	"quiz-admin/internal/dto"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateLoginRequest validates the email/password pair of a login call.
func (v *Validator) ValidateLoginRequest(req dto.LoginRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Email) == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	} else if !isValidEmail(req.Email) {
		errors = append(errors, domain.NewValidationError("email", "is not a valid email address"))
	}
	if req.Password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	}

	return errors
}

// ValidateCreateUserRequest validates the create-user payload.
func (v *Validator) ValidateCreateUserRequest(req dto.CreateUserRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Email) == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	} else if !isValidEmail(req.Email) {
		errors = append(errors, domain.NewValidationError("email", "is not a valid email address"))
	}
	if len(req.Password) < 6 {
		errors = append(errors, domain.NewValidationError("password", "must be at least 6 characters"))
	}
	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, domain.NewMissingFieldError("name"))
	}
	if !domain.Role(req.Role).Valid() {
		errors = append(errors, domain.NewValidationError("role", "must be one of: admin, student"))
	}

	return errors
}

// isValidEmail checks the rough shape of an email address.
func isValidEmail(s string) bool {
	return len(s) <= 254 && emailPattern.MatchString(s)
}
