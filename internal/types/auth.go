// Package types provides request and response definitions for the careers-page builder API.
package types

import (
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// slugPattern restricts company slugs to URL-safe lowercase identifiers.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// SignupRequest bootstraps a company together with its first admin user.
type SignupRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=1"`
	CompanySlug string `json:"company_slug" validate:"required,min=2,max=63"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User is the membership view returned by the API (never includes the hash).
type User struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	CompanySlug string    `json:"company_slug,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// LoginResponse carries the authenticated user and their session token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// SignupResponse confirms tenant creation.
type SignupResponse struct {
	CompanySlug string `json:"company_slug"`
	Token       string `json:"token"`
}

// AddUserRequest adds a membership to a company (admin only).
type AddUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=ADMIN EDITOR"`
}

// UpdateRoleRequest changes a membership's role (admin only).
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN EDITOR"`
}

// TeamMember is the roster entry exposed for mention autocomplete.
type TeamMember struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Validate validates the SignupRequest using the validator, plus the slug
// format which has no builtin tag.
func (r *SignupRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if !slugPattern.MatchString(r.CompanySlug) {
		return fmt.Errorf("company_slug must be lowercase letters, digits and hyphens")
	}
	return nil
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AddUserRequest using the validator.
func (r *AddUserRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateRoleRequest using the validator.
func (r *UpdateRoleRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
