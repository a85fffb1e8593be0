// Package server provides the HTTP REST API for the careers-page builder.
package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/careers-builder/internal/config"
	"github.com/jonathan/careers-builder/internal/db"
	"github.com/jonathan/careers-builder/internal/types"
)

// AccountStore is the subset of the database used by account operations.
type AccountStore interface {
	CheckSlugExists(ctx context.Context, slug string) (bool, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	Signup(ctx context.Context, params db.SignupParams) (uuid.UUID, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	GetCompanyByID(ctx context.Context, id uuid.UUID) (*db.Company, error)
}

// AccountService provides business logic for signup and login.
type AccountService struct {
	store          AccountStore
	passwordConfig *config.PasswordConfig
}

// NewAccountService creates a new AccountService with the given dependencies.
func NewAccountService(store AccountStore, passwordConfig *config.PasswordConfig) *AccountService {
	return &AccountService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// convertDBUserToTypesUser converts db.User to types.User, excluding password hash
func convertDBUserToTypesUser(dbUser *db.User, companySlug string) *types.User {
	if dbUser == nil {
		return nil
	}
	return &types.User{
		ID:          dbUser.ID,
		Email:       dbUser.Email,
		Name:        dbUser.Name,
		Role:        dbUser.Role,
		CompanySlug: companySlug,
		CreatedAt:   dbUser.CreatedAt,
	}
}

// Signup bootstraps a new company tenant with its first admin user. Slug and
// email uniqueness are checked up front so the caller gets a 409 rather than a
// raw constraint violation.
func (s *AccountService) Signup(ctx context.Context, req *types.SignupRequest) (*types.User, error) {
	slugTaken, err := s.store.CheckSlugExists(ctx, req.CompanySlug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug existence: %w", err)
	}
	if slugTaken {
		return nil, &ErrSlugTaken{Slug: req.CompanySlug}
	}

	emailTaken, err := s.store.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if emailTaken {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := s.store.Signup(ctx, db.SignupParams{
		CompanyName:  req.CompanyName,
		CompanySlug:  req.CompanySlug,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}); err != nil {
		// The pre-checks race concurrent signups; the unique constraints are
		// the backstop.
		switch {
		case errors.Is(err, db.ErrDuplicateSlug):
			return nil, &ErrSlugTaken{Slug: req.CompanySlug}
		case errors.Is(err, db.ErrDuplicateEmail):
			return nil, &ErrEmailAlreadyExists{Email: req.Email}
		}
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	dbUser, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created admin: %w", err)
	}
	if dbUser == nil {
		return nil, fmt.Errorf("created admin not found: %s", req.Email)
	}

	return convertDBUserToTypesUser(dbUser, req.CompanySlug), nil
}

// Login authenticates a collaborator and returns their membership view.
func (s *AccountService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	dbUser, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Security: Always return generic error if user not found or password wrong
	if dbUser == nil {
		return nil, &ErrInvalidCredentials{}
	}

	if !s.passwordConfig.VerifyPassword(req.Password, dbUser.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	company, err := s.store.GetCompanyByID(ctx, dbUser.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	if company == nil {
		// Membership without a company means the tenant was deleted.
		return nil, &ErrInvalidCredentials{}
	}

	return convertDBUserToTypesUser(dbUser, company.Slug), nil
}
