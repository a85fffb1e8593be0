package server

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careers-builder/internal/config"
	"github.com/jonathan/careers-builder/internal/db"
	"github.com/jonathan/careers-builder/internal/types"
)

// fakeAccountStore is an in-memory AccountStore for service tests.
type fakeAccountStore struct {
	slugs     map[string]bool
	users     map[string]*db.User
	companies map[uuid.UUID]*db.Company

	signedUp  *db.SignupParams
	signupErr error
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{
		slugs:     make(map[string]bool),
		users:     make(map[string]*db.User),
		companies: make(map[uuid.UUID]*db.Company),
	}
}

func (f *fakeAccountStore) CheckSlugExists(_ context.Context, slug string) (bool, error) {
	return f.slugs[slug], nil
}

func (f *fakeAccountStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	_, ok := f.users[email]
	return ok, nil
}

func (f *fakeAccountStore) Signup(_ context.Context, params db.SignupParams) (uuid.UUID, error) {
	if f.signupErr != nil {
		return uuid.Nil, f.signupErr
	}
	companyID := uuid.New()
	f.signedUp = &params
	f.slugs[params.CompanySlug] = true
	f.companies[companyID] = &db.Company{ID: companyID, Slug: params.CompanySlug, Name: params.CompanyName}
	f.users[params.Email] = &db.User{
		ID:           uuid.New(),
		CompanyID:    companyID,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Name:         params.CompanyName,
		Role:         db.RoleAdmin,
	}
	return companyID, nil
}

func (f *fakeAccountStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	return f.users[email], nil
}

func (f *fakeAccountStore) GetCompanyByID(_ context.Context, id uuid.UUID) (*db.Company, error) {
	return f.companies[id], nil
}

func testAccountService(store AccountStore) *AccountService {
	return NewAccountService(store, &config.PasswordConfig{BcryptCost: 4})
}

func TestAccountService_Signup(t *testing.T) {
	store := newFakeAccountStore()
	svc := testAccountService(store)

	user, err := svc.Signup(context.Background(), &types.SignupRequest{
		CompanyName: "Acme",
		CompanySlug: "acme",
		Email:       "admin@acme.test",
		Password:    "hunter22!",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin@acme.test", user.Email)
	assert.Equal(t, db.RoleAdmin, user.Role)
	assert.Equal(t, "acme", user.CompanySlug)

	// The stored hash must verify, and never equal the raw password.
	require.NotNil(t, store.signedUp)
	assert.NotEqual(t, "hunter22!", store.signedUp.PasswordHash)
}

func TestAccountService_SignupSlugTaken(t *testing.T) {
	store := newFakeAccountStore()
	store.slugs["acme"] = true
	svc := testAccountService(store)

	_, err := svc.Signup(context.Background(), &types.SignupRequest{
		CompanyName: "Acme",
		CompanySlug: "acme",
		Email:       "admin@acme.test",
		Password:    "hunter22!",
	})
	var taken *ErrSlugTaken
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, "acme", taken.Slug)
}

func TestAccountService_SignupEmailTaken(t *testing.T) {
	store := newFakeAccountStore()
	store.users["admin@acme.test"] = &db.User{Email: "admin@acme.test"}
	svc := testAccountService(store)

	_, err := svc.Signup(context.Background(), &types.SignupRequest{
		CompanyName: "Other Co",
		CompanySlug: "other",
		Email:       "admin@acme.test",
		Password:    "hunter22!",
	})
	var exists *ErrEmailAlreadyExists
	require.ErrorAs(t, err, &exists)
}

func TestAccountService_SignupEmailRaceMapsToConflict(t *testing.T) {
	// A concurrent registration can slip past the existence pre-check; the
	// unique-constraint sentinel still surfaces as a conflict, not a fault.
	store := newFakeAccountStore()
	store.signupErr = db.ErrDuplicateEmail
	svc := testAccountService(store)

	_, err := svc.Signup(context.Background(), &types.SignupRequest{
		CompanyName: "Acme",
		CompanySlug: "acme",
		Email:       "admin@acme.test",
		Password:    "hunter22!",
	})
	var exists *ErrEmailAlreadyExists
	require.ErrorAs(t, err, &exists)
}

func TestAccountService_SignupSlugRaceMapsToConflict(t *testing.T) {
	store := newFakeAccountStore()
	store.signupErr = db.ErrDuplicateSlug
	svc := testAccountService(store)

	_, err := svc.Signup(context.Background(), &types.SignupRequest{
		CompanyName: "Acme",
		CompanySlug: "acme",
		Email:       "admin@acme.test",
		Password:    "hunter22!",
	})
	var taken *ErrSlugTaken
	require.ErrorAs(t, err, &taken)
}

func TestAccountService_LoginRoundTrip(t *testing.T) {
	store := newFakeAccountStore()
	svc := testAccountService(store)

	_, err := svc.Signup(context.Background(), &types.SignupRequest{
		CompanyName: "Acme",
		CompanySlug: "acme",
		Email:       "admin@acme.test",
		Password:    "hunter22!",
	})
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), &types.LoginRequest{
		Email:    "admin@acme.test",
		Password: "hunter22!",
	})
	require.NoError(t, err)
	assert.Equal(t, "acme", user.CompanySlug)
}

func TestAccountService_LoginWrongPassword(t *testing.T) {
	store := newFakeAccountStore()
	svc := testAccountService(store)

	_, err := svc.Signup(context.Background(), &types.SignupRequest{
		CompanyName: "Acme",
		CompanySlug: "acme",
		Email:       "admin@acme.test",
		Password:    "hunter22!",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &types.LoginRequest{
		Email:    "admin@acme.test",
		Password: "wrong",
	})
	var invalid *ErrInvalidCredentials
	assert.ErrorAs(t, err, &invalid)
}

func TestAccountService_LoginUnknownEmail(t *testing.T) {
	svc := testAccountService(newFakeAccountStore())

	_, err := svc.Login(context.Background(), &types.LoginRequest{
		Email:    "nobody@acme.test",
		Password: "whatever",
	})
	var invalid *ErrInvalidCredentials
	assert.ErrorAs(t, err, &invalid)
}
