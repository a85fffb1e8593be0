package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/careers-builder/internal/db"
	"github.com/jonathan/careers-builder/internal/policy"
	"github.com/jonathan/careers-builder/internal/types"
)

// handleGetTeam returns the company roster for mention autocomplete. Any
// member may read it; roles are included but nothing sensitive is.
func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	_, company, ok := s.authorizeCompany(w, r, slug, policy.ActionViewTeam)
	if !ok {
		return
	}

	users, err := s.db.ListUsersByCompany(r.Context(), company.ID)
	if err != nil {
		s.logger.Error("failed to list team", zap.String("slug", slug), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to load team")
		return
	}

	members := make([]types.TeamMember, 0, len(users))
	for _, u := range users {
		members = append(members, types.TeamMember{
			Email: u.Email,
			Name:  u.Name,
			Role:  u.Role,
		})
	}
	s.jsonResponse(w, http.StatusOK, members)
}

// handleListUsers returns the full membership list. Admin only.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	_, company, ok := s.authorizeCompany(w, r, slug, policy.ActionManageUsers)
	if !ok {
		return
	}

	users, err := s.db.ListUsersByCompany(r.Context(), company.ID)
	if err != nil {
		s.logger.Error("failed to list users", zap.String("slug", slug), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to load users")
		return
	}

	out := make([]types.User, 0, len(users))
	for i := range users {
		out = append(out, *convertDBUserToTypesUser(&users[i], slug))
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// handleAddUser creates a membership in the caller's company. Admin only.
// Email is globally unique: an address registered anywhere is rejected.
func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	_, company, ok := s.authorizeCompany(w, r, slug, policy.ActionManageUsers)
	if !ok {
		return
	}
	ctx := r.Context()

	var req types.AddUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	exists, err := s.db.CheckEmailExists(ctx, req.Email)
	if err != nil {
		s.logger.Error("failed to check email", zap.String("slug", slug), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to add user")
		return
	}
	if exists {
		s.serviceError(w, &ErrEmailAlreadyExists{Email: req.Email})
		return
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to add user")
		return
	}

	role := req.Role
	if role == "" {
		role = db.RoleEditor
	}
	name := req.Name
	if name == "" {
		name = req.Email
	}

	userID, err := s.db.CreateUser(ctx, company.ID, req.Email, passwordHash, name, role)
	if err != nil {
		// The existence pre-check races concurrent registrations; the unique
		// constraint is the backstop.
		if errors.Is(err, db.ErrDuplicateEmail) {
			s.serviceError(w, &ErrEmailAlreadyExists{Email: req.Email})
			return
		}
		s.logger.Error("failed to create user", zap.String("slug", slug), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to add user")
		return
	}

	created, err := s.db.GetUser(ctx, userID)
	if err != nil || created == nil {
		s.logger.Error("failed to reload created user", zap.String("slug", slug), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to add user")
		return
	}

	s.jsonResponse(w, http.StatusCreated, convertDBUserToTypesUser(created, slug))
}

// handleUpdateUserRole changes a membership's role. Admin only.
func (s *Server) handleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	_, company, ok := s.authorizeCompany(w, r, slug, policy.ActionManageUsers)
	if !ok {
		return
	}
	ctx := r.Context()

	userID, err := uuid.Parse(r.PathValue("user_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req types.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	target, err := s.db.GetUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load user", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to update role")
		return
	}
	if target == nil || target.CompanyID != company.ID {
		s.errorResponse(w, http.StatusNotFound, "user not found")
		return
	}

	if err := s.db.UpdateUserRole(ctx, userID, req.Role); err != nil {
		s.logger.Error("failed to update role", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to update role")
		return
	}

	target.Role = req.Role
	s.jsonResponse(w, http.StatusOK, convertDBUserToTypesUser(target, slug))
}

// handleDeleteUser removes a membership. Admin only, and admins cannot remove
// themselves: a tenant must always keep at least its acting admin. The
// self-removal guard only needs the session claims, so it runs before any
// store access.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	caller, ok := s.authorize(w, r, slug, policy.ActionManageUsers)
	if !ok {
		return
	}

	userID, err := uuid.Parse(r.PathValue("user_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if userID == caller.UserID {
		s.serviceError(w, &ErrValidation{Field: "user_id", Message: "cannot remove your own membership"})
		return
	}

	company, ok := s.loadCompany(w, r, slug)
	if !ok {
		return
	}
	ctx := r.Context()

	target, err := s.db.GetUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load user", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to remove user")
		return
	}
	if target == nil || target.CompanyID != company.ID {
		s.errorResponse(w, http.StatusNotFound, "user not found")
		return
	}

	if err := s.db.DeleteUser(ctx, userID); err != nil {
		s.logger.Error("failed to delete user", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to remove user")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "user removed"})
}
