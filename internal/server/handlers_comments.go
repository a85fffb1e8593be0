package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/careers-builder/internal/db"
	"github.com/jonathan/careers-builder/internal/mentions"
	"github.com/jonathan/careers-builder/internal/policy"
	"github.com/jonathan/careers-builder/internal/types"
)

// resolveAnchor checks a comment anchor against the caller's company. An
// anchor that parses as a UUID must be one of the company's sections; any
// other string is a virtual page region ("header", "jobs-list", ...) and is
// accepted as-is, since comments are tenant-scoped regardless.
func (s *Server) resolveAnchor(w http.ResponseWriter, r *http.Request, company *db.Company, anchor string) bool {
	sectionID, err := uuid.Parse(anchor)
	if err != nil {
		return true
	}

	section, err := s.db.GetSection(r.Context(), sectionID)
	if err != nil {
		s.logger.Error("failed to load section", zap.String("anchor", anchor), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "internal error")
		return false
	}
	if section == nil || section.CompanyID != company.ID {
		s.errorResponse(w, http.StatusNotFound, "section not found")
		return false
	}
	return true
}

// handleListComments returns one anchor's thread, oldest first.
func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	_, company, ok := s.callerCompany(w, r, policy.ActionComment)
	if !ok {
		return
	}

	anchor := r.PathValue("anchor")
	if !s.resolveAnchor(w, r, company, anchor) {
		return
	}

	comments, err := s.db.ListComments(r.Context(), company.ID, anchor)
	if err != nil {
		s.logger.Error("failed to list comments", zap.String("anchor", anchor), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to load comments")
		return
	}
	if comments == nil {
		comments = []db.Comment{}
	}
	s.jsonResponse(w, http.StatusOK, comments)
}

// handleCreateComment appends to an anchor's thread. Mentions are extracted
// against the company roster at post time and stored with the comment.
func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	caller, company, ok := s.callerCompany(w, r, policy.ActionComment)
	if !ok {
		return
	}
	ctx := r.Context()

	anchor := r.PathValue("anchor")
	if !s.resolveAnchor(w, r, company, anchor) {
		return
	}

	var req types.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	users, err := s.db.ListUsersByCompany(ctx, company.ID)
	if err != nil {
		s.logger.Error("failed to load roster", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to post comment")
		return
	}
	roster := make([]mentions.Member, 0, len(users))
	for _, u := range users {
		roster = append(roster, mentions.Member{Email: u.Email, Name: u.Name})
	}

	comment := &db.Comment{
		CompanyID:     company.ID,
		SectionAnchor: anchor,
		UserEmail:     caller.Email,
		UserName:      caller.Name,
		Content:       req.Content,
		Mentions:      db.StringArray(mentions.Extract(req.Content, roster)),
	}
	if err := s.db.CreateComment(ctx, comment); err != nil {
		s.logger.Error("failed to create comment", zap.String("anchor", anchor), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to post comment")
		return
	}

	s.jsonResponse(w, http.StatusCreated, comment)
}
