package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/whwar9739/dramcellar/internal/domain"
	"github.com/whwar9739/dramcellar/internal/http/response"
)

// CreateInvitationRequest is the request body for inviting a user to a
// collection.
type CreateInvitationRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=owner editor viewer"`
}

// handleCreateInvitation invites a user to the collection. Owner only.
func (s *Server) handleCreateInvitation(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	var req CreateInvitationRequest
	if err := s.decodeJSON(r, &req); err != nil {
		response.HandleError(w, s.logger, err)
		return
	}

	inv, err := s.invitations.Invite(r.Context(), ident.UserID, chi.URLParam(r, "id"),
		req.Email, domain.Role(req.Role))
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.Created(w, inv)
}

// handleListCollectionInvitations returns a collection's pending
// invitations. Owner only.
func (s *Server) handleListCollectionInvitations(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	invs, err := s.invitations.ListForCollection(r.Context(), ident.UserID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.OK(w, invs)
}

// handleListMyInvitations returns pending invitations addressed to the
// caller's email.
func (s *Server) handleListMyInvitations(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	invs, err := s.invitations.ListForUser(r.Context(), ident.Email)
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.OK(w, invs)
}

// handleAcceptInvitation joins the caller to the inviting collection.
func (s *Server) handleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	member, err := s.invitations.Accept(r.Context(), ident.UserID, ident.Email, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.OK(w, member)
}

// handleDeclineInvitation declines an invitation addressed to the caller.
func (s *Server) handleDeclineInvitation(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	if err := s.invitations.Decline(r.Context(), ident.Email, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.Message(w, "invitation declined")
}
