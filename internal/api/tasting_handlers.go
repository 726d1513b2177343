package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/whwar9739/dramcellar/internal/http/response"
	"github.com/whwar9739/dramcellar/internal/service"
)

// handleListSessions returns the caller's tasting sessions.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	sessions, err := s.tastings.ListSessions(r.Context(), ident.UserID)
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.OK(w, sessions)
}

// handleGetSession returns one of the caller's sessions with its notes.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	detail, err := s.tastings.GetSession(r.Context(), ident.UserID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.OK(w, detail)
}

// handleCreateSession starts a tasting session.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	var req service.SessionInput
	if err := s.decodeJSON(r, &req); err != nil {
		response.HandleError(w, s.logger, err)
		return
	}

	sess, err := s.tastings.CreateSession(r.Context(), ident.UserID, &req)
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.Created(w, sess)
}

// handleLogPour appends a pour to the caller's session, deducting from the
// bottle when one is named.
func (s *Server) handleLogPour(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	var req service.PourInput
	if err := s.decodeJSON(r, &req); err != nil {
		response.HandleError(w, s.logger, err)
		return
	}

	note, err := s.tastings.LogPour(r.Context(), ident.UserID, chi.URLParam(r, "id"), &req)
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.Created(w, note)
}
