package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/whwar9739/dramcellar/internal/http/response"
)

// CreateCollectionRequest is the request body for creating a collection.
type CreateCollectionRequest struct {
	Name string `json:"name" validate:"required"`
}

// handleListCollections returns the caller's collections.
func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	colls, err := s.collections.List(r.Context(), ident.UserID)
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.OK(w, colls)
}

// handleGetCollection returns a collection with its members.
func (s *Server) handleGetCollection(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	detail, err := s.collections.Get(r.Context(), ident.UserID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.OK(w, detail)
}

// handleListMembers returns the collection's memberships.
func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	members, err := s.collections.ListMembers(r.Context(), ident.UserID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.OK(w, members)
}

// handleCreateCollection makes a new collection with the caller as owner.
func (s *Server) handleCreateCollection(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	var req CreateCollectionRequest
	if err := s.decodeJSON(r, &req); err != nil {
		response.HandleError(w, s.logger, err)
		return
	}

	coll, err := s.collections.Create(r.Context(), ident.UserID, req.Name)
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.Created(w, coll)
}

// handleDeleteCollection removes a collection. Owner only.
func (s *Server) handleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	if err := s.collections.Delete(r.Context(), ident.UserID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.NoContent(w)
}
