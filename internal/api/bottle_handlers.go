package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/whwar9739/dramcellar/internal/http/response"
	"github.com/whwar9739/dramcellar/internal/service"
)

// handleListInventory returns every bottle across the caller's collections.
// Legacy data is reconciled before the read.
func (s *Server) handleListInventory(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	bottles, err := s.bottles.ListInventory(r.Context(), ident.UserID)
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.OK(w, bottles)
}

// handleListPourable returns the caller's non-empty bottles.
func (s *Server) handleListPourable(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	bottles, err := s.bottles.ListPourable(r.Context(), ident.UserID)
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.OK(w, bottles)
}

// handleListInfinity returns the caller's infinity bottles.
func (s *Server) handleListInfinity(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	bottles, err := s.bottles.ListInfinity(r.Context(), ident.UserID)
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.OK(w, bottles)
}

// handleListCollectionBottles returns the bottles of one collection.
// Member only.
func (s *Server) handleListCollectionBottles(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	bottles, err := s.bottles.ListInCollection(r.Context(), ident.UserID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.OK(w, bottles)
}

// handleGetBottle returns one bottle the caller can reach.
func (s *Server) handleGetBottle(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	bottle, err := s.bottles.Get(r.Context(), ident.UserID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.OK(w, bottle)
}

// handleCreateBottle adds a bottle to one of the caller's collections.
func (s *Server) handleCreateBottle(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	var req service.CreateBottleInput
	if err := s.decodeJSON(r, &req); err != nil {
		response.HandleError(w, s.logger, err)
		return
	}

	bottle, err := s.bottles.Create(r.Context(), ident.UserID, &req)
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.Created(w, bottle)
}

// handleUpdateBottle edits a bottle, including moves between collections.
func (s *Server) handleUpdateBottle(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	var req service.UpdateBottleInput
	if err := s.decodeJSON(r, &req); err != nil {
		response.HandleError(w, s.logger, err)
		return
	}

	bottle, err := s.bottles.Update(r.Context(), ident.UserID, chi.URLParam(r, "id"), &req)
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.OK(w, bottle)
}

// handleDeleteBottle removes a bottle with its notes and ledger entries.
func (s *Server) handleDeleteBottle(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	if err := s.bottles.Delete(r.Context(), ident.UserID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.NoContent(w)
}
