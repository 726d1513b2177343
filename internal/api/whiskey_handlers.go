package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/whwar9739/dramcellar/internal/http/response"
	"github.com/whwar9739/dramcellar/internal/service"
	"github.com/whwar9739/dramcellar/internal/store"
)

// handleListWhiskies returns catalog entries, optionally filtered by
// ?search= and ?region=.
func (s *Server) handleListWhiskies(w http.ResponseWriter, r *http.Request) {
	filter := store.WhiskeyFilter{
		Search: r.URL.Query().Get("search"),
		Region: r.URL.Query().Get("region"),
	}

	whiskies, err := s.whiskies.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.OK(w, whiskies)
}

// handleListRegions returns the distinct regions in the catalog.
func (s *Server) handleListRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := s.whiskies.Regions(r.Context())
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.OK(w, regions)
}

// handleGetWhiskey returns one catalog entry.
func (s *Server) handleGetWhiskey(w http.ResponseWriter, r *http.Request) {
	whiskey, err := s.whiskies.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.OK(w, whiskey)
}

// handleCreateWhiskey adds a catalog entry.
func (s *Server) handleCreateWhiskey(w http.ResponseWriter, r *http.Request) {
	var req service.WhiskeyInput
	if err := s.decodeJSON(r, &req); err != nil {
		response.HandleError(w, s.logger, err)
		return
	}

	whiskey, err := s.whiskies.Create(r.Context(), &req)
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.Created(w, whiskey)
}

// handleUpdateWhiskey replaces a catalog entry's fields.
func (s *Server) handleUpdateWhiskey(w http.ResponseWriter, r *http.Request) {
	var req service.WhiskeyInput
	if err := s.decodeJSON(r, &req); err != nil {
		response.HandleError(w, s.logger, err)
		return
	}

	whiskey, err := s.whiskies.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.OK(w, whiskey)
}

// handleDeleteWhiskey removes a catalog entry and everything referencing it.
func (s *Server) handleDeleteWhiskey(w http.ResponseWriter, r *http.Request) {
	if err := s.whiskies.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.NoContent(w)
}
