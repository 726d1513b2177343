package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/whwar9739/dramcellar/internal/http/response"
	"github.com/whwar9739/dramcellar/internal/service"
)

// handleTransferBlend pours a source bottle into an infinity bottle.
func (s *Server) handleTransferBlend(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	var req service.TransferInput
	if err := s.decodeJSON(r, &req); err != nil {
		response.HandleError(w, s.logger, err)
		return
	}

	comp, err := s.blends.Transfer(r.Context(), ident.UserID, &req)
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.Created(w, comp)
}

// handleGetBlendLedger returns an infinity bottle with its components,
// newest first.
func (s *Server) handleGetBlendLedger(w http.ResponseWriter, r *http.Request) {
	ident := getIdentity(r.Context())

	view, err := s.blends.Ledger(r.Context(), ident.UserID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, s.logger, err)
		return
	}
	response.OK(w, view)
}
