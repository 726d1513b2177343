package api

import (
	"encoding/json"
	"net/http"

	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
)

// decodeJSON parses the request body into dst and validates it.
func (s *Server) decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domainerrors.Validation("invalid request body")
	}
	return s.validator.Validate(dst)
}

// handleHealthCheck reports liveness.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
