package web

import (
	"encoding/json"
	"net/http"
)

type loginRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid login request", err)
		return
	}
	if !s.checkPassword(req.Password) {
		s.logger.Warn("admin login rejected", "request_id", requestIDFrom(r.Context()))
		s.writeError(w, http.StatusUnauthorized, "Incorrect password", nil)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "Login successful"})
}
