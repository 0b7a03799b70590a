package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vbonduro/paani/internal/service"
)

const maxChatRequestSize = 1 * 1024 * 1024

type chatRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatRequestSize)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid chat request", err)
		return
	}

	text, err := s.service.Chat(r.Context(), req.Question, req.Context)
	switch {
	case err == nil:
		s.respondJSON(w, http.StatusOK, chatResponse{Response: text})
	case errors.Is(err, service.ErrMissingFields):
		s.writeError(w, http.StatusBadRequest, "Question and context are required", nil)
	case errors.Is(err, service.ErrChatUnavailable):
		s.writeError(w, http.StatusServiceUnavailable, "Chat is not configured", nil)
	default:
		s.logger.Error("chat failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to process request", err)
	}
}
