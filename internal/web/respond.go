package web

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write json response failed", "error", err)
	}
}

// writeError writes {error, details?}. details carries err's text only when
// the server is configured to expose it.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string, err error) {
	body := errorBody{Error: msg}
	if err != nil && s.opts.ShowErrorDetails {
		body.Details = err.Error()
	}
	s.respondJSON(w, status, body)
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
