package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vbonduro/paani/internal/contentstore"
	"github.com/vbonduro/paani/internal/domain"
	"github.com/vbonduro/paani/internal/service"
)

const maxDocumentSize = 10 * 1024 * 1024 // 10 MB

func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	doc, err := s.service.GetPortfolio(r.Context())
	switch {
	case err == nil:
		s.respondJSON(w, http.StatusOK, doc)
	case errors.Is(err, contentstore.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "Portfolio data not found", err)
	default:
		s.logger.Error("read portfolio failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to load portfolio data", err)
	}
}

func (s *Server) handleSavePortfolio(w http.ResponseWriter, r *http.Request) {
	var doc domain.PortfolioDocument
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDocumentSize)).Decode(&doc); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid portfolio document", err)
		return
	}

	err := s.service.SavePortfolio(r.Context(), &doc)
	switch {
	case err == nil:
		s.respondJSON(w, http.StatusOK, map[string]string{"message": "Portfolio updated successfully"})
	case errors.Is(err, service.ErrWritesDisabled):
		s.respondJSON(w, http.StatusForbidden, errorBody{
			Error:   "Portfolio writes are disabled on this deployment",
			Details: "The filesystem is read-only. Configure a durable content store (KV_BACKEND) to save changes.",
		})
	default:
		s.logger.Error("save portfolio failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to update portfolio data", err)
	}
}
