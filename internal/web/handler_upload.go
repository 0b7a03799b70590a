package web

import (
	"errors"
	"io"
	"net/http"

	"github.com/vbonduro/paani/internal/assetstore"
	"github.com/vbonduro/paani/internal/service"
)

const maxUploadSize = 50 * 1024 * 1024 // 50 MB

type uploadResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.writeError(w, http.StatusBadRequest, "Failed to parse upload form", err)
		return
	}

	var (
		name string
		body io.Reader
		size int64
	)
	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer closeWithLog(file, "upload file", s.logger)
		name, body, size = header.Filename, file, header.Size
	case !errors.Is(err, http.ErrMissingFile):
		s.writeError(w, http.StatusBadRequest, "Failed to read uploaded file", err)
		return
	}

	url, err := s.service.UploadAsset(r.Context(), name, body)
	switch {
	case errors.Is(err, service.ErrNoFile):
		s.writeError(w, http.StatusBadRequest, "No file uploaded", nil)
		return
	case err != nil:
		s.logger.Error("upload failed", "name", name, "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to upload file", err)
		return
	}
	s.opts.Metrics.AddUploadBytes(size)

	s.respondJSON(w, http.StatusOK, uploadResponse{URL: url, Message: "File uploaded successfully"})
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	reader, mimeType, err := s.service.OpenAsset(r.Context(), name)
	if err != nil {
		if !errors.Is(err, assetstore.ErrNotFound) {
			s.logger.Error("open asset failed", "name", name, "error", err)
		}
		http.NotFound(w, r)
		return
	}
	defer closeWithLog(reader, "asset reader", s.logger)

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("write asset failed", "name", name, "error", err)
	}
}
