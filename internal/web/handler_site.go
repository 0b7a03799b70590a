package web

import "net/http"

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	page := s.renderer.Home(r.Context())
	if err := s.renderPage(w, page, "base.html", "pages/home.html"); err != nil {
		s.logger.Error("render page failed", "page", "home", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
