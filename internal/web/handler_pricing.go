package web

import "net/http"

func (s *Server) handleListPricing(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.catalogue)
}

func (s *Server) handleGetPricingCategory(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.catalogue.Category(r.PathValue("category"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "Pricing category not found", nil)
		return
	}
	s.respondJSON(w, http.StatusOK, cat)
}

func (s *Server) handleGetPricingPlan(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.catalogue.Plan(r.PathValue("category"), r.PathValue("plan"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "Pricing plan not found", nil)
		return
	}
	s.respondJSON(w, http.StatusOK, plan)
}
