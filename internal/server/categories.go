package server

import (
	"encoding/json"
	"net/http"
)

type categoryRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		categories, err := s.app.ListCategories(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": categories})
	case http.MethodPost:
		if !s.requireAdmin(w, r) {
			return
		}
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
			return
		}
		category, err := s.app.CreateCategory(r.Context(), req.Name)
		if err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, category)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCategoryByID(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "/api/categories/")
	if !ok {
		notFound(w)
		return
	}
	switch r.Method {
	case http.MethodGet:
		category, err := s.app.GetCategory(r.Context(), id)
		if err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, category)
	case http.MethodPut:
		if !s.requireAdmin(w, r) {
			return
		}
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
			return
		}
		category, err := s.app.UpdateCategory(r.Context(), id, req.Name)
		if err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, category)
	case http.MethodDelete:
		if !s.requireAdmin(w, r) {
			return
		}
		if err := s.app.DeleteCategory(r.Context(), id); err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}
