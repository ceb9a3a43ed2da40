package server

import (
	"encoding/json"
	"net/http"

	"github.com/NoobYoup/amis-nextjs-sub001/internal/app"
	"github.com/NoobYoup/amis-nextjs-sub001/pkg/store"
)

// tuitionRequest is the JSON body of tuition create and update calls.
// Pointer fields distinguish "absent" from "set to empty".
type tuitionRequest struct {
	Type    *string `json:"type"`
	Grade   *string `json:"grade"`
	Level   *string `json:"level"`
	Tuition *string `json:"tuition"`
	Note    *string `json:"note"`
}

func (req tuitionRequest) fields() app.TuitionFields {
	return app.TuitionFields{
		Type:    req.Type,
		Grade:   req.Grade,
		Level:   req.Level,
		Tuition: req.Tuition,
		Note:    req.Note,
	}
}

func (s *Server) handleTuition(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListTuition(w, r)
	case http.MethodPost:
		if !s.requireAdmin(w, r) {
			return
		}
		var req tuitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
			return
		}
		entry, err := s.app.CreateTuitionEntry(r.Context(), req.fields())
		if err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, entry)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleTuitionByID(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r, "/api/tuition/")
	if !ok {
		notFound(w)
		return
	}
	switch r.Method {
	case http.MethodGet:
		entry, err := s.app.GetTuitionEntry(r.Context(), id)
		if err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)
	case http.MethodPut:
		if !s.requireAdmin(w, r) {
			return
		}
		var req tuitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
			return
		}
		entry, err := s.app.UpdateTuitionEntry(r.Context(), id, req.fields())
		if err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)
	case http.MethodDelete:
		if !s.requireAdmin(w, r) {
			return
		}
		if err := s.app.DeleteTuitionEntry(r.Context(), id); err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleListTuition(w http.ResponseWriter, r *http.Request) {
	page, limit := queryPaging(r)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = store.DefaultAdminPageSize
	}
	filter := store.TuitionFilter{
		Search: r.URL.Query().Get("search"),
		Type:   r.URL.Query().Get("type"),
		Level:  r.URL.Query().Get("level"),
		Paging: store.Paging{Page: page, PageSize: limit},
	}
	result, err := s.app.ListTuitionEntries(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{
		Data:  result.Items,
		Total: result.Total,
		Page:  page,
		Pages: result.Pages(limit),
	})
}
